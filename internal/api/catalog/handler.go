package catalog

import (
	"net/http"
	"strconv"

	"teranga-pro/database"
	catalogdomain "teranga-pro/internal/domain/catalog"

	"github.com/gin-gonic/gin"
)

func ListJobs(c *gin.Context) {
	query := database.DB.Model(&catalogdomain.Job{}).
		Preload("Category").
		Where("is_active = ?", true)

	if c.Query("featured") == "true" {
		query = query.Where("is_featured = ?", true)
	}
	if category := c.Query("category"); category != "" {
		if id, err := strconv.ParseUint(category, 10, 64); err == nil {
			query = query.Where("category_id = ?", uint(id))
		} else {
			query = query.Where("category_id IN (?)",
				database.DB.Model(&catalogdomain.JobCategory{}).Select("id").Where("slug = ?", category))
		}
	}
	if q := c.Query("q"); q != "" {
		query = query.Where("name ILIKE ?", "%"+q+"%")
	}

	var jobs []catalogdomain.Job
	if err := query.Order("name ASC").Find(&jobs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Catalogue indisponible"})
		return
	}

	out := make([]gin.H, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, gin.H{
			"id":          j.ID,
			"name":        j.Name,
			"slug":        j.Slug,
			"is_featured": j.IsFeatured,
			"category": gin.H{
				"id":   j.Category.ID,
				"name": j.Category.Name,
				"slug": j.Category.Slug,
			},
		})
	}
	c.JSON(http.StatusOK, gin.H{"jobs": out})
}

func GetJob(c *gin.Context) {
	var job catalogdomain.Job
	err := database.DB.Preload("Category").
		Where("slug = ? OR id::text = ?", c.Param("slug"), c.Param("slug")).
		First(&job).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Métier introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":   job.ID,
		"name": job.Name,
		"slug": job.Slug,
		"category": gin.H{
			"id":   job.Category.ID,
			"name": job.Category.Name,
			"slug": job.Category.Slug,
		},
	})
}

func ListCategories(c *gin.Context) {
	var categories []catalogdomain.JobCategory
	if err := database.DB.
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Catalogue indisponible"})
		return
	}

	out := make([]gin.H, 0, len(categories))
	for _, cat := range categories {
		out = append(out, gin.H{
			"id":        cat.ID,
			"name":      cat.Name,
			"slug":      cat.Slug,
			"parent_id": cat.ParentID,
		})
	}
	c.JSON(http.StatusOK, gin.H{"categories": out})
}

// ListLocations returns the geography referential. ?type= and ?parent= narrow
// the listing; ?q= searches by name.
func ListLocations(c *gin.Context) {
	query := database.DB.Model(&catalogdomain.Location{}).Where("is_active = ?", true)

	if locType := c.Query("type"); locType != "" {
		query = query.Where("type = ?", locType)
	}
	if parent := c.Query("parent"); parent != "" {
		if id, err := strconv.ParseUint(parent, 10, 64); err == nil {
			query = query.Where("parent_id = ?", uint(id))
		}
	}
	if q := c.Query("q"); q != "" {
		query = query.Where("name ILIKE ?", "%"+q+"%")
	}

	var locations []catalogdomain.Location
	if err := query.Order("name ASC").Limit(200).Find(&locations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Localités indisponibles"})
		return
	}

	out := make([]gin.H, 0, len(locations))
	for _, loc := range locations {
		out = append(out, gin.H{
			"id":        loc.ID,
			"name":      loc.Name,
			"type":      loc.Type,
			"slug":      loc.Slug,
			"parent_id": loc.ParentID,
		})
	}
	c.JSON(http.StatusOK, gin.H{"locations": out})
}

type locationNode struct {
	ID       uint            `json:"id"`
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	Slug     string          `json:"slug"`
	Children []*locationNode `json:"children,omitempty"`
}

// LocationTree returns the whole geography as nested nodes, built in memory
// from the flat adjacency list.
func LocationTree(c *gin.Context) {
	var locations []catalogdomain.Location
	if err := database.DB.
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&locations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Localités indisponibles"})
		return
	}

	nodes := make(map[uint]*locationNode, len(locations))
	for _, loc := range locations {
		nodes[loc.ID] = &locationNode{ID: loc.ID, Name: loc.Name, Type: loc.Type, Slug: loc.Slug}
	}

	roots := make([]*locationNode, 0)
	for _, loc := range locations {
		node := nodes[loc.ID]
		if loc.ParentID != nil {
			if parent, ok := nodes[*loc.ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	c.JSON(http.StatusOK, gin.H{"tree": roots})
}

func GetLocation(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location id"})
		return
	}

	var location catalogdomain.Location
	if err := database.DB.Preload("Parent").First(&location, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Localité introuvable"})
		return
	}

	var children []catalogdomain.Location
	database.DB.Where("parent_id = ? AND is_active = ?", location.ID, true).
		Order("name ASC").Find(&children)

	childOut := make([]gin.H, 0, len(children))
	for _, child := range children {
		childOut = append(childOut, gin.H{"id": child.ID, "name": child.Name, "type": child.Type, "slug": child.Slug})
	}

	resp := gin.H{
		"id":       location.ID,
		"name":     location.Name,
		"type":     location.Type,
		"slug":     location.Slug,
		"children": childOut,
	}
	if location.Parent != nil {
		resp["parent"] = gin.H{"id": location.Parent.ID, "name": location.Parent.Name, "type": location.Parent.Type}
	}
	c.JSON(http.StatusOK, resp)
}
