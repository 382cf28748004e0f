package annonces

import (
	"net/http"
	"strconv"
	"time"

	"teranga-pro/database"
	annoncesdomain "teranga-pro/internal/domain/annonces"
	"teranga-pro/internal/domain/billing"
	"teranga-pro/internal/domain/catalog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Create posts a classified ad. DEMANDE ads (looking for a service) are free
// for any authenticated user; OFFRE ads require an active subscription, same
// rule as profile publication.
func Create(c *gin.Context) {
	userID := c.GetUint("user_id")

	var input struct {
		Type        string `json:"type" binding:"required"`
		Title       string `json:"title" binding:"required"`
		Description string `json:"description" binding:"required"`
		Phone       string `json:"phone" binding:"required"`
		CategoryID  uint   `json:"category_id" binding:"required"`
		LocationID  *uint  `json:"location_id"`
		Address     string `json:"address"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	annonce := annoncesdomain.Annonce{
		AuthorID:    userID,
		Type:        input.Type,
		Title:       input.Title,
		Description: input.Description,
		Phone:       input.Phone,
		CategoryID:  input.CategoryID,
		LocationID:  input.LocationID,
		Address:     input.Address,
		Status:      annoncesdomain.StatusEnAttente,
	}
	if err := annonce.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if annonce.Type == annoncesdomain.TypeOffre {
		entitled, err := billing.UserEntitled(database.DB, userID, time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Vérification de l'abonnement impossible"})
			return
		}
		if !entitled {
			c.JSON(http.StatusPaymentRequired, gin.H{
				"error":      "Un abonnement actif est requis pour publier une offre de service",
				"error_kind": "SUBSCRIPTION_INACTIVE",
			})
			return
		}
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		slug, err := catalog.UniqueSlug(tx, &annoncesdomain.Annonce{}, annonce.Title, 200, 0)
		if err != nil {
			return err
		}
		annonce.Slug = slug
		annonce.SyncApproval()
		return tx.Create(&annonce).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la création de l'annonce"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Annonce soumise. Elle sera visible après modération.",
		"annonce": toDTO(&annonce, false),
	})
}

// List is the public board: approved ads only, newest first.
func List(c *gin.Context) {
	query := database.DB.Model(&annoncesdomain.Annonce{}).
		Preload("Category").
		Preload("Location").
		Where("is_approved = ?", true)

	if adType := c.Query("type"); adType == annoncesdomain.TypeDemande || adType == annoncesdomain.TypeOffre {
		query = query.Where("type = ?", adType)
	}
	if category := c.Query("category"); category != "" {
		if id, err := strconv.ParseUint(category, 10, 64); err == nil {
			query = query.Where("category_id = ?", uint(id))
		}
	}
	if location := c.Query("location"); location != "" {
		if id, err := strconv.ParseUint(location, 10, 64); err == nil {
			query = query.Where("location_id = ?", uint(id))
		}
	}
	if q := c.Query("q"); q != "" {
		pattern := "%" + q + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var total int64
	query.Count(&total)

	var list []annoncesdomain.Annonce
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&list).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Annonces indisponibles"})
		return
	}

	out := make([]AnnonceDTO, 0, len(list))
	for i := range list {
		out = append(out, toDTO(&list[i], false))
	}
	c.JSON(http.StatusOK, gin.H{"annonces": out, "total": total, "page": page})
}

// Get serves an approved ad by slug and counts the view. Authors see their
// own ads whatever the status.
func Get(c *gin.Context) {
	var annonce annoncesdomain.Annonce
	err := database.DB.
		Preload("Category").
		Preload("Location").
		Where("slug = ?", c.Param("slug")).
		First(&annonce).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Annonce introuvable"})
		return
	}

	isAuthor := c.GetUint("user_id") == annonce.AuthorID
	if !annonce.IsApproved && !isAuthor {
		c.JSON(http.StatusNotFound, gin.H{"error": "Annonce introuvable"})
		return
	}

	if !isAuthor {
		database.DB.Model(&annonce).
			UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	}

	c.JSON(http.StatusOK, gin.H{"annonce": toDTO(&annonce, isAuthor)})
}

func MyAnnonces(c *gin.Context) {
	userID := c.GetUint("user_id")

	var list []annoncesdomain.Annonce
	err := database.DB.
		Preload("Category").
		Preload("Location").
		Where("author_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Annonces indisponibles"})
		return
	}

	out := make([]AnnonceDTO, 0, len(list))
	for i := range list {
		out = append(out, toDTO(&list[i], true))
	}
	c.JSON(http.StatusOK, gin.H{"annonces": out})
}

// Update lets the author edit a pending or rejected ad. Editing sends it back
// to moderation.
func Update(c *gin.Context) {
	userID := c.GetUint("user_id")

	annonce, ok := ownAnnonce(c, userID)
	if !ok {
		return
	}
	if annonce.Status == annoncesdomain.StatusArchivee {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Annonce archivée, modification impossible"})
		return
	}

	var input struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Phone       *string `json:"phone"`
		CategoryID  *uint   `json:"category_id"`
		LocationID  *uint   `json:"location_id"`
		Address     *string `json:"address"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Title != nil {
		annonce.Title = *input.Title
	}
	if input.Description != nil {
		annonce.Description = *input.Description
	}
	if input.Phone != nil {
		annonce.Phone = *input.Phone
	}
	if input.CategoryID != nil {
		annonce.CategoryID = *input.CategoryID
	}
	if input.LocationID != nil {
		annonce.LocationID = input.LocationID
	}
	if input.Address != nil {
		annonce.Address = *input.Address
	}
	if err := annonce.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	annonce.Status = annoncesdomain.StatusEnAttente
	annonce.RejectReason = ""
	annonce.SyncApproval()

	if err := database.DB.Save(annonce).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la mise à jour"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Annonce mise à jour, en attente de modération"})
}

func Archive(c *gin.Context) {
	userID := c.GetUint("user_id")

	annonce, ok := ownAnnonce(c, userID)
	if !ok {
		return
	}

	annonce.Status = annoncesdomain.StatusArchivee
	annonce.SyncApproval()
	if err := database.DB.Save(annonce).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de l'archivage"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Annonce archivée"})
}

func ownAnnonce(c *gin.Context, userID uint) (*annoncesdomain.Annonce, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid annonce id"})
		return nil, false
	}

	var annonce annoncesdomain.Annonce
	if err := database.DB.First(&annonce, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Annonce introuvable"})
		return nil, false
	}
	if annonce.AuthorID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cette annonce ne vous appartient pas"})
		return nil, false
	}
	return &annonce, true
}

// AdminModerate approves or rejects a pending ad.
func AdminModerate(c *gin.Context) {
	adminID := c.GetUint("user_id")

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid annonce id"})
		return
	}

	var input struct {
		Action       string `json:"action" binding:"required"`
		RejectReason string `json:"reject_reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var annonce annoncesdomain.Annonce
	if err := database.DB.First(&annonce, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Annonce introuvable"})
		return
	}

	now := time.Now()
	switch input.Action {
	case "approve":
		annonce.Status = annoncesdomain.StatusPubliee
		annonce.ApprovedByID = &adminID
		annonce.ApprovedAt = &now
		annonce.RejectReason = ""
	case "reject":
		if input.RejectReason == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "reject_reason is required"})
			return
		}
		annonce.Status = annoncesdomain.StatusRejetee
		annonce.RejectReason = input.RejectReason
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "action must be approve or reject"})
		return
	}

	annonce.SyncApproval()
	if err := database.DB.Save(&annonce).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la modération"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Annonce modérée", "status": annonce.Status})
}

// AdminList shows the moderation queue (default) or any status.
func AdminList(c *gin.Context) {
	query := database.DB.Model(&annoncesdomain.Annonce{}).
		Preload("Category").
		Preload("Author")

	status := c.DefaultQuery("status", annoncesdomain.StatusEnAttente)
	if status != "all" {
		query = query.Where("status = ?", status)
	}

	var list []annoncesdomain.Annonce
	if err := query.Order("created_at ASC").Limit(200).Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Annonces indisponibles"})
		return
	}

	out := make([]AnnonceDTO, 0, len(list))
	for i := range list {
		out = append(out, toDTO(&list[i], true))
	}
	c.JSON(http.StatusOK, gin.H{"annonces": out})
}
