package catalog

import (
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

var (
	nonSlug   = regexp.MustCompile(`[^a-z0-9\-]+`)
	multiDash = regexp.MustCompile(`-+`)
)

// Slugify turns free text into a URL-safe slug.
// Example: "Plombier Dakar Plateau" -> "plombier-dakar-plateau"
func Slugify(text string) string {
	base := strings.ToLower(strings.TrimSpace(text))
	base = strings.ReplaceAll(base, " ", "-")
	base = nonSlug.ReplaceAllString(base, "")
	base = multiDash.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")

	if base == "" {
		base = "item"
	}
	return base
}

// UniqueSlug returns a slug derived from base that does not yet exist in the
// given model's table, appending -2, -3, ... on collision. excludeID skips the
// row being updated (0 for inserts).
func UniqueSlug(db *gorm.DB, model interface{}, base string, maxLen int, excludeID uint) (string, error) {
	baseSlug := Slugify(base)
	if len(baseSlug) > maxLen {
		baseSlug = strings.Trim(baseSlug[:maxLen], "-")
	}

	slug := baseSlug
	for i := 2; ; i++ {
		q := db.Model(model).Where("slug = ?", slug)
		if excludeID != 0 {
			q = q.Where("id <> ?", excludeID)
		}

		var count int64
		if err := q.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}

		suffix := fmt.Sprintf("-%d", i)
		cut := maxLen - len(suffix)
		if cut > len(baseSlug) {
			cut = len(baseSlug)
		}
		slug = baseSlug[:cut] + suffix
	}
}
