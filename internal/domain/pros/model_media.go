package pros

import (
	"path/filepath"
	"strings"
	"time"
)

const (
	MediaPhoto = "PHOTO"
	MediaVideo = "VIDEO"
	MediaCV    = "CV"
)

// MediaPro is a gallery item (photo, video or CV) attached to a profile.
// At most one item per profile carries IsCover.
type MediaPro struct {
	ID        uint       `gorm:"primaryKey"`
	ProfileID uint       `gorm:"not null;index:idx_media_profile_type"`
	Profile   ProProfile `gorm:"foreignKey:ProfileID"`

	Type string `gorm:"size:10;not null;index:idx_media_profile_type"`
	File string `gorm:"size:255;not null"`

	IsCover bool `gorm:"default:false"`

	CreatedAt time.Time
}

type mediaRule struct {
	maxSizeBytes int64
	extensions   map[string]bool
}

var mediaRules = map[string]mediaRule{
	MediaPhoto: {
		maxSizeBytes: 5 * 1024 * 1024,
		extensions:   map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true},
	},
	MediaVideo: {
		maxSizeBytes: 50 * 1024 * 1024,
		extensions:   map[string]bool{".mp4": true, ".mov": true, ".avi": true, ".mkv": true},
	},
	MediaCV: {
		maxSizeBytes: 3 * 1024 * 1024,
		extensions:   map[string]bool{".pdf": true},
	},
}

// NormalizeMediaType folds client input onto the stored vocabulary. Callers
// must persist the normalized form; the cover lookup and the per-type rules
// match exact constants.
func NormalizeMediaType(mediaType string) string {
	return strings.ToUpper(strings.TrimSpace(mediaType))
}

// ValidateMedia checks the media type, the file extension and the declared
// size against the per-type rules. Covers must be photos.
func ValidateMedia(mediaType, filename string, sizeBytes int64, isCover bool) error {
	mediaType = NormalizeMediaType(mediaType)
	rule, ok := mediaRules[mediaType]
	if !ok {
		return &MediaError{Detail: "unsupported media type " + mediaType}
	}

	if isCover && mediaType != MediaPhoto {
		return &MediaError{Detail: "cover media must be a PHOTO"}
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !rule.extensions[ext] {
		return &MediaError{Detail: "extension " + ext + " not allowed for " + mediaType}
	}

	if sizeBytes > rule.maxSizeBytes {
		return &MediaError{Detail: "file too large for " + mediaType}
	}
	return nil
}

type MediaError struct {
	Detail string
}

func (e *MediaError) Error() string { return e.Detail }

// CoverPhoto returns the profile's cover photo among preloaded media, if any.
func CoverPhoto(media []MediaPro) *MediaPro {
	for i := range media {
		if media[i].Type == MediaPhoto && media[i].IsCover {
			return &media[i]
		}
	}
	return nil
}
