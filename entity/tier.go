package entity

import (
	"fmt"

	"gorm.io/datatypes"
)

const (
	MinThumbnailSize  = 1
	MaxThumbnailSize  = 10000
	MaxThumbnailCount = 6
)

// DefaultTierID is the tier users fall back to when their tier is deleted
// (FK ON DELETE SET DEFAULT). Seeded at migration time.
const DefaultTierID uint = 1

// UserTier is an administrator-managed capability bundle. Users reference a
// tier, they never own it.
type UserTier struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"type:varchar(50);not null;uniqueIndex"`
	// ThumbnailSizes is the ordered list of bounding-box edge lengths to
	// derive on upload. Order is preserved; duplicates are honored.
	ThumbnailSizes      datatypes.JSONSlice[int] `json:"thumbnail_sizes" gorm:"not null"`
	CanViewOriginal     bool                     `json:"can_view_original" gorm:"not null"`
	CanMintExpiringLink bool                     `json:"can_mint_expiring_link" gorm:"not null"`
}

// Validate enforces the size-list constraints: at most 6 entries, each in
// [1, 10000]. An empty list is legal (zero thumbnails generated).
func (t *UserTier) Validate() error {
	if len(t.ThumbnailSizes) > MaxThumbnailCount {
		return fmt.Errorf("tier %q: at most %d thumbnail sizes allowed, got %d", t.Name, MaxThumbnailCount, len(t.ThumbnailSizes))
	}
	for _, s := range t.ThumbnailSizes {
		if s < MinThumbnailSize || s > MaxThumbnailSize {
			return fmt.Errorf("tier %q: thumbnail size %d outside [%d, %d]", t.Name, s, MinThumbnailSize, MaxThumbnailSize)
		}
	}
	return nil
}

// DefaultTier returns the built-in fallback policy. Every user resolves to
// some tier; this is the floor.
func DefaultTier() UserTier {
	return UserTier{
		ID:                  DefaultTierID,
		Name:                "Basic",
		ThumbnailSizes:      datatypes.JSONSlice[int]{200},
		CanViewOriginal:     false,
		CanMintExpiringLink: false,
	}
}
