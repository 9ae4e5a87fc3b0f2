package entity

import "time"

// Image is one uploaded original. The numeric id doubles as the signed
// component of expiring tokens.
type Image struct {
	ID       uint64 `json:"id" gorm:"primaryKey"`
	UserID   uint   `json:"user_id" gorm:"not null;index"`
	Location string `json:"location" gorm:"type:varchar(1024);not null"`
	FileName string `json:"file_name" gorm:"type:varchar(255);not null"`
	// BlobKey is the object key under which the original bytes live in the
	// blob store; used for async cleanup when the image is deleted.
	BlobKey string `json:"-" gorm:"type:varchar(1024);not null"`
	// Expiration is advisory only: it records the expiry of the most recently
	// minted link. The authoritative expiry lives inside each signed token and
	// this field is never consulted during link resolution.
	Expiration *int64    `json:"expiration,omitempty"`
	CreatedAt  time.Time `json:"created_at" gorm:"not null;autoCreateTime"`

	User       *User       `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Thumbnails []Thumbnail `json:"thumbnails" gorm:"foreignKey:ImageID;constraint:OnDelete:CASCADE"`
}

// Thumbnail is one derived variant, fit within a Height x Height box. Created
// once during upload processing, never updated.
type Thumbnail struct {
	ID       uint64 `json:"id" gorm:"primaryKey"`
	ImageID  uint64 `json:"image_id" gorm:"not null;index"`
	Height   int    `json:"height" gorm:"not null"`
	Location string `json:"location" gorm:"type:varchar(1024);not null"`
	BlobKey  string `json:"-" gorm:"type:varchar(1024);not null"`
}
