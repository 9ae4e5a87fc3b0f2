package entity

import "time"

// User is an authenticated principal. Credential material is handled by the
// auth layer; only the tier reference matters to the gate.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"type:varchar(150);not null;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255)"`
	TierID       uint      `json:"tier_id" gorm:"not null;default:1"`
	CreatedAt    time.Time `json:"created_at" gorm:"not null;autoCreateTime"`

	// Deleting a tier must not cascade to its users; they fall back to the
	// default tier instead.
	Tier *UserTier `json:"tier,omitempty" gorm:"foreignKey:TierID;constraint:OnDelete:SET DEFAULT"`
}
