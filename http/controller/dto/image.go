package dto

// No binding:"required" tags: missing fields become zero values so the
// access gate settles capability (403) before complaining about the
// payload (400).
type GenerateExpiringLinkRequestDTO struct {
	ImageID        uint64 `json:"image_id"`
	ExpirationTime int64  `json:"expiration_time"`
}
