package repository

import (
	"github.com/KacperKuznik/image-hosting-api/entity"
	"gorm.io/gorm"
)

type ImageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) *ImageRepository {
	return &ImageRepository{db: db}
}

func (r *ImageRepository) Create(image *entity.Image) error {
	return r.db.Create(image).Error
}

func (r *ImageRepository) FindByID(id uint64) (*entity.Image, error) {
	var image entity.Image
	err := r.db.Where("id = ?", id).First(&image).Error
	if err != nil {
		return nil, err
	}
	return &image, nil
}

// FindByIDAndOwner scopes the lookup to the owner so a foreign image id
// behaves exactly like a missing one.
func (r *ImageRepository) FindByIDAndOwner(id uint64, userID uint) (*entity.Image, error) {
	var image entity.Image
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&image).Error
	if err != nil {
		return nil, err
	}
	return &image, nil
}

// FindByOwner returns the owner's images, thumbnails preloaded, oldest first.
func (r *ImageRepository) FindByOwner(userID uint) ([]entity.Image, error) {
	var images []entity.Image
	err := r.db.Preload("Thumbnails").Where("user_id = ?", userID).Order("id ASC").Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}

// UpdateExpiration records the advisory expiry of the most recently minted
// link. Resolution never reads it back.
func (r *ImageRepository) UpdateExpiration(id uint64, expiresAt int64) error {
	return r.db.Model(&entity.Image{}).Where("id = ?", id).Update("expiration", expiresAt).Error
}

func (r *ImageRepository) Delete(id uint64) error {
	return r.db.Delete(&entity.Image{}, "id = ?", id).Error
}
