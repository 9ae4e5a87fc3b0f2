package repository

import (
	"github.com/KacperKuznik/image-hosting-api/entity"
	"gorm.io/gorm"
)

type ThumbnailRepository struct {
	db *gorm.DB
}

func NewThumbnailRepository(db *gorm.DB) *ThumbnailRepository {
	return &ThumbnailRepository{db: db}
}

func (r *ThumbnailRepository) Create(thumbnail *entity.Thumbnail) error {
	return r.db.Create(thumbnail).Error
}

func (r *ThumbnailRepository) FindByImageID(imageID uint64) ([]entity.Thumbnail, error) {
	var thumbnails []entity.Thumbnail
	err := r.db.Where("image_id = ?", imageID).Order("id ASC").Find(&thumbnails).Error
	if err != nil {
		return nil, err
	}
	return thumbnails, nil
}
