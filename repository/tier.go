package repository

import (
	"github.com/KacperKuznik/image-hosting-api/entity"
	"gorm.io/gorm"
)

type TierRepository struct {
	db *gorm.DB
}

func NewTierRepository(db *gorm.DB) *TierRepository {
	return &TierRepository{db: db}
}

func (r *TierRepository) FindByID(id uint) (*entity.UserTier, error) {
	var tier entity.UserTier
	err := r.db.Where("id = ?", id).First(&tier).Error
	if err != nil {
		return nil, err
	}
	return &tier, nil
}

func (r *TierRepository) Create(tier *entity.UserTier) error {
	if err := tier.Validate(); err != nil {
		return err
	}
	return r.db.Create(tier).Error
}

func (r *TierRepository) Update(tier *entity.UserTier) error {
	if err := tier.Validate(); err != nil {
		return err
	}
	return r.db.Save(tier).Error
}

func (r *TierRepository) Delete(id uint) error {
	return r.db.Delete(&entity.UserTier{}, "id = ?", id).Error
}
