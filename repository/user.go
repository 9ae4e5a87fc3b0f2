package repository

import (
	"github.com/KacperKuznik/image-hosting-api/entity"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByID loads a user with their tier preloaded, so the gate can resolve
// the effective policy without a second query.
func (r *UserRepository) FindByID(id uint) (*entity.User, error) {
	var user entity.User
	err := r.db.Preload("Tier").Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Create(user *entity.User) error {
	return r.db.Create(user).Error
}

// Delete removes a user; images and thumbnails cascade at the database level.
func (r *UserRepository) Delete(id uint) error {
	return r.db.Delete(&entity.User{}, "id = ?", id).Error
}
