package repository

import (
	"github.com/KacperKuznik/image-hosting-api/infra"
	"gorm.io/gorm"
)

type Repository struct {
	TierRepo      *TierRepository
	UserRepo      *UserRepository
	ImageRepo     *ImageRepository
	ThumbnailRepo *ThumbnailRepository

	db *gorm.DB
}

var repository *Repository

func InitRepository(infra *infra.Infra) *Repository {
	repository = NewRepository(infra.Postgres.DB)
	return repository
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		TierRepo:      NewTierRepository(db),
		UserRepo:      NewUserRepository(db),
		ImageRepo:     NewImageRepository(db),
		ThumbnailRepo: NewThumbnailRepository(db),
		db:            db,
	}
}

// Transaction runs fn with a Repository bound to a database transaction.
// The upload path relies on this for its all-or-nothing contract.
func (r *Repository) Transaction(fn func(txRepo *Repository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
