package repository

import (
	"github.com/KacperKuznik/image-hosting-api/access"
)

// Store adapts Repository to the access-gate store interface.
type Store struct {
	repo *Repository
}

func NewStore(repo *Repository) *Store {
	return &Store{repo: repo}
}

func (s *Store) Images() access.ImageStore {
	return s.repo.ImageRepo
}

func (s *Store) Thumbnails() access.ThumbnailStore {
	return s.repo.ThumbnailRepo
}

func (s *Store) Transaction(fn func(tx access.Store) error) error {
	return s.repo.Transaction(func(txRepo *Repository) error {
		return fn(NewStore(txRepo))
	})
}
