package tag

import (
	"errors"
	"fmt"

	"forum-service/internal/apperr"
	"forum-service/internal/shared/db"

	"gorm.io/gorm"
)

type Repository interface {
	Create(t *Tag) error
	ListAll() ([]Tag, error)
}

type repo struct {
	db *gorm.DB
}

func NewRepository(s *db.Store) Repository {
	return &repo{db: s.DB}
}

func (r *repo) Create(t *Tag) error {
	if err := r.db.Create(t).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("tag %q exists: %w", t.Name, apperr.ErrConflict)
		}
		return err
	}
	return nil
}

func (r *repo) ListAll() ([]Tag, error) {
	var tags []Tag
	if err := r.db.Order("name asc").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}
