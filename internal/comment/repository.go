package comment

import (
	"errors"
	"fmt"

	"forum-service/internal/apperr"
	"forum-service/internal/shared/db"

	"gorm.io/gorm"
)

type Repository interface {
	Create(c *Comment) error
	GetByID(id uint) (*Comment, error)
	ListByPost(postID uint, limit, offset int) ([]Comment, error)
	Delete(id uint) error
}

type repo struct {
	db *gorm.DB
}

func NewRepository(s *db.Store) Repository {
	return &repo{db: s.DB}
}

func (r *repo) Create(c *Comment) error {
	return r.db.Create(c).Error
}

func (r *repo) GetByID(id uint) (*Comment, error) {
	var c Comment
	if err := r.db.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("comment %d: %w", id, apperr.ErrNotFound)
		}
		return nil, err
	}
	return &c, nil
}

func (r *repo) ListByPost(postID uint, limit, offset int) ([]Comment, error) {
	var items []Comment
	if err := r.db.Where("post_id = ?", postID).
		Order("id asc").Limit(limit).Offset(offset).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Delete(id uint) error {
	return r.db.Delete(&Comment{}, id).Error
}
