package announcement

import (
	"errors"
	"fmt"

	"forum-service/internal/apperr"
	"forum-service/internal/shared/db"

	"gorm.io/gorm"
)

type Repository interface {
	Create(a *Announcement) error
	GetByID(id uint) (*Announcement, error)
	ListAll(limit, offset int) ([]Announcement, error)
	Update(a *Announcement) error
	Delete(id uint) error
}

type repo struct {
	db *gorm.DB
}

func NewRepository(s *db.Store) Repository {
	return &repo{db: s.DB}
}

func (r *repo) Create(a *Announcement) error {
	return r.db.Create(a).Error
}

func (r *repo) GetByID(id uint) (*Announcement, error) {
	var a Announcement
	if err := r.db.First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("announcement %d: %w", id, apperr.ErrNotFound)
		}
		return nil, err
	}
	return &a, nil
}

func (r *repo) ListAll(limit, offset int) ([]Announcement, error) {
	var items []Announcement
	if err := r.db.Order("id desc").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Update(a *Announcement) error {
	return r.db.Save(a).Error
}

func (r *repo) Delete(id uint) error {
	return r.db.Delete(&Announcement{}, id).Error
}
