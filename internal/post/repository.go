package post

import (
	"errors"
	"fmt"

	"forum-service/internal/apperr"
	"forum-service/internal/shared/db"

	"gorm.io/gorm"
)

type Repository interface {
	Create(p *Post) error
	GetByID(id uint) (*Post, error)
	List(f ListFilter) ([]Post, error)
	Update(p *Post) error
	// Delete soft-deletes the post and removes its comments and vote
	// rows in one transaction.
	Delete(id uint) error
	CountByAuthor(email string) (int64, error)
}

type repo struct {
	db *gorm.DB
}

func NewRepository(s *db.Store) Repository {
	return &repo{db: s.DB}
}

func (r *repo) Create(p *Post) error {
	return r.db.Create(p).Error
}

func (r *repo) GetByID(id uint) (*Post, error) {
	var p Post
	if err := r.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("post %d: %w", id, apperr.ErrNotFound)
		}
		return nil, err
	}
	return &p, nil
}

func (r *repo) List(f ListFilter) ([]Post, error) {
	q := r.db.Order("id desc")
	if f.AuthorEmail != "" {
		q = q.Where("author_email = ?", f.AuthorEmail)
	}
	if f.Tag != "" {
		q = q.Where("tag = ?", f.Tag)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	var posts []Post
	if err := q.Offset(f.Offset).Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *repo) Update(p *Post) error {
	return r.db.Save(p).Error
}

func (r *repo) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM comments WHERE post_id = ?`, id).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM post_votes WHERE post_id = ?`, id).Error; err != nil {
			return err
		}
		return tx.Delete(&Post{}, id).Error
	})
}

// CountByAuthor feeds the quota gate. Soft-deleted posts are excluded by
// gorm's default scope, which is exactly the "non-deleted" count the
// gate wants; the value is recomputed on every call.
func (r *repo) CountByAuthor(email string) (int64, error) {
	var n int64
	if err := r.db.Model(&Post{}).Where("author_email = ?", email).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
