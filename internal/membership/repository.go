package membership

import (
	"errors"
	"fmt"

	"forum-service/internal/apperr"
	"forum-service/internal/shared/db"

	"gorm.io/gorm"
)

type Repository interface {
	Get(email string) (*Membership, error)
	EnsureFree(email string) (*Membership, error)
}

type repo struct {
	db *gorm.DB
}

func NewRepository(s *db.Store) Repository {
	return &repo{db: s.DB}
}

func (r *repo) Get(email string) (*Membership, error) {
	var m Membership
	if err := r.db.First(&m, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("membership %s: %w", email, apperr.ErrNotFound)
		}
		return nil, err
	}
	return &m, nil
}

func (r *repo) EnsureFree(email string) (*Membership, error) {
	m := Membership{Email: email, Tier: TierFree}
	if err := r.db.Where("email = ?", email).FirstOrCreate(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}
