package user

import (
	"fmt"

	"forum-service/internal/apperr"
	"forum-service/internal/membership"

	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	Register(email, password, name string) (*User, error)
	Login(email, password string) (*User, error)
	Profile(email string) (*ProfileResponse, error)
	GetByEmail(email string) (*User, error)
}

type service struct {
	repo    Repository
	members membership.Repository
}

func NewService(r Repository, members membership.Repository) Service {
	return &service{repo: r, members: members}
}

func (s *service) Register(email, password, name string) (*User, error) {
	if exist, _ := s.repo.GetByEmail(email); exist != nil {
		return nil, fmt.Errorf("email already registered: %w", apperr.ErrConflict)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(&User{Email: email, Password: string(hash), Name: name, Role: RoleUser})
}

func (s *service) Login(email, password string) (*User, error) {
	u, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("wrong credentials: %w", apperr.ErrUnauthorized)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, fmt.Errorf("wrong credentials: %w", apperr.ErrUnauthorized)
	}
	return u, nil
}

// Profile returns the account together with its membership tier,
// lazily creating the free-tier record on first access.
func (s *service) Profile(email string) (*ProfileResponse, error) {
	u, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	m, err := s.members.EnsureFree(email)
	if err != nil {
		return nil, err
	}
	return &ProfileResponse{
		Email: u.Email, Name: u.Name, Role: u.Role,
		Tier: m.Tier, UpgradedAt: m.UpgradedAt,
	}, nil
}

func (s *service) GetByEmail(email string) (*User, error) { return s.repo.GetByEmail(email) }
