package comment

import (
	"fmt"

	"forum-service/internal/apperr"
	"forum-service/internal/post"
)

type Service interface {
	Create(postID uint, authorEmail string, in CreateReq) (*Comment, error)
	ListByPost(postID uint, limit, offset int) ([]Comment, error)
	Delete(id uint, actor string, admin bool) error
}

type service struct {
	repo  Repository
	posts post.Repository
}

func NewService(r Repository, posts post.Repository) Service {
	return &service{repo: r, posts: posts}
}

func (s *service) Create(postID uint, authorEmail string, in CreateReq) (*Comment, error) {
	// Commenting on a missing or deleted post is a 404, not an orphan row.
	if _, err := s.posts.GetByID(postID); err != nil {
		return nil, err
	}
	c := &Comment{PostID: postID, AuthorEmail: authorEmail, Content: in.Content}
	if err := s.repo.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) ListByPost(postID uint, limit, offset int) ([]Comment, error) {
	return s.repo.ListByPost(postID, limit, offset)
}

func (s *service) Delete(id uint, actor string, admin bool) error {
	c, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if c.AuthorEmail != actor && !admin {
		return fmt.Errorf("comment %d belongs to another author: %w", id, apperr.ErrForbidden)
	}
	return s.repo.Delete(id)
}
