package post

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"forum-service/internal/apperr"
	"forum-service/internal/kafka"
	"forum-service/internal/media"
	"forum-service/internal/membership"
)

type Service interface {
	Create(authorEmail string, in CreateReq) (*Post, error)
	UploadAndCreate(authorEmail, filename, contentType string, size int64, file io.Reader, in CreateReq) (*Post, error)
	GetByID(id uint) (*Post, error)
	List(f ListFilter) ([]Post, error)
	Update(id uint, actor string, in UpdateReq) (*Post, error)
	Delete(id uint, actor string, admin bool) error
}

// QuotaGate is satisfied by membership.Gate.
type QuotaGate interface {
	CanCreate(authorEmail string) (membership.Decision, error)
}

// VoteCache is satisfied by vote.CountCache. Deletion drops the cached
// counts so vote reads for a gone post fall through to NotFound.
type VoteCache interface {
	Invalidate(ctx context.Context, postID uint)
}

type service struct {
	repo   Repository
	gate   QuotaGate
	events kafka.Writer
	media  *media.Storage
	votes  VoteCache
}

func NewService(repo Repository, gate QuotaGate, events kafka.Writer, m *media.Storage, votes VoteCache) Service {
	return &service{repo: repo, gate: gate, events: events, media: m, votes: votes}
}

func (s *service) Create(authorEmail string, in CreateReq) (*Post, error) {
	return s.create(authorEmail, in, "")
}

func (s *service) UploadAndCreate(authorEmail, filename, contentType string, size int64, file io.Reader, in CreateReq) (*Post, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	key, err := s.media.Put(ctx, filename, contentType, size, file)
	if err != nil {
		return nil, fmt.Errorf("store attachment: %w", err)
	}
	p, err := s.create(authorEmail, in, key)
	if err != nil {
		_ = s.media.Remove(ctx, key)
		return nil, err
	}
	return p, nil
}

func (s *service) create(authorEmail string, in CreateReq, mediaKey string) (*Post, error) {
	decision, err := s.gate.CanCreate(authorEmail)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, &membership.QuotaError{Decision: decision}
	}
	p := &Post{
		AuthorEmail: authorEmail,
		Title:       in.Title,
		Content:     in.Content,
		Tag:         in.Tag,
		MediaKey:    mediaKey,
	}
	if err := s.repo.Create(p); err != nil {
		return nil, err
	}
	if err := s.events.Emit(context.Background(), "post.created", map[string]any{
		"post_id": p.ID, "author": p.AuthorEmail, "tag": p.Tag,
	}); err != nil {
		log.Printf("emit post.created for %d: %v", p.ID, err)
	}
	return p, nil
}

func (s *service) GetByID(id uint) (*Post, error) { return s.repo.GetByID(id) }
func (s *service) List(f ListFilter) ([]Post, error) {
	return s.repo.List(f)
}

func (s *service) Update(id uint, actor string, in UpdateReq) (*Post, error) {
	p, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p.AuthorEmail != actor {
		return nil, fmt.Errorf("post %d belongs to another author: %w", id, apperr.ErrForbidden)
	}
	if in.Title != "" {
		p.Title = in.Title
	}
	if in.Content != "" {
		p.Content = in.Content
	}
	if in.Tag != "" {
		p.Tag = in.Tag
	}
	if err := s.repo.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Delete(id uint, actor string, admin bool) error {
	p, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if p.AuthorEmail != actor && !admin {
		return fmt.Errorf("post %d belongs to another author: %w", id, apperr.ErrForbidden)
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	if s.votes != nil {
		s.votes.Invalidate(context.Background(), id)
	}
	if p.MediaKey != "" && s.media != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.media.Remove(ctx, p.MediaKey); err != nil {
			log.Printf("remove attachment %s: %v", p.MediaKey, err)
		}
	}
	if err := s.events.Emit(context.Background(), "post.deleted", map[string]any{
		"post_id": id, "actor": actor,
	}); err != nil {
		log.Printf("emit post.deleted for %d: %v", id, err)
	}
	return nil
}
