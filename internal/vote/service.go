package vote

import (
	"context"
	"errors"
	"fmt"

	"forum-service/internal/apperr"
)

// applyRetries bounds re-runs of the vote transaction when two requests
// from the same voter race on the insert.
const applyRetries = 3

type Service interface {
	Apply(ctx context.Context, postID uint, voter string, direction string) (Tally, error)
	Counts(ctx context.Context, postID uint, forVoter string) (Tally, error)
}

type service struct {
	repo Repository
}

func NewService(r Repository) Service {
	return &service{repo: r}
}

func (s *service) Apply(ctx context.Context, postID uint, voter string, direction string) (Tally, error) {
	if voter == "" {
		return Tally{}, fmt.Errorf("voter identity is empty: %w", apperr.ErrInvalidArgument)
	}
	dir, ok := ParseDirection(direction)
	if !ok {
		return Tally{}, fmt.Errorf("voteType %q must be up or down: %w", direction, apperr.ErrInvalidArgument)
	}

	var t Tally
	var err error
	for attempt := 0; attempt < applyRetries; attempt++ {
		t, err = s.repo.Apply(ctx, postID, voter, dir)
		if err == nil || !errors.Is(err, apperr.ErrConflict) {
			return t, err
		}
	}
	return Tally{}, err
}

func (s *service) Counts(ctx context.Context, postID uint, forVoter string) (Tally, error) {
	return s.repo.Counts(ctx, postID, forVoter)
}
