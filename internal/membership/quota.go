package membership

import (
	"errors"
	"fmt"

	"forum-service/internal/apperr"
)

// UnlimitedPosts is reported as the limit for premium members.
const UnlimitedPosts = int64(-1)

// PostCounter recomputes the author's live post count. It is implemented
// by the post repository; counts are never cached so the gate cannot
// drift from the store.
type PostCounter interface {
	CountByAuthor(email string) (int64, error)
}

type Decision struct {
	Allowed      bool  `json:"allowed"`
	CurrentCount int64 `json:"current"`
	Limit        int64 `json:"limit"`
}

// QuotaError carries the gate decision so the HTTP layer can render the
// machine-readable limitReached payload.
type QuotaError struct {
	Decision Decision
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("post quota exceeded: %d of %d posts used", e.Decision.CurrentCount, e.Decision.Limit)
}

func (e *QuotaError) Unwrap() error { return apperr.ErrQuotaExceeded }

// Gate decides whether an author may create another post. It reads
// membership state and live post counts; it never writes either.
//
// The gate and the subsequent insert are intentionally not atomic:
// two concurrent creations near the limit can both pass and overshoot
// by a small margin. Closing that window would need a cross-request
// lock the feature does not justify.
type Gate struct {
	members   Repository
	posts     PostCounter
	freeLimit int64
}

func NewGate(members Repository, posts PostCounter, freeLimit int) *Gate {
	return &Gate{members: members, posts: posts, freeLimit: int64(freeLimit)}
}

func (g *Gate) CanCreate(authorEmail string) (Decision, error) {
	if authorEmail == "" {
		return Decision{}, fmt.Errorf("author email is empty: %w", apperr.ErrInvalidArgument)
	}

	tier := TierFree
	m, err := g.members.Get(authorEmail)
	switch {
	case err == nil:
		tier = m.Tier
	case errors.Is(err, apperr.ErrNotFound):
		// No record yet means free tier.
	default:
		return Decision{}, err
	}

	if tier == TierPremium {
		return Decision{Allowed: true, Limit: UnlimitedPosts}, nil
	}

	count, err := g.posts.CountByAuthor(authorEmail)
	if err != nil {
		return Decision{}, err
	}
	return Decision{
		Allowed:      count < g.freeLimit,
		CurrentCount: count,
		Limit:        g.freeLimit,
	}, nil
}
