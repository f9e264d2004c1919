package vote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"forum-service/internal/apperr"
	"forum-service/internal/post"
	"forum-service/internal/shared/db"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Tally is the post's aggregate after an operation, together with the
// caller's own direction.
type Tally struct {
	Up       int       `json:"upVote"`
	Down     int       `json:"downVote"`
	UserVote Direction `json:"userVote"`
}

type Repository interface {
	// Apply runs the full read-modify-write for one vote request in a
	// single transaction with the post row locked.
	Apply(ctx context.Context, postID uint, voter string, dir Direction) (Tally, error)
	Counts(ctx context.Context, postID uint, forVoter string) (Tally, error)
}

type repo struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewRepository(s *db.Store, rdb *redis.Client) Repository {
	return &repo{db: s.DB, rdb: rdb}
}

const countTTL = time.Hour

func upKey(postID uint) string   { return fmt.Sprintf("votes:up:%d", postID) }
func downKey(postID uint) string { return fmt.Sprintf("votes:down:%d", postID) }

func (r *repo) Apply(ctx context.Context, postID uint, voter string, dir Direction) (Tally, error) {
	var t Tally
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the post row: votes on the same post serialize here,
		// votes on different posts proceed independently.
		var p post.Post
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&p, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("post %d: %w", postID, apperr.ErrNotFound)
			}
			return err
		}

		prev := None
		var pv PostVote
		switch err := tx.Where("post_id = ? AND user_email = ?", postID, voter).
			First(&pv).Error; {
		case err == nil:
			prev = pv.Direction
		case errors.Is(err, gorm.ErrRecordNotFound):
		default:
			return err
		}

		d := transition(prev, dir)
		switch {
		case d.next == None:
			if err := tx.Delete(&PostVote{}, "post_id = ? AND user_email = ?", postID, voter).Error; err != nil {
				return err
			}
		case prev == None:
			if err := tx.Create(&PostVote{PostID: postID, UserEmail: voter, Direction: d.next}).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return fmt.Errorf("concurrent vote by %s on %d: %w", voter, postID, apperr.ErrConflict)
				}
				return err
			}
		default:
			if err := tx.Model(&PostVote{}).
				Where("post_id = ? AND user_email = ?", postID, voter).
				Update("direction", d.next).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&post.Post{}).Where("id = ?", postID).Updates(map[string]any{
			"up_count":   gorm.Expr("up_count + ?", d.dUp),
			"down_count": gorm.Expr("down_count + ?", d.dDown),
		}).Error; err != nil {
			return err
		}

		// The row is locked, so arithmetic on the read value is exact.
		t = Tally{Up: p.UpCount + d.dUp, Down: p.DownCount + d.dDown, UserVote: d.next}
		return nil
	})
	if err != nil {
		return Tally{}, err
	}
	r.cacheCounts(ctx, postID, t)
	return t, nil
}

func (r *repo) Counts(ctx context.Context, postID uint, forVoter string) (Tally, error) {
	var t Tally
	hit := false
	if r.rdb != nil {
		if vals, err := r.rdb.MGet(ctx, upKey(postID), downKey(postID)).Result(); err == nil && vals[0] != nil && vals[1] != nil {
			fmt.Sscan(vals[0].(string), &t.Up)
			fmt.Sscan(vals[1].(string), &t.Down)
			hit = true
		}
	}
	if !hit {
		var p post.Post
		if err := r.db.WithContext(ctx).First(&p, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return Tally{}, fmt.Errorf("post %d: %w", postID, apperr.ErrNotFound)
			}
			return Tally{}, err
		}
		t.Up, t.Down = p.UpCount, p.DownCount
		r.cacheCounts(ctx, postID, t)
	}
	if forVoter != "" {
		var pv PostVote
		if err := r.db.WithContext(ctx).
			Where("post_id = ? AND user_email = ?", postID, forVoter).
			First(&pv).Error; err == nil {
			t.UserVote = pv.Direction
		}
	}
	return t, nil
}

// cacheCounts refreshes the Redis read-path cache after commit. Best
// effort: Postgres stays the source of truth, and the TTL bounds how
// long an entry can outlive its row.
func (r *repo) cacheCounts(ctx context.Context, postID uint, t Tally) {
	if r.rdb == nil {
		return
	}
	pipe := r.rdb.TxPipeline()
	pipe.Set(ctx, upKey(postID), t.Up, countTTL)
	pipe.Set(ctx, downKey(postID), t.Down, countTTL)
	_, _ = pipe.Exec(ctx)
}

// CountCache drops the cached counts for a post. Post deletion calls it
// so a deleted post stops serving vote reads from Redis.
type CountCache struct{ rdb *redis.Client }

func NewCountCache(rdb *redis.Client) *CountCache { return &CountCache{rdb: rdb} }

func (c *CountCache) Invalidate(ctx context.Context, postID uint) {
	if c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, upKey(postID), downKey(postID)).Err()
}
