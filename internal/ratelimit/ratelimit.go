package ratelimit

import (
	"context"
	"net/http"
	"time"

	"forum-service/internal/shared/httpx"

	"github.com/redis/go-redis/v9"
)

type Limiter struct {
	R *redis.Client
}

func New(r *redis.Client) *Limiter { return &Limiter{R: r} }

func (l *Limiter) Allow(ctx context.Context, key string, limit int64, window time.Duration) (bool, int64, error) {
	k := "rl:" + key
	pipe := l.R.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, err
	}
	n := incr.Val()
	return n <= limit, n, nil
}

// LimitHTTP caps requests per verified user inside the window. It sits
// behind AuthMiddleware; unauthenticated requests never reach it.
func (l *Limiter) LimitHTTP(limit int64, window time.Duration, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, err := httpx.UserFromCtx(r)
		if err != nil {
			httpx.WriteJSON(w, map[string]any{"error": "unauthorized"}, http.StatusUnauthorized)
			return
		}
		ok, n, e := l.Allow(r.Context(), uid+":"+r.URL.Path, limit, window)
		if e != nil {
			// Redis down: let the request through rather than block writes.
			next.ServeHTTP(w, r)
			return
		}
		if !ok {
			httpx.WriteJSON(w, map[string]any{"error": "rate limit exceeded", "count": n, "limit": limit}, http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
