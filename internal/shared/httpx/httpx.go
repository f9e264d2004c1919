package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"forum-service/internal/apperr"
	"forum-service/internal/shared/jwt"
)

type HandlerFunc func(http.ResponseWriter, *http.Request) error

func Wrap(fn HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			code := StatusOf(err)
			if code == http.StatusInternalServerError {
				log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
			}
			WriteJSON(w, map[string]any{"error": err.Error()}, code)
		}
	})
}

// StatusOf maps the apperr taxonomy onto HTTP status codes.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, apperr.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrForbidden), errors.Is(err, apperr.ErrQuotaExceeded):
		return http.StatusForbidden
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func Decode[T any](r *http.Request) (T, error) {
	var t T
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		return t, errors.Join(apperr.ErrInvalidArgument, err)
	}
	return t, nil
}

func WriteJSON(w http.ResponseWriter, v any, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type ctxKey string

const (
	ctxUserIDKey ctxKey = "httpx.user_id"
	ctxAdminKey  ctxKey = "httpx.admin"
)

// AuthMiddleware verifies the bearer token and stashes the verified
// identity in the request context. Mutating routes always derive the
// actor from here, never from request bodies.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			WriteJSON(w, map[string]any{"error": "unauthorized", "reason": "missing bearer"}, http.StatusUnauthorized)
			return
		}
		uid, adm, err := jwt.Parse(strings.TrimSpace(h[7:]))
		if err != nil || uid == "" {
			WriteJSON(w, map[string]any{"error": "unauthorized", "reason": "bad token"}, http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), ctxUserIDKey, uid)
		ctx = context.WithValue(ctx, ctxAdminKey, adm)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminMiddleware sits behind AuthMiddleware and rejects non-admins.
func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if adm, _ := r.Context().Value(ctxAdminKey).(bool); !adm {
			WriteJSON(w, map[string]any{"error": "forbidden", "reason": "admin only"}, http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func UserFromCtx(r *http.Request) (string, error) {
	uid, _ := r.Context().Value(ctxUserIDKey).(string)
	if uid == "" {
		return "", apperr.ErrUnauthorized
	}
	return uid, nil
}

func IsAdmin(r *http.Request) bool {
	adm, _ := r.Context().Value(ctxAdminKey).(bool)
	return adm
}

// WithIdentity is a test helper mirroring what AuthMiddleware stores.
func WithIdentity(r *http.Request, uid string, admin bool) *http.Request {
	ctx := context.WithValue(r.Context(), ctxUserIDKey, uid)
	ctx = context.WithValue(ctx, ctxAdminKey, admin)
	return r.WithContext(ctx)
}

// PathID parses a numeric path segment, rejecting zero and garbage.
func PathID(r *http.Request, key string) (uint, error) {
	n, err := strconv.ParseUint(r.PathValue(key), 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("bad %s: %w", key, apperr.ErrInvalidArgument)
	}
	return uint(n), nil
}

func QueryInt(r *http.Request, key string, def int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
