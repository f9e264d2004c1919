package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"forum-service/internal/apperr"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{apperr.ErrInvalidArgument, http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", apperr.ErrInvalidArgument), http.StatusBadRequest},
		{apperr.ErrUnauthorized, http.StatusUnauthorized},
		{apperr.ErrForbidden, http.StatusForbidden},
		{apperr.ErrQuotaExceeded, http.StatusForbidden},
		{apperr.ErrNotFound, http.StatusNotFound},
		{errors.New("boom"), http.StatusInternalServerError},
		{apperr.ErrConflict, http.StatusInternalServerError},
	}
	for _, tc := range tests {
		if got := StatusOf(tc.err); got != tc.code {
			t.Errorf("StatusOf(%v) = %d, want %d", tc.err, got, tc.code)
		}
	}
}

func TestWrapWritesTaxonomyCode(t *testing.T) {
	h := Wrap(func(w http.ResponseWriter, r *http.Request) error {
		return fmt.Errorf("post 42: %w", apperr.ErrNotFound)
	})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/posts/42", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("code = %d, want 404", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}
}

func TestPathID(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/posts/7", nil)
	r.SetPathValue("post_id", "7")
	if id, err := PathID(r, "post_id"); err != nil || id != 7 {
		t.Fatalf("PathID = (%d, %v)", id, err)
	}

	for _, bad := range []string{"", "0", "-1", "seven"} {
		r := httptest.NewRequest(http.MethodGet, "/posts/x", nil)
		r.SetPathValue("post_id", bad)
		if _, err := PathID(r, "post_id"); !errors.Is(err, apperr.ErrInvalidArgument) {
			t.Errorf("PathID(%q): want InvalidArgument, got %v", bad, err)
		}
	}
}

func TestUserFromCtx(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, err := UserFromCtx(r); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("want Unauthorized, got %v", err)
	}
	r = WithIdentity(r, "a@b.com", true)
	uid, err := UserFromCtx(r)
	if err != nil || uid != "a@b.com" {
		t.Fatalf("UserFromCtx = (%q, %v)", uid, err)
	}
	if !IsAdmin(r) {
		t.Fatal("admin flag lost")
	}
}
