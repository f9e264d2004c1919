package post

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"forum-service/internal/apperr"
	"forum-service/internal/kafka"
	"forum-service/internal/membership"
)

type fakeRepo struct {
	posts  map[uint]*Post
	nextID uint
}

func newFakeRepo() *fakeRepo { return &fakeRepo{posts: map[uint]*Post{}} }

func (f *fakeRepo) Create(p *Post) error {
	f.nextID++
	p.ID = f.nextID
	cp := *p
	f.posts[p.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(id uint) (*Post, error) {
	if p, ok := f.posts[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, fmt.Errorf("post %d: %w", id, apperr.ErrNotFound)
}

func (f *fakeRepo) List(ListFilter) ([]Post, error) { return nil, nil }

func (f *fakeRepo) Update(p *Post) error {
	f.posts[p.ID] = p
	return nil
}

func (f *fakeRepo) Delete(id uint) error {
	delete(f.posts, id)
	return nil
}

func (f *fakeRepo) CountByAuthor(email string) (int64, error) {
	var n int64
	for _, p := range f.posts {
		if p.AuthorEmail == email {
			n++
		}
	}
	return n, nil
}

type fakeGate struct {
	decision membership.Decision
	err      error
	asked    string
}

func (f *fakeGate) CanCreate(author string) (membership.Decision, error) {
	f.asked = author
	return f.decision, f.err
}

func TestCreateAllowedByGate(t *testing.T) {
	repo := newFakeRepo()
	gate := &fakeGate{decision: membership.Decision{Allowed: true, Limit: 5}}
	svc := NewService(repo, gate, kafka.Nop{}, nil, nil)

	p, err := svc.Create("a@b.com", CreateReq{Title: "hello", Content: "world", Tag: "general"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if gate.asked != "a@b.com" {
		t.Fatalf("gate asked about %q", gate.asked)
	}
	if p.AuthorEmail != "a@b.com" || p.Title != "hello" || p.UpCount != 0 || p.DownCount != 0 {
		t.Fatalf("post = %+v", p)
	}
}

func TestCreateDeniedByGate(t *testing.T) {
	repo := newFakeRepo()
	gate := &fakeGate{decision: membership.Decision{Allowed: false, CurrentCount: 5, Limit: 5}}
	svc := NewService(repo, gate, kafka.Nop{}, nil, nil)

	_, err := svc.Create("a@b.com", CreateReq{Title: "t", Content: "c"})
	var qe *membership.QuotaError
	if !errors.As(err, &qe) {
		t.Fatalf("want QuotaError, got %v", err)
	}
	if !errors.Is(err, apperr.ErrQuotaExceeded) {
		t.Fatal("QuotaError must map into the taxonomy")
	}
	if len(repo.posts) != 0 {
		t.Fatal("denied create must not insert")
	}
}

func TestUpdateOnlyByAuthor(t *testing.T) {
	repo := newFakeRepo()
	gate := &fakeGate{decision: membership.Decision{Allowed: true}}
	svc := NewService(repo, gate, kafka.Nop{}, nil, nil)

	p, _ := svc.Create("a@b.com", CreateReq{Title: "t", Content: "c"})

	if _, err := svc.Update(p.ID, "other@b.com", UpdateReq{Title: "x"}); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("want Forbidden, got %v", err)
	}
	got, err := svc.Update(p.ID, "a@b.com", UpdateReq{Title: "new title"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Title != "new title" || got.Content != "c" {
		t.Fatalf("post = %+v", got)
	}
}

type fakeVoteCache struct {
	dropped []uint
}

func (f *fakeVoteCache) Invalidate(_ context.Context, postID uint) {
	f.dropped = append(f.dropped, postID)
}

func TestDeleteDropsCachedVoteCounts(t *testing.T) {
	repo := newFakeRepo()
	gate := &fakeGate{decision: membership.Decision{Allowed: true}}
	cache := &fakeVoteCache{}
	svc := NewService(repo, gate, kafka.Nop{}, nil, cache)

	p, _ := svc.Create("a@b.com", CreateReq{Title: "t", Content: "c"})

	if err := svc.Delete(p.ID, "other@b.com", false); err == nil {
		t.Fatal("forbidden delete must fail")
	}
	if len(cache.dropped) != 0 {
		t.Fatalf("dropped = %v, refused delete must not touch the cache", cache.dropped)
	}
	if err := svc.Delete(p.ID, "a@b.com", false); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(cache.dropped) != 1 || cache.dropped[0] != p.ID {
		t.Fatalf("dropped = %v, want the deleted post's counts gone", cache.dropped)
	}
}

func TestDeleteAuthorOrAdmin(t *testing.T) {
	repo := newFakeRepo()
	gate := &fakeGate{decision: membership.Decision{Allowed: true}}
	svc := NewService(repo, gate, kafka.Nop{}, nil, nil)

	p1, _ := svc.Create("a@b.com", CreateReq{Title: "t1", Content: "c"})
	p2, _ := svc.Create("a@b.com", CreateReq{Title: "t2", Content: "c"})

	if err := svc.Delete(p1.ID, "other@b.com", false); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("want Forbidden, got %v", err)
	}
	if err := svc.Delete(p1.ID, "a@b.com", false); err != nil {
		t.Fatalf("author delete: %v", err)
	}
	if err := svc.Delete(p2.ID, "moderator@b.com", true); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if err := svc.Delete(99, "a@b.com", false); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("want NotFound, got %v", err)
	}
}
