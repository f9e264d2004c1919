package comment

import (
	"errors"
	"fmt"
	"testing"

	"forum-service/internal/apperr"
	"forum-service/internal/post"
)

type fakeComments struct {
	items  map[uint]*Comment
	nextID uint
}

func newFakeComments() *fakeComments { return &fakeComments{items: map[uint]*Comment{}} }

func (f *fakeComments) Create(c *Comment) error {
	f.nextID++
	c.ID = f.nextID
	f.items[c.ID] = c
	return nil
}

func (f *fakeComments) GetByID(id uint) (*Comment, error) {
	if c, ok := f.items[id]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("comment %d: %w", id, apperr.ErrNotFound)
}

func (f *fakeComments) ListByPost(postID uint, _, _ int) ([]Comment, error) {
	var out []Comment
	for _, c := range f.items {
		if c.PostID == postID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeComments) Delete(id uint) error {
	delete(f.items, id)
	return nil
}

type fakePosts struct {
	existing map[uint]bool
}

func (f *fakePosts) GetByID(id uint) (*post.Post, error) {
	if f.existing[id] {
		return &post.Post{ID: id}, nil
	}
	return nil, fmt.Errorf("post %d: %w", id, apperr.ErrNotFound)
}

func (f *fakePosts) Create(*post.Post) error                   { return nil }
func (f *fakePosts) List(post.ListFilter) ([]post.Post, error) { return nil, nil }
func (f *fakePosts) Update(*post.Post) error                   { return nil }
func (f *fakePosts) Delete(uint) error                         { return nil }
func (f *fakePosts) CountByAuthor(string) (int64, error)       { return 0, nil }

func TestCreateRequiresExistingPost(t *testing.T) {
	svc := NewService(newFakeComments(), &fakePosts{existing: map[uint]bool{1: true}})

	if _, err := svc.Create(2, "a@b.com", CreateReq{Content: "hi"}); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("want NotFound for missing post, got %v", err)
	}
	c, err := svc.Create(1, "a@b.com", CreateReq{Content: "hi"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.PostID != 1 || c.AuthorEmail != "a@b.com" {
		t.Fatalf("comment = %+v", c)
	}
}

func TestDeleteAuthorOrAdmin(t *testing.T) {
	repo := newFakeComments()
	svc := NewService(repo, &fakePosts{existing: map[uint]bool{1: true}})

	c1, _ := svc.Create(1, "a@b.com", CreateReq{Content: "one"})
	c2, _ := svc.Create(1, "a@b.com", CreateReq{Content: "two"})

	if err := svc.Delete(c1.ID, "other@b.com", false); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("want Forbidden, got %v", err)
	}
	if err := svc.Delete(c1.ID, "a@b.com", false); err != nil {
		t.Fatalf("author delete: %v", err)
	}
	if err := svc.Delete(c2.ID, "mod@b.com", true); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
}
