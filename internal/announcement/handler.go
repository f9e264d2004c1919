package announcement

import (
	"net/http"

	"forum-service/internal/shared/httpx"
	"forum-service/internal/shared/validate"
)

type Handler struct{ repo Repository }

func NewHandler(r Repository) *Handler { return &Handler{repo: r} }

func (h *Handler) List(w http.ResponseWriter, r *http.Request) error {
	limit := httpx.QueryInt(r, "limit", 20)
	offset := httpx.QueryInt(r, "offset", 0)
	items, err := h.repo.ListAll(limit, offset)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]any{"items": items, "limit": limit, "offset": offset}, http.StatusOK)
	return nil
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) error {
	author, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	in, err := httpx.Decode[UpsertReq](r)
	if err != nil {
		return err
	}
	if err := validate.Struct(in); err != nil {
		return err
	}
	a := &Announcement{AuthorEmail: author, Title: in.Title, Content: in.Content}
	if err := h.repo.Create(a); err != nil {
		return err
	}
	httpx.WriteJSON(w, a, http.StatusCreated)
	return nil
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) error {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		return err
	}
	in, err := httpx.Decode[UpsertReq](r)
	if err != nil {
		return err
	}
	if err := validate.Struct(in); err != nil {
		return err
	}
	a, err := h.repo.GetByID(id)
	if err != nil {
		return err
	}
	a.Title, a.Content = in.Title, in.Content
	if err := h.repo.Update(a); err != nil {
		return err
	}
	httpx.WriteJSON(w, a, http.StatusOK)
	return nil
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) error {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		return err
	}
	if _, err := h.repo.GetByID(id); err != nil {
		return err
	}
	if err := h.repo.Delete(id); err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]string{"status": "deleted"}, http.StatusOK)
	return nil
}
