package tag

import (
	"net/http"
	"strings"

	"forum-service/internal/shared/httpx"
	"forum-service/internal/shared/validate"
)

type Handler struct{ repo Repository }

func NewHandler(r Repository) *Handler { return &Handler{repo: r} }

func (h *Handler) List(w http.ResponseWriter, r *http.Request) error {
	tags, err := h.repo.ListAll()
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]any{"items": tags}, http.StatusOK)
	return nil
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) error {
	in, err := httpx.Decode[CreateReq](r)
	if err != nil {
		return err
	}
	if err := validate.Struct(in); err != nil {
		return err
	}
	t := &Tag{Name: strings.ToLower(strings.TrimSpace(in.Name))}
	if err := h.repo.Create(t); err != nil {
		return err
	}
	httpx.WriteJSON(w, t, http.StatusCreated)
	return nil
}
