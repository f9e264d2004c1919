package post

import (
	"errors"
	"net/http"
	"strings"

	"forum-service/internal/membership"
	"forum-service/internal/shared/httpx"
	"forum-service/internal/shared/validate"
)

type Handler struct{ svc Service }

func NewHandler(s Service) *Handler { return &Handler{svc: s} }

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) error {
	author, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	in, err := httpx.Decode[CreateReq](r)
	if err != nil {
		return err
	}
	if err := validate.Struct(in); err != nil {
		return err
	}
	p, err := h.svc.Create(author, in)
	if err != nil {
		return h.writeQuotaDenial(w, err)
	}
	httpx.WriteJSON(w, p, http.StatusCreated)
	return nil
}

func (h *Handler) UploadAndCreate(w http.ResponseWriter, r *http.Request) error {
	author, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	if err := r.ParseMultipartForm(20 << 20); err != nil { // 20MB
		return err
	}
	file, hdr, err := r.FormFile("file")
	if err != nil {
		return err
	}
	defer file.Close()

	in := CreateReq{
		Title:   strings.TrimSpace(r.FormValue("title")),
		Content: strings.TrimSpace(r.FormValue("content")),
		Tag:     strings.TrimSpace(r.FormValue("tag")),
	}
	if err := validate.Struct(in); err != nil {
		return err
	}
	p, err := h.svc.UploadAndCreate(author, hdr.Filename, hdr.Header.Get("Content-Type"), hdr.Size, file, in)
	if err != nil {
		return h.writeQuotaDenial(w, err)
	}
	httpx.WriteJSON(w, p, http.StatusCreated)
	return nil
}

// writeQuotaDenial renders the machine-readable limitReached body for
// quota denials and passes every other error through to httpx.Wrap.
func (h *Handler) writeQuotaDenial(w http.ResponseWriter, err error) error {
	var qe *membership.QuotaError
	if errors.As(err, &qe) {
		httpx.WriteJSON(w, map[string]any{
			"error":        qe.Error(),
			"limitReached": true,
			"current":      qe.Decision.CurrentCount,
			"limit":        qe.Decision.Limit,
		}, http.StatusForbidden)
		return nil
	}
	return err
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) error {
	id, err := httpx.PathID(r, "post_id")
	if err != nil {
		return err
	}
	p, err := h.svc.GetByID(id)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, p, http.StatusOK)
	return nil
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) error {
	f := ListFilter{
		AuthorEmail: r.URL.Query().Get("author"),
		Tag:         r.URL.Query().Get("tag"),
		Limit:       httpx.QueryInt(r, "limit", 50),
		Offset:      httpx.QueryInt(r, "offset", 0),
	}
	items, err := h.svc.List(f)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]any{"items": items, "limit": f.Limit, "offset": f.Offset}, http.StatusOK)
	return nil
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) error {
	actor, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	id, err := httpx.PathID(r, "post_id")
	if err != nil {
		return err
	}
	in, err := httpx.Decode[UpdateReq](r)
	if err != nil {
		return err
	}
	if err := validate.Struct(in); err != nil {
		return err
	}
	p, err := h.svc.Update(id, actor, in)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, p, http.StatusOK)
	return nil
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) error {
	actor, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	id, err := httpx.PathID(r, "post_id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(id, actor, httpx.IsAdmin(r)); err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]string{"status": "deleted"}, http.StatusOK)
	return nil
}
