package payment

import (
	"net/http"

	"forum-service/internal/shared/httpx"
	"forum-service/internal/shared/validate"
)

type Handler struct{ svc Service }

func NewHandler(s Service) *Handler { return &Handler{svc: s} }

// Record consumes the client-reported payment confirmation. The paying
// identity comes from the verified token, never from the body.
func (h *Handler) Record(w http.ResponseWriter, r *http.Request) error {
	email, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	in, err := httpx.Decode[RecordReq](r)
	if err != nil {
		return err
	}
	if err := validate.Struct(in); err != nil {
		return err
	}
	resp, err := h.svc.Record(r.Context(), email, in)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, resp, http.StatusOK)
	return nil
}

func (h *Handler) CreateIntent(w http.ResponseWriter, r *http.Request) error {
	email, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	in, err := httpx.Decode[IntentReq](r)
	if err != nil {
		return err
	}
	if err := validate.Struct(in); err != nil {
		return err
	}
	intent, err := h.svc.CreateIntent(r.Context(), email, in)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, intent, http.StatusCreated)
	return nil
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) error {
	email, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	limit := httpx.QueryInt(r, "limit", 50)
	offset := httpx.QueryInt(r, "offset", 0)
	items, err := h.svc.History(email, limit, offset)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]any{"items": items, "limit": limit, "offset": offset}, http.StatusOK)
	return nil
}
