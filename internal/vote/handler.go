package vote

import (
	"net/http"

	"forum-service/internal/shared/httpx"
)

type CastReq struct {
	VoteType string `json:"voteType"`
}

type Handler struct{ svc Service }

func NewHandler(s Service) *Handler { return &Handler{svc: s} }

func (h *Handler) Cast(w http.ResponseWriter, r *http.Request) error {
	voter, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	postID, err := httpx.PathID(r, "post_id")
	if err != nil {
		return err
	}
	in, err := httpx.Decode[CastReq](r)
	if err != nil {
		return err
	}
	t, err := h.svc.Apply(r.Context(), postID, voter, in.VoteType)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, renderTally(t), http.StatusOK)
	return nil
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) error {
	voter, _ := httpx.UserFromCtx(r)
	postID, err := httpx.PathID(r, "post_id")
	if err != nil {
		return err
	}
	t, err := h.svc.Counts(r.Context(), postID, voter)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, renderTally(t), http.StatusOK)
	return nil
}

func renderTally(t Tally) map[string]any {
	uv := "none"
	if t.UserVote != None {
		uv = string(t.UserVote)
	}
	return map[string]any{"upVote": t.Up, "downVote": t.Down, "userVote": uv}
}
