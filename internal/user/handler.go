package user

import (
	"net/http"

	"forum-service/internal/shared/httpx"
	"forum-service/internal/shared/jwt"
	"forum-service/internal/shared/validate"
)

type Handler struct{ svc Service }

func NewHandler(s Service) *Handler { return &Handler{svc: s} }

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) error {
	body, err := httpx.Decode[RegisterReq](r)
	if err != nil {
		return err
	}
	if err = validate.Struct(body); err != nil {
		return err
	}
	u, err := h.svc.Register(body.Email, body.Password, body.Name)
	if err != nil {
		return err
	}
	token, _ := jwt.Make(u.Email, u.Role == RoleAdmin)
	httpx.WriteJSON(w, map[string]any{
		"email": u.Email, "name": u.Name, "access_token": token,
	}, http.StatusCreated)
	return nil
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) error {
	body, err := httpx.Decode[LoginReq](r)
	if err != nil {
		return err
	}
	if err = validate.Struct(body); err != nil {
		return err
	}
	u, err := h.svc.Login(body.Email, body.Password)
	if err != nil {
		return err
	}
	token, _ := jwt.Make(u.Email, u.Role == RoleAdmin)
	httpx.WriteJSON(w, map[string]any{
		"message": "login successful", "email": u.Email, "name": u.Name, "access_token": token,
	}, http.StatusOK)
	return nil
}

func (h *Handler) GetByEmail(w http.ResponseWriter, r *http.Request) error {
	u, err := h.svc.GetByEmail(r.PathValue("email"))
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, u, http.StatusOK)
	return nil
}

func (h *Handler) MyProfile(w http.ResponseWriter, r *http.Request) error {
	email, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	p, err := h.svc.Profile(email)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, p, http.StatusOK)
	return nil
}
