package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/hajorau/saveenergy/internal/service"
	"github.com/hajorau/saveenergy/pkg/httpx"
	"github.com/hajorau/saveenergy/pkg/slogx"
)

// RegisterHandler serves POST /auth/register.
type RegisterHandler struct {
	UserService *service.UserService
}

type registerRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
	Organization string `json:"organization,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

type registerResponse struct {
	OK bool  `json:"ok"`
	ID int64 `json:"id"`
}

// ServeHTTP godoc
//
//	@Summary		Register a new account
//	@Description	Creates a user account. The email address is normalized (trimmed, lower-cased) before the uniqueness check.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		registerRequest	true	"Registration payload"
//	@Success		201		{object}	registerResponse
//	@Failure		400		{object}	httpx.ErrorResponse	"validation failure, names the field"
//	@Failure		409		{object}	httpx.ErrorResponse	"email already registered"
//	@Failure		429		{object}	httpx.ErrorResponse
//	@Router			/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	if field, msg := validateCredentials(req.Email, req.Password); field != "" {
		httpx.WriteFieldError(w, msg, field)
		return
	}

	id, err := h.UserService.Register(ctx, service.RegisterParams{
		Email:        req.Email,
		Password:     req.Password,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Organization: req.Organization,
		Phone:        req.Phone,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			httpx.WriteError(w, http.StatusConflict, "email already registered")
			return
		}
		log.Error("register failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, registerResponse{OK: true, ID: id})
}

// LoginHandler serves POST /auth/login.
type LoginHandler struct {
	UserService *service.UserService
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// ServeHTTP godoc
//
//	@Summary		Log in
//	@Description	Verifies credentials and issues a signed bearer token. Unknown email and wrong password are indistinguishable.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		loginRequest	true	"Credentials"
//	@Success		200		{object}	loginResponse
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		401		{object}	httpx.ErrorResponse	"invalid credentials"
//	@Failure		429		{object}	httpx.ErrorResponse
//	@Header			200		{string}	Cache-Control		"no-store"
//	@Router			/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	token, err := h.UserService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpx.WriteError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		log.Error("login failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, loginResponse{Token: token})
}

// validateCredentials checks the registration fields a handler can reject
// before touching the service. Returns the offending field name, or "" when
// everything passes.
func validateCredentials(email, password string) (field, msg string) {
	email = strings.TrimSpace(email)
	switch {
	case email == "":
		return "email", "email is required"
	case !strings.Contains(email, "@"):
		return "email", "email is not a valid address"
	case password == "":
		return "password", "password is required"
	case len(password) < 6:
		return "password", "password must be at least 6 characters"
	}
	return "", ""
}
