package handlers

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"

	"codecrew/middleware"
	"codecrew/models"
	"codecrew/services"
	"codecrew/uploads"
)

// IdentityService is the part of services.Identity the HTTP layer uses.
type IdentityService interface {
	Register(ctx context.Context, in services.RegisterInput) (*services.Session, error)
	Authenticate(ctx context.Context, in services.LoginInput) (*services.Session, error)
	GetProfile(ctx context.Context, id uint) (*models.User, error)
	UpdateProfile(ctx context.Context, caller *models.User, patch services.ProfilePatch, photo *uploads.File) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

type AuthHandler struct {
	identity IdentityService
	logger   *log.Logger
}

func NewAuthHandler(identity IdentityService, logger *log.Logger) *AuthHandler {
	return &AuthHandler{
		identity: identity,
		logger:   logger,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	session, err := h.identity.Register(r.Context(), in)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, envelope{
		"message": "User registered successfully",
		"token":   session.Token,
		"user":    session.User,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in services.LoginInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	session, err := h.identity.Authenticate(r.Context(), in)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		"message": "Login successful",
		"token":   session.Token,
		"user":    session.User,
	})
}

// Me returns the authenticated caller.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, envelope{
		"message": "Current user",
		"user":    middleware.GetUserFromContext(r.Context()),
	})
}
