package handlers

import (
	"net/http"

	"github.com/charmbracelet/log"

	"codecrew/middleware"
	"codecrew/services"
	"codecrew/uploads"
)

type UserHandler struct {
	identity IdentityService
	logger   *log.Logger
}

func NewUserHandler(identity IdentityService, logger *log.Logger) *UserHandler {
	return &UserHandler{
		identity: identity,
		logger:   logger,
	}
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "User")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	user, err := h.identity.GetProfile(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{"message": "User fetched successfully", "user": user})
}

// UpdateProfile accepts JSON, or multipart with an optional profilePhoto.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var (
		patch services.ProfilePatch
		photo *uploads.File
		err   error
	)
	if isMultipart(r) {
		photo, err = parseMultipart(w, r, uploads.ProfilePhoto)
		if err == nil {
			f := &form{r: r}
			patch = services.ProfilePatch{
				Name:     f.str("name"),
				Email:    f.str("email"),
				Password: f.str("password"),
				Bio:      f.str("bio"),
				Skills:   f.list("skills"),
				Position: f.str("position"),
			}
			err = f.err
		}
	} else {
		err = decodeJSON(w, r, &patch)
	}
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	user, err := h.identity.UpdateProfile(r.Context(), middleware.GetUserFromContext(r.Context()), patch, photo)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{"message": "Profile updated successfully", "user": user})
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.identity.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{"message": "Users fetched successfully", "users": users})
}
