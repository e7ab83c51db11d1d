package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"codecrew/models"
)

// envelope is the JSON body of every response: a message plus payload keys.
type envelope map[string]any

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{"message": message})
}

var statusByCode = map[string]int{
	models.CodeValidation:       http.StatusBadRequest,
	models.CodeUnauthenticated:  http.StatusUnauthorized,
	models.CodeForbidden:        http.StatusForbidden,
	models.CodeNotFound:         http.StatusNotFound,
	models.CodeConflict:         http.StatusConflict,
	models.CodeUnsupportedMedia: http.StatusBadRequest,
}

// writeError maps err onto a status code. Unclassified errors are logged
// and answered with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, logger *log.Logger, err error) {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		if status, ok := statusByCode[appErr.Code]; ok {
			writeMessage(w, status, appErr.Message)
			return
		}
	}

	logger.Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", chimiddleware.GetReqID(r.Context()),
		"err", err)
	writeMessage(w, http.StatusInternalServerError, "Something went wrong!")
}
