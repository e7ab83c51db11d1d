package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"

	"codecrew/models"
)

type contextKey string

const UserContextKey contextKey = "user"

// CallerResolver turns a bearer token into the user it belongs to.
type CallerResolver interface {
	ResolveCaller(ctx context.Context, token string) (*models.User, error)
}

// Authenticate rejects requests without a valid bearer token and stores the
// resolved caller in the request context.
func Authenticate(resolver CallerResolver, logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := resolver.ResolveCaller(r.Context(), bearerToken(r.Header.Get("Authorization")))
			if err != nil {
				var appErr *models.AppError
				if errors.As(err, &appErr) && appErr.Code == models.CodeUnauthenticated {
					logger.Debug("authentication failed", "path", r.URL.Path, "err", err)
					writeMessage(w, http.StatusUnauthorized, appErr.Message)
					return
				}
				logger.Error("resolve caller", "path", r.URL.Path, "err", err)
				writeMessage(w, http.StatusInternalServerError, "Something went wrong!")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// RequireRole only lets callers holding one of roles through. It must run
// after Authenticate.
func RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	labels := make([]string, len(roles))
	for i, role := range roles {
		labels[i] = role.Label()
	}
	denied := "Access denied. " + strings.Join(labels, " or ") + " role required."

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetUserFromContext(r.Context())
			if user == nil {
				writeMessage(w, http.StatusUnauthorized, "No token, authorization denied")
				return
			}

			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			writeMessage(w, http.StatusForbidden, denied)
		})
	}
}

func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, UserContextKey, user)
}

func GetUserFromContext(ctx context.Context) *models.User {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Anything else yields "".
func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
