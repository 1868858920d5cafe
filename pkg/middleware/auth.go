package middleware

import (
	"net/http"
	"strings"

	"salongate/pkg/client"
	apperrors "salongate/pkg/errors"
	apphttp "salongate/pkg/http"
	"salongate/pkg/lifecycle"
	"salongate/pkg/logger"
	"salongate/pkg/session"
)

// Authenticate resolves the bearer token into a session by asking the
// backend who the caller is, then stashes the session in the request
// context. The backend remains the authority on token validity; a stale
// or revoked token surfaces here as 401.
func Authenticate(users *client.UserClient, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r)
			if err != nil {
				apphttp.WriteError(w, err)
				return
			}

			user, err := users.Profile(r.Context(), session.Session{Token: token})
			if err != nil {
				apphttp.WriteError(w, err)
				return
			}

			role, ok := lifecycle.ParseRole(user.Role)
			if !ok {
				log.Warn("Unknown role on profile",
					"request_id", RequestID(r.Context()),
					"role", user.Role,
					"user_id", user.ID,
				)
				apphttp.WriteError(w, apperrors.PermissionDenied("unrecognized role"))
				return
			}

			sess := session.Session{
				Token:  token,
				Role:   role,
				UserID: user.ID,
				Name:   user.Name,
				Email:  user.Email,
			}

			next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), sess)))
		})
	}
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", apperrors.AuthenticationRequired("missing Authorization header")
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", apperrors.AuthenticationRequired("Authorization header must be a bearer token")
	}

	return strings.TrimSpace(token), nil
}
