package rest

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"nhadat-service/internal/contextkeys"
	"nhadat-service/internal/core/port"
)

type contextKey string

const userIDKey = contextKey("userID")

// AuthMiddleware exchanges the bearer token for a verified identity and
// stores the user id in the request context.
func AuthMiddleware(auth port.AuthPort) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				WriteJSONError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			identity, err := auth.GetUser(r.Context(), token)
			if err != nil || identity == nil {
				contextkeys.LoggerFromContext(r.Context()).Warn("Token exchange failed", port.Fields{
					"error": errMessage(err),
				})
				WriteJSONError(w, http.StatusUnauthorized, "Invalid authentication")
				return
			}

			userID, err := uuid.Parse(identity.ID)
			if err != nil {
				WriteJSONError(w, http.StatusUnauthorized, "Invalid authentication")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func userIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

func errMessage(err error) string {
	if err == nil {
		return "no identity returned"
	}
	return err.Error()
}
