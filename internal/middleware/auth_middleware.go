package middleware

import (
	"context"
	"net/http"
	"strings"

	"teamboard-server/internal/domain"
	"teamboard-server/pkg/response"
)

type contextKey string

const ActorKey contextKey = "actor"

// ActorSource resolves a bearer token into the authenticated actor. The
// auth service implements it by validating the token and reloading the user
// record.
type ActorSource interface {
	ActorFromToken(token string) (*domain.Actor, error)
}

func AuthMiddleware(source ActorSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w, "Missing authorization header")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				response.Unauthorized(w, "Invalid authorization header format")
				return
			}

			actor, err := source.ActorFromToken(parts[1])
			if err != nil {
				response.Unauthorized(w, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), ActorKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetActor(r *http.Request) *domain.Actor {
	actor, ok := r.Context().Value(ActorKey).(*domain.Actor)
	if !ok {
		return nil
	}
	return actor
}
