package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dukerupert/superlista/internal/auth"
	"github.com/dukerupert/superlista/internal/model"
)

// UserIDHeader carries the acting user's id on API requests.
const UserIDHeader = "X-User-ID"

// UserLookup resolves a user id. store.UserStore satisfies it.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// Identify resolves the X-User-ID header and populates AuthContext. Requests
// without the header, or naming an unknown user, pass through anonymously.
func Identify(users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(UserIDHeader)
			if id == "" {
				next.ServeHTTP(w, r)
				return
			}

			u, err := users.GetByID(r.Context(), id)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "failed to resolve user")
				return
			}
			if u == nil {
				next.ServeHTTP(w, r)
				return
			}

			noteUser(r.Context(), u.ID, u.Name)
			ctx := auth.WithAuth(r.Context(), auth.AuthContext{UserID: u.ID, Name: u.Name})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser rejects requests that Identify left anonymous.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth.UserID(r.Context()) == "" {
			writeError(w, http.StatusUnauthorized, "missing or unknown "+UserIDHeader)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
