package handlers

import (
	"context"
	"encoding/json"
	"net/http"
)

// AllowAllAuthorizer approves every management request. Used when the admin
// API sits behind an external gateway that already authenticates operators.
type AllowAllAuthorizer struct{}

func (AllowAllAuthorizer) CanManage(ctx context.Context, userID, guildID string) (bool, error) {
	return true, nil
}

// RequireToken guards a handler with a static bearer token. An empty token
// disables the check.
func RequireToken(token string, next http.Handler) http.Handler {
	if token == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+token {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(errorResponse{Error: "invalid or missing token"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
