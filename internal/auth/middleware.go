package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/libshelf/libshelf-be/internal/models"
)

// AccountLookup resolves a token subject (email) to its account. Returning
// an error means the account no longer exists and the token is rejected.
type AccountLookup func(ctx context.Context, email string) (*models.Account, error)

type contextKey string

const accountKey = contextKey("currentAccount")

// AccountFromContext returns the authenticated account stored by Middleware.
func AccountFromContext(ctx context.Context) (*models.Account, bool) {
	account, ok := ctx.Value(accountKey).(*models.Account)
	return account, ok
}

// Middleware protects routes with bearer-token authentication. The resolved
// account is injected into the request context.
func Middleware(issuer *TokenIssuer, lookup AccountLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			tokenStr, found := strings.CutPrefix(header, "Bearer ")
			if !found || tokenStr == "" {
				unauthorized(w)
				return
			}

			claims, err := issuer.Verify(tokenStr)
			if err != nil {
				unauthorized(w)
				return
			}

			account, err := lookup(r.Context(), claims.Subject)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), accountKey, account)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"detail": "Could not validate credentials"})
}
