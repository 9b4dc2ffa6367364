package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/libshelf/libshelf-be/internal/auth"
	"github.com/libshelf/libshelf-be/internal/services"
)

// AuthHandler handles token issuance and refresh.
type AuthHandler struct {
	service services.AccountServiceProvider
	issuer  *auth.TokenIssuer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.AccountServiceProvider, issuer *auth.TokenIssuer) *AuthHandler {
	return &AuthHandler{service: service, issuer: issuer}
}

// TokenResponse is the body returned by the token endpoints.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Token exchanges form credentials for a bearer token. The username form
// field carries the account's email.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid form data")
		return
	}
	email := r.PostFormValue("username")
	password := r.PostFormValue("password")

	account, err := h.service.Authenticate(r.Context(), email, password)
	if err != nil {
		log.Warn().Str("email", email).Msg("Failed authentication attempt")
		writeDetail(w, http.StatusBadRequest, "Incorrect email or password")
		return
	}

	token, err := h.issuer.Issue(account.Email)
	if err != nil {
		log.Error().Err(err).Uint("account_id", account.ID).Msg("Failed to sign token")
		writeDetail(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{AccessToken: token, TokenType: "Bearer"})
}

// Refresh issues a new token with a fresh expiration for the already
// authenticated account.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.AccountFromContext(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	token, err := h.issuer.Issue(account.Email)
	if err != nil {
		log.Error().Err(err).Uint("account_id", account.ID).Msg("Failed to sign refreshed token")
		writeDetail(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{AccessToken: token, TokenType: "Bearer"})
}
