package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/libshelf/libshelf-be/internal/auth"
	"github.com/libshelf/libshelf-be/internal/models"
	"github.com/libshelf/libshelf-be/internal/services"
)

// AccountHandler handles HTTP requests for account management.
type AccountHandler struct {
	service services.AccountServiceProvider
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(service services.AccountServiceProvider) *AccountHandler {
	return &AccountHandler{service: service}
}

// AccountPayload defines the structure for signup and update requests.
type AccountPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// accountPublic is the account shape exposed to clients. The password hash
// never leaves the server.
type accountPublic struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func toPublic(account *models.Account) accountPublic {
	return accountPublic{ID: account.ID, Username: account.Username, Email: account.Email}
}

// Create handles anonymous account signup.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload AccountPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if payload.Username == "" || payload.Email == "" || payload.Password == "" {
		writeDetail(w, http.StatusBadRequest, "username, email and password are required")
		return
	}

	account, err := h.service.Create(r.Context(), payload.Username, payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateAccount) {
			writeDetail(w, http.StatusBadRequest, "Email or Username is alredy exists.")
			return
		}
		log.Error().Err(err).Str("email", payload.Email).Msg("Failed to create account")
		writeDetail(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	writeJSON(w, http.StatusCreated, toPublic(account))
}

// List handles the unauthenticated full account listing.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.service.ListAll(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list accounts")
		writeDetail(w, http.StatusInternalServerError, "Failed to list accounts")
		return
	}

	public := make([]accountPublic, 0, len(accounts))
	for i := range accounts {
		public = append(public, toPublic(&accounts[i]))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"accounts": public})
}

// Update handles the self-service replacement of an account's fields.
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	current, ok := auth.AccountFromContext(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	id, err := idParam(r)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid account id")
		return
	}
	if current.ID != id {
		writeDetail(w, http.StatusForbidden, "Not enought permission.")
		return
	}

	var payload AccountPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if payload.Username == "" || payload.Email == "" || payload.Password == "" {
		writeDetail(w, http.StatusBadRequest, "username, email and password are required")
		return
	}

	account, err := h.service.Update(r.Context(), current, payload.Username, payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateAccount) {
			writeDetail(w, http.StatusBadRequest, "Email or Username is alredy exists.")
			return
		}
		log.Error().Err(err).Uint("account_id", id).Msg("Failed to update account")
		writeDetail(w, http.StatusInternalServerError, "Failed to update account")
		return
	}

	writeJSON(w, http.StatusOK, toPublic(account))
}

// Delete handles the self-service removal of an account.
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	current, ok := auth.AccountFromContext(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	id, err := idParam(r)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid account id")
		return
	}
	if current.ID != id {
		writeDetail(w, http.StatusForbidden, "Not enought permission.")
		return
	}

	if err := h.service.Delete(r.Context(), current); err != nil {
		log.Error().Err(err).Uint("account_id", id).Msg("Failed to delete account")
		writeDetail(w, http.StatusInternalServerError, "Failed to delete account")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Account deleted successfully."})
}
