package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/libshelf/libshelf-be/internal/models"
	"github.com/libshelf/libshelf-be/internal/services"
)

// NovelistHandler handles HTTP requests for novelists.
type NovelistHandler struct {
	service services.NovelistServiceProvider
}

// NewNovelistHandler creates a new NovelistHandler.
func NewNovelistHandler(service services.NovelistServiceProvider) *NovelistHandler {
	return &NovelistHandler{service: service}
}

// NovelistPayload defines the structure for novelist creation requests.
type NovelistPayload struct {
	Name string `json:"name"`
}

// NovelistPatchPayload defines the structure for partial novelist updates.
type NovelistPatchPayload struct {
	Name *string `json:"name"`
}

// bookSummary is the nested book shape inside novelist responses.
type bookSummary struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
	Year  int    `json:"year"`
}

// novelistPublic is the novelist shape exposed to clients, books included.
type novelistPublic struct {
	ID    uint          `json:"id"`
	Name  string        `json:"name"`
	Books []bookSummary `json:"books"`
}

func toNovelistPublic(novelist *models.Novelist) novelistPublic {
	books := make([]bookSummary, 0, len(novelist.Books))
	for _, book := range novelist.Books {
		books = append(books, bookSummary{ID: book.ID, Title: book.Title, Year: book.Year})
	}
	return novelistPublic{ID: novelist.ID, Name: novelist.Name, Books: books}
}

// Create handles the request to register a novelist.
func (h *NovelistHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload NovelistPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if payload.Name == "" {
		writeDetail(w, http.StatusBadRequest, "name is required")
		return
	}

	novelist, err := h.service.Create(r.Context(), payload.Name)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateNovelist) {
			writeDetail(w, http.StatusConflict, "Novelist already exists.")
			return
		}
		log.Error().Err(err).Str("name", payload.Name).Msg("Failed to create novelist")
		writeDetail(w, http.StatusInternalServerError, "Failed to create novelist")
		return
	}

	writeJSON(w, http.StatusCreated, toNovelistPublic(novelist))
}

// Get handles the request to fetch a single novelist with their books.
func (h *NovelistHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid novelist id")
		return
	}

	novelist, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrNovelistNotFound) {
			writeDetail(w, http.StatusNotFound, fmt.Sprintf("Novelist with ID %d was not found", id))
			return
		}
		log.Error().Err(err).Uint("novelist_id", id).Msg("Failed to get novelist")
		writeDetail(w, http.StatusInternalServerError, "Failed to get novelist")
		return
	}

	writeJSON(w, http.StatusOK, toNovelistPublic(novelist))
}

// List handles filtered, paginated novelist listings, books materialized.
func (h *NovelistHandler) List(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	limit := queryInt(r, "limit", services.DefaultListLimit)
	offset := queryInt(r, "offset", services.DefaultListOffset)

	novelists, err := h.service.List(r.Context(), name, limit, offset)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list novelists")
		writeDetail(w, http.StatusInternalServerError, "Failed to list novelists")
		return
	}

	public := make([]novelistPublic, 0, len(novelists))
	for i := range novelists {
		public = append(public, toNovelistPublic(&novelists[i]))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"novelists": public})
}

// Update handles partial updates of a novelist.
func (h *NovelistHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid novelist id")
		return
	}

	var payload NovelistPatchPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	novelist, err := h.service.Update(r.Context(), id, services.NovelistPatch{Name: payload.Name})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNovelistNotFound):
			writeDetail(w, http.StatusNotFound, fmt.Sprintf("Novelist with ID %d was not found", id))
		case errors.Is(err, services.ErrDuplicateNovelist):
			writeDetail(w, http.StatusConflict, "Novelist already exists.")
		default:
			log.Error().Err(err).Uint("novelist_id", id).Msg("Failed to update novelist")
			writeDetail(w, http.StatusInternalServerError, "Failed to update novelist")
		}
		return
	}

	writeJSON(w, http.StatusOK, toNovelistPublic(novelist))
}

// Delete removes a novelist and, with them, all of their books.
func (h *NovelistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid novelist id")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, services.ErrNovelistNotFound) {
			writeDetail(w, http.StatusNotFound, fmt.Sprintf("Novelist with ID %d was not found", id))
			return
		}
		log.Error().Err(err).Uint("novelist_id", id).Msg("Failed to delete novelist")
		writeDetail(w, http.StatusInternalServerError, "Failed to delete novelist")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "The novelist and their books were successfully deleted."})
}
