package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/libshelf/libshelf-be/internal/services"
)

// BookHandler handles HTTP requests for the book catalog.
type BookHandler struct {
	service services.BookServiceProvider
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(service services.BookServiceProvider) *BookHandler {
	return &BookHandler{service: service}
}

// BookPayload defines the structure for book creation requests.
type BookPayload struct {
	Year       int    `json:"year"`
	Title      string `json:"title"`
	NovelistID uint   `json:"novelist_id"`
}

// BookPatchPayload defines the structure for partial book updates. Absent
// fields are left untouched.
type BookPatchPayload struct {
	Year       *int    `json:"year"`
	Title      *string `json:"title"`
	NovelistID *uint   `json:"novelist_id"`
}

// Create handles the request to add a book to the catalog.
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload BookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if payload.Title == "" || payload.NovelistID == 0 {
		writeDetail(w, http.StatusBadRequest, "title and novelist_id are required")
		return
	}

	book, err := h.service.Create(r.Context(), payload.Year, payload.Title, payload.NovelistID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNovelistNotFound):
			writeDetail(w, http.StatusNotFound, fmt.Sprintf("Novelist ID %d was not found.", payload.NovelistID))
		case errors.Is(err, services.ErrDuplicateBook):
			writeDetail(w, http.StatusConflict, "Book already exists.")
		default:
			log.Error().Err(err).Str("title", payload.Title).Msg("Failed to create book")
			writeDetail(w, http.StatusInternalServerError, "Failed to create book")
		}
		return
	}

	writeJSON(w, http.StatusCreated, book)
}

// Get handles the request to fetch a single book.
func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid book id")
		return
	}

	book, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrBookNotFound) {
			writeDetail(w, http.StatusNotFound, fmt.Sprintf("The book with ID %d was not found.", id))
			return
		}
		log.Error().Err(err).Uint("book_id", id).Msg("Failed to get book")
		writeDetail(w, http.StatusInternalServerError, "Failed to get book")
		return
	}

	writeJSON(w, http.StatusOK, book)
}

// Update handles partial updates of a book.
func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid book id")
		return
	}

	var payload BookPatchPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	patch := services.BookPatch{
		Year:       payload.Year,
		Title:      payload.Title,
		NovelistID: payload.NovelistID,
	}
	book, err := h.service.Update(r.Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBookNotFound):
			writeDetail(w, http.StatusNotFound, fmt.Sprintf("The book ID %d was not found.", id))
		case errors.Is(err, services.ErrNovelistNotFound):
			writeDetail(w, http.StatusNotFound, "Novelist was not found.")
		case errors.Is(err, services.ErrDuplicateBook):
			writeDetail(w, http.StatusConflict, "Book already exists.")
		default:
			log.Error().Err(err).Uint("book_id", id).Msg("Failed to update book")
			writeDetail(w, http.StatusInternalServerError, "Failed to update book")
		}
		return
	}

	writeJSON(w, http.StatusOK, book)
}

// List handles filtered, paginated book listings.
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := services.BookFilter{
		Title:  r.URL.Query().Get("title"),
		Limit:  queryInt(r, "limit", services.DefaultListLimit),
		Offset: queryInt(r, "offset", services.DefaultListOffset),
	}
	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			writeDetail(w, http.StatusBadRequest, "Invalid year filter")
			return
		}
		filter.Year = &year
	}

	books, err := h.service.List(r.Context(), filter)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list books")
		writeDetail(w, http.StatusInternalServerError, "Failed to list books")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"books": books})
}

// Delete handles the removal of a book.
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid book id")
		return
	}

	book, err := h.service.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrBookNotFound) {
			writeDetail(w, http.StatusNotFound, fmt.Sprintf("The book with ID %d was not found.", id))
			return
		}
		log.Error().Err(err).Uint("book_id", id).Msg("Failed to delete book")
		writeDetail(w, http.StatusInternalServerError, "Failed to delete book")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "The book was successfully deleted.",
		"book": map[string]interface{}{
			"id":    book.ID,
			"title": book.Title,
			"year":  book.Year,
		},
	})
}

// queryInt parses an integer query parameter, falling back to a default.
func queryInt(r *http.Request, key string, fallback int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
