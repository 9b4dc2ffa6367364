package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/libshelf/libshelf-be/internal/api/handlers"
	"github.com/libshelf/libshelf-be/internal/auth"
	"github.com/libshelf/libshelf-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	issuer *auth.TokenIssuer,
	accountService services.AccountServiceProvider,
	bookService services.BookServiceProvider,
	novelistService services.NovelistServiceProvider,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Bearer tokens resolve to a live account; deleted accounts lose access
	// even inside the token's TTL.
	requireAuth := auth.Middleware(issuer, accountService.FindByEmail)

	// Initialize handlers
	accountHandler := handlers.NewAccountHandler(accountService)
	authHandler := handlers.NewAuthHandler(accountService, issuer)
	bookHandler := handlers.NewBookHandler(bookService)
	novelistHandler := handlers.NewNovelistHandler(novelistService)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"libshelf is running"}`))
	})

	r.Route("/account", func(r chi.Router) {
		r.Post("/", accountHandler.Create)
		r.Get("/", accountHandler.List)
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Put("/{id}", accountHandler.Update)
			r.Delete("/{id}", accountHandler.Delete)
		})
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/token/", authHandler.Token)
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/refresh_token/", authHandler.Refresh)
		})
	})

	r.Route("/book", func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/", bookHandler.Create)
		r.Get("/", bookHandler.List)
		r.Get("/{id}", bookHandler.Get)
		r.Patch("/{id}", bookHandler.Update)
		r.Delete("/{id}", bookHandler.Delete)
	})

	r.Route("/novelist", func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/", novelistHandler.Create)
		r.Get("/", novelistHandler.List)
		r.Get("/{id}", novelistHandler.Get)
		r.Patch("/{id}", novelistHandler.Update)
		r.Delete("/{id}", novelistHandler.Delete)
	})

	return r
}
