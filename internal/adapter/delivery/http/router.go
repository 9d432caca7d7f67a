// Package http provides the HTTP delivery layer for the URL shortener service.
// It contains the router, the authentication gates, the handlers and the
// request and response types they exchange.
package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter initializes and returns a new Chi router configured with middleware and routes for the URL shortener API.
// Short links in responses are rendered relative to baseURL.
func NewRouter(
	logger *httplog.Logger,
	baseURL string,
	urlUseCase urlUseCase,
	userUseCase userUseCase,
	authUseCase authUseCase,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*"},
		AllowedMethods:   []string{"POST", "GET", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept", "Authorization"},
		AllowCredentials: false,
		MaxAge:           84600,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/swagger.yml"),
	))

	r.Get("/docs/swagger.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./docs/swagger.yml")
	})

	r.Get("/ping", handlePing)

	validate := newValidator()

	var (
		required Gate = NewRequiredGate(authUseCase)
		optional Gate = NewOptionalGate(authUseCase)
	)

	uh := newURLHandler(urlUseCase, validate, strings.TrimRight(baseURL, "/"))

	r.Get("/{shortCode}", uh.resolveShortCode)

	r.Group(func(r chi.Router) {
		r.Use(optional.Middleware)

		r.Post("/", uh.shortenURL)
	})

	r.Group(func(r chi.Router) {
		r.Use(required.Middleware)

		r.Get("/", uh.listURLs)
		r.Patch("/{id}", uh.modifyURL)
		r.Delete("/{id}", uh.deactivateURL)
	})

	r.Post("/users", newUserHandler(userUseCase, validate).register)

	r.Route("/auth", func(r chi.Router) {
		ah := newAuthHandler(authUseCase, validate)

		r.Post("/login", ah.login)
		r.Post("/refresh", ah.refresh)
	})

	return r
}
