package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"neolish/internal/http/handlers"
	"neolish/internal/infra"
	"neolish/internal/middleware"
)

// NewRouter wires the pipeline endpoints. Everything under /api requires the
// bearer token minted by the external auth service.
func NewRouter(app *handlers.App, cfg *infra.Config, logger infra.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORSOrigins),
	)

	r.Get("/healthz", app.Health)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.AuthJWT(cfg.JWTSecret))
		r.Use(middleware.RateLimit(cfg.RateLimitPerMin, time.Minute))

		r.Get("/articles", app.ArticlesList)
		r.Route("/articles/generation", func(r chi.Router) {
			r.Post("/dispatch", app.GenerationDispatch)
			r.Post("/retry", app.GenerationRetry)
			r.Get("/status", app.GenerationStatus)
		})
	})

	return r
}
