package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/kimiagar/backend/internal/api/handlers"
	"github.com/kimiagar/backend/internal/api/middleware"
	"github.com/kimiagar/backend/internal/auth"
	"github.com/kimiagar/backend/internal/config"
	"github.com/kimiagar/backend/internal/credential"
	"github.com/kimiagar/backend/internal/history"
	"github.com/kimiagar/backend/internal/queue"
	"github.com/kimiagar/backend/internal/spell"
	"github.com/kimiagar/backend/internal/storage"
	"github.com/kimiagar/backend/internal/transform"
)

// Deps carries the services main wires up; db, redis and queue may be nil
// when those backends are unavailable.
type Deps struct {
	DB         *pgxpool.Pool
	Redis      *redis.Client
	KV         storage.KV
	Spells     *spell.Store
	Creds      *credential.Holder
	Dispatcher *transform.Dispatcher
	Ledger     *history.Ledger
	Queue      *queue.Client
}

type Router struct {
	mux   *chi.Mux
	cfg   *config.Config
	deps  Deps
	token *auth.TokenMiddleware
}

func NewRouter(cfg *config.Config, deps Deps) *Router {
	return &Router{
		mux:   chi.NewRouter(),
		cfg:   cfg,
		deps:  deps,
		token: auth.NewTokenMiddleware(cfg.Auth.ServiceToken, cfg.Auth.TokenHeader),
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))

	rl := middleware.NewRateLimiter(100, 200)
	r.Use(rl.Limit)

	// Health endpoints (no auth)
	health := handlers.NewHealthHandler(rt.deps.DB, rt.deps.Redis)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	transformH := handlers.NewTransformHandler(rt.deps.Dispatcher, rt.deps.Ledger, rt.cfg.History.MaxEntries)
	spellH := handlers.NewSpellHandler(rt.deps.Spells)
	historyH := handlers.NewHistoryHandler(rt.deps.Ledger, rt.deps.KV, rt.deps.Queue)
	credH := handlers.NewCredentialHandler(rt.deps.Creds)
	modelH := handlers.NewModelHandler()
	extractH := handlers.NewExtractHandler()

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.token.Authenticate)

		r.Post("/transform", transformH.Run)
		r.Get("/models", modelH.List)
		r.Post("/extract", extractH.Upload)

		r.Route("/spells", func(r chi.Router) {
			r.Get("/", spellH.List)
			r.Post("/", spellH.Create)
			r.Get("/active", spellH.Active)
			r.Put("/{id}", spellH.Update)
			r.Delete("/{id}", spellH.Delete)
			r.Post("/{id}/select", spellH.Select)
			r.Post("/{id}/render", spellH.Render)
		})

		r.Route("/history", func(r chi.Router) {
			r.Get("/", historyH.List)
			r.Delete("/", historyH.Delete)
			r.Post("/export", historyH.Export)
			r.Post("/export/async", historyH.ExportAsync)
			r.Get("/exports/{id}", historyH.GetExport)
		})

		r.Route("/credential", func(r chi.Router) {
			r.Get("/", credH.Status)
			r.Put("/", credH.Set)
		})
	})

	return r
}
