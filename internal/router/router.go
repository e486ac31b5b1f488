package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chi_middleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dailypush/dailypush/internal/config"
	"github.com/dailypush/dailypush/internal/handler"
	mw "github.com/dailypush/dailypush/internal/middleware"
	"github.com/dailypush/dailypush/internal/middleware/ratelimiter"
)

// New builds the chi router. Anonymous requests reach every read route; the
// services decide visibility. Mutations need a session and the admin routes
// need the configured administrator.
func New(h *handler.Handler, auth *mw.Auth, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(chi_middleware.RequestID)
	r.Use(chi_middleware.Recoverer)
	r.Use(mw.Metrics)
	r.Use(mw.Logger)
	r.Use(mw.SecurityHeadersWithCSP(cfg.Public.SecureCookies, mw.APIContentSecurityPolicy))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Public.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(auth.Resolve())

	r.Get("/healthz", h.Health)
	r.Get("/readyz", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	// Login and registration share one bucket per client IP. Proxy headers are
	// not trusted, the key is the TCP peer address.
	authLimiter := ratelimiter.New(cfg.Public.AuthRatePerMinute, cfg.Public.AuthRateBurst, time.Hour)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(mw.RateLimit(authLimiter, mw.ClientIP))
				r.Post("/register", h.Register)
				r.Post("/login", h.Login)
			})
			r.Post("/logout", h.Logout)
			r.Get("/me", h.Me)
		})

		r.Get("/topics", h.ListTopics)
		r.Get("/topics/{topic}", h.GetTopic)
		r.Get("/topics/{topic}/posts", h.ListPosts)
		r.Get("/posts/{post}", h.GetPost)

		r.Group(func(r chi.Router) {
			r.Use(auth.NeedAuth())
			r.Post("/topics", h.CreateTopic)
			r.Patch("/topics/{topic}", h.UpdateTopic)
			r.Delete("/topics/{topic}", h.DeleteTopic)
			r.Post("/topics/{topic}/posts", h.CreatePost)
			r.Patch("/posts/{post}", h.UpdatePost)
			r.Delete("/posts/{post}", h.DeletePost)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.AdminOnly())
			r.Get("/", h.AdminIndex)

			r.Get("/users", h.AdminListUsers)
			r.Patch("/users/{user}", h.AdminUpdateUser)
			r.Delete("/users/{user}", h.AdminDeleteUser)

			r.Get("/topics", h.AdminListTopics)
			r.Post("/topics", h.AdminCreateTopic)
			r.Patch("/topics/{topic}", h.AdminUpdateTopic)
			r.Delete("/topics/{topic}", h.AdminDeleteTopic)

			r.Get("/posts", h.AdminListPosts)
			r.Post("/posts", h.AdminCreatePost)
			r.Patch("/posts/{post}", h.AdminUpdatePost)
			r.Delete("/posts/{post}", h.AdminDeletePost)
		})
	})

	return r
}
