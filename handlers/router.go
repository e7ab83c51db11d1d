package handlers

import (
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	gorillahandlers "github.com/gorilla/handlers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"codecrew/config"
	"codecrew/middleware"
	"codecrew/models"
)

// RouterDeps is everything the HTTP surface is assembled from.
type RouterDeps struct {
	Auth     *AuthHandler
	Users    *UserHandler
	Teams    *TeamHandler
	Projects *ProjectHandler

	Resolver    middleware.CallerResolver
	Limiter     middleware.RateLimiter
	RateLimit   config.RateLimitConfig
	Metrics     *middleware.Metrics
	Gatherer    prometheus.Gatherer
	UploadsDir  string
	CORSOrigins []string
	Logger      *log.Logger
}

func NewRouter(d RouterDeps) http.Handler {
	logger := d.Logger.WithPrefix("http")

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.RequestLogger(logger))
	router.Use(chimiddleware.Recoverer)
	if d.Metrics != nil {
		router.Use(d.Metrics.Instrument)
	}

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "Route not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	authenticate := middleware.Authenticate(d.Resolver, logger)
	teamLeader := middleware.RequireRole(models.RoleTeamLeader)
	throttle := middleware.RateLimit(d.Limiter, d.RateLimit.Limit, d.RateLimit.Window, d.Metrics)

	router.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusOK, "Server is running!")
	})

	router.Route("/api/auth", func(r chi.Router) {
		r.With(throttle).Post("/register", d.Auth.Register)
		r.With(throttle).Post("/login", d.Auth.Login)
		r.With(authenticate).Get("/me", d.Auth.Me)
	})

	router.Route("/api/users", func(r chi.Router) {
		r.Get("/{id}", d.Users.Get)
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Put("/profile", d.Users.UpdateProfile)
			r.With(teamLeader).Get("/", d.Users.List)
		})
	})

	router.Route("/api/projects", func(r chi.Router) {
		r.Get("/", d.Projects.List)
		r.Get("/latest", d.Projects.Latest)
		r.Get("/{id}", d.Projects.Get)
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/", d.Projects.Create)
			r.Put("/{id}", d.Projects.Update)
			r.Delete("/{id}", d.Projects.Delete)
		})
	})

	router.Route("/api/teams", func(r chi.Router) {
		r.Get("/", d.Teams.List)
		r.Get("/{teamId}/projects", d.Teams.Projects)
		r.Group(func(r chi.Router) {
			r.Use(authenticate, teamLeader)
			r.Post("/", d.Teams.Create)
			r.Post("/add-member", d.Teams.AddMember)
			r.Post("/remove-member", d.Teams.RemoveMember)
		})
	})

	if d.UploadsDir != "" {
		router.Handle("/uploads/*", http.StripPrefix("/uploads/", noListing(http.FileServer(http.Dir(d.UploadsDir)))))
	}
	if d.Gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	return gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins(d.CORSOrigins),
		gorillahandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		gorillahandlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
		gorillahandlers.AllowCredentials(),
	)(router)
}

// noListing hides directory indexes of the uploads tree.
func noListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			writeMessage(w, http.StatusNotFound, "Route not found")
			return
		}
		next.ServeHTTP(w, r)
	})
}
