package app

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"inkblog/internal/config"
	handlers "inkblog/internal/handler"
	"inkblog/internal/middleware"
)

// NewRouter builds the full HTTP handler: routes plus session, CORS and
// request logging.
func NewRouter(h *handlers.Handlers, cfg *config.Config, logger *slog.Logger) http.Handler {
	gate := middleware.RequireSession(cfg.SignInPath)

	r := mux.NewRouter()
	r.HandleFunc("/health", h.HealthHandler).Methods(http.MethodGet)

	// public
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/sign-up", h.SignUp).Methods(http.MethodPost)
	api.HandleFunc("/auth/sign-in", h.SignIn).Methods(http.MethodPost)
	api.HandleFunc("/auth/sign-out", h.SignOut).Methods(http.MethodPost)
	api.HandleFunc("/blog", h.ListPublishedPosts).Methods(http.MethodGet)
	api.HandleFunc("/blog/{slug}", h.GetPublishedPost).Methods(http.MethodGet)
	api.HandleFunc("/media/config", h.MediaConfig).Methods(http.MethodGet)

	// signed in
	private := api.NewRoute().Subrouter()
	private.Use(mux.MiddlewareFunc(gate))
	private.HandleFunc("/me", h.GetCurrentUser).Methods(http.MethodGet)
	private.HandleFunc("/blogs", h.ListOwnPosts).Methods(http.MethodGet)
	private.HandleFunc("/blogs", h.CreatePost).Methods(http.MethodPost)
	private.HandleFunc("/blogs/{id}", h.GetPost).Methods(http.MethodGet)
	private.HandleFunc("/blogs/{id}", h.UpdatePost).Methods(http.MethodPut)
	private.HandleFunc("/blogs/{id}", h.DeletePost).Methods(http.MethodDelete)
	private.HandleFunc("/blogs/{id}/edit", h.GetPostForEdit).Methods(http.MethodGet)
	private.HandleFunc("/profile", h.GetProfile).Methods(http.MethodGet)
	private.HandleFunc("/user/update", h.UpdateProfile).Methods(http.MethodPatch)
	private.HandleFunc("/user/update-password", h.UpdatePassword).Methods(http.MethodPatch)
	private.HandleFunc("/user/delete", h.DeleteAccount).Methods(http.MethodDelete)
	private.HandleFunc("/media/upload", h.UploadImage).Methods(http.MethodPost)

	// dashboard pages redirect to sign-in instead of answering 401
	r.Handle("/dashboard", gate(http.HandlerFunc(h.GetProfile))).Methods(http.MethodGet)
	r.Handle("/dashboard/blogs", gate(http.HandlerFunc(h.ListOwnPosts))).Methods(http.MethodGet)
	r.Handle("/dashboard/blogs/{id}", gate(http.HandlerFunc(h.GetPost))).Methods(http.MethodGet)
	r.Handle("/dashboard/blogs/{id}/edit", gate(http.HandlerFunc(h.GetPostForEdit))).Methods(http.MethodGet)
	r.PathPrefix("/dashboard/").Handler(gate(http.NotFoundHandler()))

	return middleware.Chain(
		r,
		middleware.SessionMiddleware(h.AuthService, cfg.Session.CookieName),
		middleware.CORSMiddleware(cfg.CORSAllowedOrigin),
		middleware.LoggingMiddleware(logger),
	)
}
