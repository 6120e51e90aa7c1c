package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"yatube/internal/cache"
	"yatube/internal/handler"
	"yatube/internal/httputil"
	authmw "yatube/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	AuthHandler    *handler.AuthHandler
	FeedHandler    *handler.FeedHandler
	PostHandler    *handler.PostHandler
	CommentHandler *handler.CommentHandler
	FollowHandler  *handler.FollowHandler
	MediaHandler   *handler.MediaHandler

	PageCache     cache.PageCache
	IndexCacheTTL time.Duration
	JWTSecret     string
}

// NewRouter creates and configures a new Chi router with all route groups.
// Paths keep their trailing slash; each page address is one canonical URL.
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	// Health check endpoint (useful for deployment/monitoring)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, 200, map[string]string{"status": "ok"})
	})

	// Public auth routes
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup/", cfg.AuthHandler.Signup)
		r.Post("/login/", cfg.AuthHandler.Login)
		r.Post("/refresh/", cfg.AuthHandler.Refresh)
		r.Post("/logout/", cfg.AuthHandler.Logout)
	})

	// The global feed is the only cached page: entries live for the
	// configured TTL and are never evicted by writes.
	r.With(authmw.CachePage(cfg.PageCache, cfg.IndexCacheTTL)).
		Get("/", cfg.FeedHandler.Index)

	// Public pages; the viewer, when signed in, only changes follow state.
	r.Get("/group/", cfg.FeedHandler.Groups)
	r.Get("/group/{slug}/", cfg.FeedHandler.GroupFeed)
	r.With(authmw.OptionalAuth(cfg.JWTSecret)).Get("/profile/{username}/", cfg.FeedHandler.Profile)
	r.Get("/posts/{postID}/", cfg.PostHandler.Detail)

	// Protected pages: anonymous requests get a login redirect with next.
	r.Group(func(r chi.Router) {
		r.Use(authmw.RequireAuth(cfg.JWTSecret))

		r.Get("/auth/me/", cfg.AuthHandler.Me)
		r.Post("/auth/logout-all/", cfg.AuthHandler.LogoutAll)

		r.Post("/create/", cfg.PostHandler.Create)
		r.Post("/posts/{postID}/edit/", cfg.PostHandler.Edit)
		r.Post("/posts/{postID}/comment/", cfg.CommentHandler.Add)

		r.Get("/follow/", cfg.FeedHandler.FollowingFeed)
		r.Get("/profile/{username}/follow/", cfg.FollowHandler.Follow)
		r.Post("/profile/{username}/follow/", cfg.FollowHandler.Follow)
		r.Get("/profile/{username}/unfollow/", cfg.FollowHandler.Unfollow)
		r.Post("/profile/{username}/unfollow/", cfg.FollowHandler.Unfollow)

		r.Post("/media/posts/", cfg.MediaHandler.UploadPostImage)
	})

	return r
}
