package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"yatube/internal/httputil"
	"yatube/internal/model"
	"yatube/internal/pagination"
	"yatube/internal/service"
	"yatube/internal/transport/http/middleware"
)

type FeedHandler struct {
	feedService *service.FeedService
}

func NewFeedHandler(feedService *service.FeedService) *FeedHandler {
	return &FeedHandler{
		feedService: feedService,
	}
}

// Index handles GET /
// Returns the paginated global feed. The route is wrapped in the page
// cache middleware, so most hits never reach this handler.
func (h *FeedHandler) Index(w http.ResponseWriter, r *http.Request) {
	page := pagination.ParseRequested(r.URL.Query().Get("page"))

	feed, err := h.feedService.GetGlobal(r.Context(), page)
	if err != nil {
		log.Printf("[ERROR] Index handler: err=%v", err)
		httputil.WriteInternalError(w, "Failed to get feed")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, feed)
}

// Groups handles GET /group/
// Returns every group for navigation.
func (h *FeedHandler) Groups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.feedService.ListGroups(r.Context())
	if err != nil {
		log.Printf("[ERROR] Groups handler: err=%v", err)
		httputil.WriteInternalError(w, "Failed to list groups")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{"groups": groups})
}

// GroupFeed handles GET /group/{slug}/
// Returns the paginated feed for one group; 404 for an unknown slug.
func (h *FeedHandler) GroupFeed(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	page := pagination.ParseRequested(r.URL.Query().Get("page"))

	feed, err := h.feedService.GetGroup(r.Context(), slug, page)
	if err != nil {
		if errors.Is(err, model.ErrGroupNotFound) {
			httputil.WriteNotFound(w, "Group not found")
			return
		}
		log.Printf("[ERROR] GroupFeed handler: slug=%s err=%v", slug, err)
		httputil.WriteInternalError(w, "Failed to get group feed")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, feed)
}

// Profile handles GET /profile/{username}/
// Returns the author's paginated feed plus follow status for the viewer.
func (h *FeedHandler) Profile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	page := pagination.ParseRequested(r.URL.Query().Get("page"))
	viewerID := middleware.ViewerID(r.Context())

	profile, err := h.feedService.GetProfile(r.Context(), username, viewerID, page)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] Profile handler: username=%s err=%v", username, err)
		httputil.WriteInternalError(w, "Failed to get profile")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, profile)
}

// FollowingFeed handles GET /follow/
// Returns the paginated feed of posts by authors the viewer follows.
func (h *FeedHandler) FollowingFeed(w http.ResponseWriter, r *http.Request) {
	page := pagination.ParseRequested(r.URL.Query().Get("page"))
	viewerID := middleware.ViewerID(r.Context())

	feed, err := h.feedService.GetFollowing(r.Context(), viewerID, page)
	if err != nil {
		log.Printf("[ERROR] FollowingFeed handler: err=%v", err)
		httputil.WriteInternalError(w, "Failed to get feed")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, feed)
}
