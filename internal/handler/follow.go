package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"yatube/internal/httputil"
	"yatube/internal/model"
	"yatube/internal/service"
	"yatube/internal/transport/http/middleware"
)

type FollowHandler struct {
	followService *service.FollowService
}

func NewFollowHandler(followService *service.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// Follow handles /profile/{username}/follow/
// Repeated follows and self-follows are absorbed silently; either way
// the caller lands back on the profile page.
func (h *FollowHandler) Follow(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, h.followService.Follow)
}

// Unfollow handles /profile/{username}/unfollow/
// Removing an edge that does not exist is a no-op.
func (h *FollowHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, h.followService.Unfollow)
}

func (h *FollowHandler) apply(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, followerID int64, authorUsername string) error,
) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	username := chi.URLParam(r, "username")

	if err := op(r.Context(), userID, username); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] Follow handler: user=%d author=%s err=%v", userID, username, err)
		httputil.WriteInternalError(w, "Failed to update follow")
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/profile/%s/", username), http.StatusFound)
}
