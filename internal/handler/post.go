package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"yatube/internal/form"
	"yatube/internal/httputil"
	"yatube/internal/model"
	"yatube/internal/service"
	"yatube/internal/transport/http/middleware"
)

type PostHandler struct {
	postService *service.PostService
	userService *service.UserService
}

func NewPostHandler(postService *service.PostService, userService *service.UserService) *PostHandler {
	return &PostHandler{
		postService: postService,
		userService: userService,
	}
}

// Detail handles GET /posts/{postID}/
func (h *PostHandler) Detail(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
	if err != nil {
		httputil.WriteNotFound(w, "Post not found")
		return
	}

	detail, err := h.postService.Detail(r.Context(), postID)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			httputil.WriteNotFound(w, "Post not found")
			return
		}
		log.Printf("[ERROR] Post detail handler: post=%d err=%v", postID, err)
		httputil.WriteInternalError(w, "Failed to get post")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, detail)
}

// Create handles POST /create/
// A valid submission publishes the post and redirects to the author's
// profile. A failed validation returns 400 with field messages and
// writes nothing.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	f, err := form.BindPost(r)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if errs := f.Validate(); !errs.Valid() {
		httputil.WriteValidationError(w, errs)
		return
	}

	post, err := h.postService.Create(r.Context(), userID, f)
	if err != nil {
		if errors.Is(err, model.ErrGroupNotFound) {
			httputil.WriteValidationError(w, form.Errors{"group_id": "group does not exist"})
			return
		}
		log.Printf("[ERROR] Post create handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, "Failed to create post")
		return
	}

	author, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		log.Printf("[ERROR] Post create handler: resolve author=%d err=%v", userID, err)
		httputil.WriteInternalError(w, "Failed to create post")
		return
	}

	log.Printf("[PostHandler] Created post: id=%d author=%s", post.ID, author.Username)
	http.Redirect(w, r, fmt.Sprintf("/profile/%s/", author.Username), http.StatusFound)
}

// Edit handles POST /posts/{postID}/edit/
// Only the author may edit. Anyone else signed in is bounced to the
// post detail page without an error; the post is untouched.
func (h *PostHandler) Edit(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	postID, err := strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
	if err != nil {
		httputil.WriteNotFound(w, "Post not found")
		return
	}
	detailPath := fmt.Sprintf("/posts/%d/", postID)

	f, err := form.BindPost(r)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if errs := f.Validate(); !errs.Valid() {
		httputil.WriteValidationError(w, errs)
		return
	}

	if _, err := h.postService.Edit(r.Context(), postID, userID, f); err != nil {
		switch {
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		case errors.Is(err, model.ErrNotPostOwner):
			http.Redirect(w, r, detailPath, http.StatusFound)
		case errors.Is(err, model.ErrGroupNotFound):
			httputil.WriteValidationError(w, form.Errors{"group_id": "group does not exist"})
		default:
			log.Printf("[ERROR] Post edit handler: post=%d user=%d err=%v", postID, userID, err)
			httputil.WriteInternalError(w, "Failed to edit post")
		}
		return
	}

	http.Redirect(w, r, detailPath, http.StatusFound)
}
