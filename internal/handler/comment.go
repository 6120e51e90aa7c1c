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

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Add handles POST /posts/{postID}/comment/
// A valid submission stores the comment and redirects back to the post
// detail page.
func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
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

	f, err := form.BindComment(r)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if errs := f.Validate(); !errs.Valid() {
		httputil.WriteValidationError(w, errs)
		return
	}

	if _, err := h.commentService.Add(r.Context(), postID, userID, f); err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			httputil.WriteNotFound(w, "Post not found")
			return
		}
		log.Printf("[ERROR] Comment add handler: post=%d user=%d err=%v", postID, userID, err)
		httputil.WriteInternalError(w, "Failed to add comment")
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/posts/%d/", postID), http.StatusFound)
}
