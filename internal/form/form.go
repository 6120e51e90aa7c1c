// Package form declares the fixed request-to-entity bindings. Each form
// lists exactly the fields a submission may set; anything else in the
// request body is ignored, and nothing is written to storage until
// Validate passes.
package form

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"yatube/internal/model"
)

// ErrInvalidBody is returned when the request body cannot be parsed at all.
var ErrInvalidBody = errors.New("invalid request body")

// Errors maps field name to a validation message. A nil/empty map means
// the form is valid.
type Errors map[string]string

// Valid reports whether the form passed validation.
func (e Errors) Valid() bool { return len(e) == 0 }

// PostForm carries the permitted fields for creating or editing a post:
// text, group, image.
type PostForm struct {
	Text     string  `json:"text"`
	GroupID  *int64  `json:"group_id"`
	ImageURL *string `json:"image_url"`
}

// Validate checks field-level constraints. Group existence is a storage
// concern and is checked by the service before any write.
func (f *PostForm) Validate() Errors {
	errs := Errors{}
	if strings.TrimSpace(f.Text) == "" {
		errs["text"] = model.ErrTextRequired.Error()
	} else if len(f.Text) > model.MaxPostTextLength {
		errs["text"] = model.ErrTextTooLong.Error()
	}
	return errs
}

// CommentForm carries the single permitted field for a comment.
type CommentForm struct {
	Text string `json:"text"`
}

func (f *CommentForm) Validate() Errors {
	errs := Errors{}
	if strings.TrimSpace(f.Text) == "" {
		errs["text"] = model.ErrTextRequired.Error()
	} else if len(f.Text) > model.MaxCommentTextLength {
		errs["text"] = model.ErrTextTooLong.Error()
	}
	return errs
}

// BindPost populates a PostForm from a JSON or urlencoded request body.
func BindPost(r *http.Request) (*PostForm, error) {
	var f PostForm
	if isJSON(r) {
		if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
			return nil, ErrInvalidBody
		}
		return &f, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, ErrInvalidBody
	}
	f.Text = r.PostFormValue("text")
	if raw := r.PostFormValue("group_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, ErrInvalidBody
		}
		f.GroupID = &id
	}
	if raw := r.PostFormValue("image_url"); raw != "" {
		f.ImageURL = &raw
	}
	return &f, nil
}

// BindComment populates a CommentForm from a JSON or urlencoded request body.
func BindComment(r *http.Request) (*CommentForm, error) {
	var f CommentForm
	if isJSON(r) {
		if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
			return nil, ErrInvalidBody
		}
		return &f, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, ErrInvalidBody
	}
	f.Text = r.PostFormValue("text")
	return &f, nil
}

func isJSON(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return true // default to JSON for API clients
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return mediaType == "application/json"
}
