package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/jharden/campgrounds/internal/apperror"
	"github.com/jharden/campgrounds/internal/auth"
	"github.com/jharden/campgrounds/internal/review"
)

// handleCreateReview validates and adds a review to a campground.
func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	id, err := campgroundID(r)
	if err != nil {
		s.notFoundPage(w, r)
		return
	}

	user, ok := auth.UserFrom(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	form, err := reviewForm(r)
	if err != nil {
		s.flash(r, "error", err.Error())
		http.Redirect(w, r, fmt.Sprintf("/campgrounds/%d", id), http.StatusSeeOther)
		return
	}

	if _, err := s.reviews.Add(id, user.ID, form.Rating, form.Body); err != nil {
		s.fail(w, r, err)
		return
	}

	s.flash(r, "success", "Created new review!")
	http.Redirect(w, r, fmt.Sprintf("/campgrounds/%d", id), http.StatusSeeOther)
}

// handleDeleteReview removes a review from its campground. Ownership is
// checked by the surrounding middleware; the delete is scoped to the
// campground in the URL.
func (s *Server) handleDeleteReview(w http.ResponseWriter, r *http.Request) {
	campID, err := campgroundID(r)
	if err != nil {
		s.notFoundPage(w, r)
		return
	}
	revID, err := reviewID(r)
	if err != nil {
		s.notFoundPage(w, r)
		return
	}

	if err := s.reviews.Delete(campID, revID); err != nil {
		s.fail(w, r, err)
		return
	}

	s.flash(r, "success", "Successfully deleted review")
	http.Redirect(w, r, fmt.Sprintf("/campgrounds/%d", campID), http.StatusSeeOther)
}

// reviewForm parses and validates the submitted review payload.
func reviewForm(r *http.Request) (review.Form, error) {
	ratingStr := r.PostFormValue("rating")
	rating, err := strconv.Atoi(ratingStr)
	if err != nil && ratingStr != "" {
		return review.Form{}, apperror.Validation([]string{"rating must be a number"})
	}

	f := review.Form{
		Rating: rating,
		Body:   strings.TrimSpace(r.PostFormValue("body")),
	}
	return f, f.Validate()
}
