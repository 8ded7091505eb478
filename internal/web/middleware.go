package web

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jharden/campgrounds/internal/auth"
	"github.com/jharden/campgrounds/internal/authz"
)

func campgroundID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func reviewID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "reviewID"), 10, 64)
}

// requireCampgroundAuthor guards campground mutations. A missing
// campground is a 404; an owner mismatch flashes a notice and bounces
// back to the detail page.
func (s *Server) requireCampgroundAuthor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
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

		ownerID, err := s.campgrounds.AuthorID(id)
		if err != nil {
			s.fail(w, r, err)
			return
		}

		res := authz.Owned{Kind: authz.KindCampground, ResourceID: id, OwnerID: ownerID}
		if err := authz.Check(res, user.ID); err != nil {
			s.flash(r, "error", "You do not have permission to do that")
			http.Redirect(w, r, fmt.Sprintf("/campgrounds/%d", id), http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// requireReviewAuthor guards review deletion the same way.
func (s *Server) requireReviewAuthor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
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

		user, ok := auth.UserFrom(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		ownerID, err := s.reviews.AuthorID(revID)
		if err != nil {
			s.fail(w, r, err)
			return
		}

		res := authz.Owned{Kind: authz.KindReview, ResourceID: revID, OwnerID: ownerID}
		if err := authz.Check(res, user.ID); err != nil {
			s.flash(r, "error", "You do not have permission to do that")
			http.Redirect(w, r, fmt.Sprintf("/campgrounds/%d", campID), http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}
