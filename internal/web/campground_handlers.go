package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/jharden/campgrounds/internal/apperror"
	"github.com/jharden/campgrounds/internal/auth"
	"github.com/jharden/campgrounds/internal/campground"
	"github.com/jharden/campgrounds/internal/review"
)

type showData struct {
	Campground *campground.Campground
	Reviews    []*review.Review
}

// handleHome renders the landing page.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.notFoundPage(w, r)
		return
	}
	s.render(w, r, http.StatusOK, "home.html", nil)
}

// handleIndex renders the campground list page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	campgrounds, err := s.campgrounds.List()
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "index.html", campgrounds)
}

// handleNewForm renders the create form.
func (s *Server) handleNewForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "new.html", nil)
}

// handleCreate validates the submission, geocodes the location, uploads
// the images, and persists the campground with the current user as author.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	form, err := campgroundForm(r)
	if err != nil {
		s.flash(r, "error", err.Error())
		http.Redirect(w, r, "/campgrounds/new", http.StatusSeeOther)
		return
	}

	point, err := s.geocoder.Forward(form.Location)
	if err != nil {
		s.serverError(w, r, fmt.Errorf("geocoding %q: %w", form.Location, err))
		return
	}

	images, err := s.uploadImages(r)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	created, err := s.campgrounds.Insert(&campground.Campground{
		Title:       form.Title,
		Description: form.Description,
		Location:    form.Location,
		Price:       form.Price,
		Longitude:   point.Longitude,
		Latitude:    point.Latitude,
		AuthorID:    user.ID,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if err := s.campgrounds.AddImages(created.ID, images); err != nil {
		s.fail(w, r, err)
		return
	}

	s.flash(r, "success", "Successfully made a new campground!")
	http.Redirect(w, r, fmt.Sprintf("/campgrounds/%d", created.ID), http.StatusSeeOther)
}

// handleShow renders the detail page. A missing campground bounces back
// to the list with a notice rather than a hard 404; the link the visitor
// followed may simply be stale.
func (s *Server) handleShow(w http.ResponseWriter, r *http.Request) {
	id, err := campgroundID(r)
	if err != nil {
		s.notFoundPage(w, r)
		return
	}

	c, err := s.campgrounds.GetByID(id)
	if errors.Is(err, apperror.ErrNotFound) {
		s.flash(r, "error", "Cannot find that campground!")
		http.Redirect(w, r, "/campgrounds", http.StatusSeeOther)
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	reviews, err := s.reviews.ListByCampground(id)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	s.render(w, r, http.StatusOK, "show.html", showData{Campground: c, Reviews: reviews})
}

// handleEditForm renders the edit form. Ownership is checked by the
// surrounding middleware.
func (s *Server) handleEditForm(w http.ResponseWriter, r *http.Request) {
	id, err := campgroundID(r)
	if err != nil {
		s.notFoundPage(w, r)
		return
	}

	c, err := s.campgrounds.GetByID(id)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.render(w, r, http.StatusOK, "edit.html", c)
}

// handleUpdate persists field changes, releases images marked for
// deletion, and appends new uploads. The location is not re-geocoded.
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := campgroundID(r)
	if err != nil {
		s.notFoundPage(w, r)
		return
	}

	form, err := campgroundForm(r)
	if err != nil {
		s.flash(r, "error", err.Error())
		http.Redirect(w, r, fmt.Sprintf("/campgrounds/%d/edit", id), http.StatusSeeOther)
		return
	}

	if err := s.campgrounds.Update(id, form); err != nil {
		s.fail(w, r, err)
		return
	}

	if removed := r.PostForm["deleteImages"]; len(removed) > 0 {
		for _, publicID := range removed {
			if err := s.images.Destroy(publicID); err != nil {
				slog.Warn("releasing image", "public_id", publicID, "error", err)
			}
		}
		if err := s.campgrounds.RemoveImages(id, removed); err != nil {
			s.fail(w, r, err)
			return
		}
	}

	uploads, err := s.uploadImages(r)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	if err := s.campgrounds.AddImages(id, uploads); err != nil {
		s.fail(w, r, err)
		return
	}

	s.flash(r, "success", "Successfully updated campground!")
	http.Redirect(w, r, fmt.Sprintf("/campgrounds/%d", id), http.StatusSeeOther)
}

// handleDelete releases the campground's images from external storage,
// then deletes the campground and its reviews. The steps are sequential
// and best-effort; a failed release is logged, not fatal.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := campgroundID(r)
	if err != nil {
		s.notFoundPage(w, r)
		return
	}

	images, err := s.campgrounds.Images(id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	for _, img := range images {
		if err := s.images.Destroy(img.PublicID); err != nil {
			slog.Warn("releasing image", "public_id", img.PublicID, "error", err)
		}
	}

	if err := s.campgrounds.Delete(id); err != nil {
		s.fail(w, r, err)
		return
	}

	s.flash(r, "success", "Successfully deleted campground")
	http.Redirect(w, r, "/campgrounds", http.StatusSeeOther)
}

// campgroundForm parses and validates the submitted campground payload.
func campgroundForm(r *http.Request) (campground.Form, error) {
	priceStr := r.PostFormValue("price")
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil && priceStr != "" {
		return campground.Form{}, apperror.Validation([]string{"price must be a number"})
	}

	f := campground.Form{
		Title:       strings.TrimSpace(r.PostFormValue("title")),
		Location:    strings.TrimSpace(r.PostFormValue("location")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
		Price:       price,
	}
	return f, f.Validate()
}

// uploadImages stores every submitted image in the external store and
// returns the references to persist, in submission order.
func (s *Server) uploadImages(r *http.Request) ([]campground.Image, error) {
	if r.MultipartForm == nil {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			if errors.Is(err, http.ErrNotMultipart) {
				return nil, nil
			}
			return nil, fmt.Errorf("parsing form: %w", err)
		}
	}
	if r.MultipartForm == nil {
		return nil, nil
	}

	var images []campground.Image
	for _, header := range r.MultipartForm.File["image"] {
		file, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("opening upload %s: %w", header.Filename, err)
		}

		img, err := s.images.Upload(header.Filename, file)
		closeErr := file.Close()
		if err != nil {
			return nil, fmt.Errorf("uploading %s: %w", header.Filename, err)
		}
		if closeErr != nil {
			return nil, fmt.Errorf("closing upload %s: %w", header.Filename, closeErr)
		}

		images = append(images, campground.Image{PublicID: img.PublicID, URL: img.URL})
	}
	return images, nil
}
