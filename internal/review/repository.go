package review

import (
	"database/sql"
	"fmt"

	"github.com/jharden/campgrounds/internal/apperror"
)

// Repository provides CRUD operations for reviews.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a review repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Add creates a review against an existing campground. The campground
// lookup runs first so a missing target is NotFound, never a silent
// foreign-key failure.
func (r *Repository) Add(campgroundID, authorID int64, rating int, body string) (*Review, error) {
	var exists int
	err := r.db.QueryRow("SELECT 1 FROM campgrounds WHERE id = ?", campgroundID).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, apperror.NotFound("campground", campgroundID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying campground: %w", err)
	}

	result, err := r.db.Exec(
		"INSERT INTO reviews (campground_id, author_id, rating, body) VALUES (?, ?, ?, ?)",
		campgroundID, authorID, rating, body,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting review: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting insert id: %w", err)
	}

	return r.GetByID(id)
}

// GetByID returns a review by its ID.
func (r *Repository) GetByID(id int64) (*Review, error) {
	var rv Review
	err := r.db.QueryRow(
		`SELECT r.id, r.campground_id, r.author_id, u.username, r.rating, r.body, r.created_at
		 FROM reviews r JOIN users u ON u.id = r.author_id WHERE r.id = ?`, id,
	).Scan(&rv.ID, &rv.CampgroundID, &rv.AuthorID, &rv.Author, &rv.Rating, &rv.Body, &rv.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, apperror.NotFound("review", id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying review %d: %w", id, err)
	}
	return &rv, nil
}

// ListByCampground returns a campground's reviews, newest first.
func (r *Repository) ListByCampground(campgroundID int64) ([]*Review, error) {
	rows, err := r.db.Query(
		`SELECT r.id, r.campground_id, r.author_id, u.username, r.rating, r.body, r.created_at
		 FROM reviews r JOIN users u ON u.id = r.author_id
		 WHERE r.campground_id = ? ORDER BY r.id DESC`,
		campgroundID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing reviews: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	var reviews []*Review
	for rows.Next() {
		var rv Review
		if err := rows.Scan(&rv.ID, &rv.CampgroundID, &rv.AuthorID, &rv.Author, &rv.Rating, &rv.Body, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning review: %w", err)
		}
		reviews = append(reviews, &rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reviews: %w", err)
	}

	return reviews, nil
}

// AuthorID returns the owning user of a review. Used by the ownership
// check before deletion.
func (r *Repository) AuthorID(id int64) (int64, error) {
	var authorID int64
	err := r.db.QueryRow("SELECT author_id FROM reviews WHERE id = ?", id).Scan(&authorID)
	if err == sql.ErrNoRows {
		return 0, apperror.NotFound("review", id)
	}
	if err != nil {
		return 0, fmt.Errorf("querying review author: %w", err)
	}
	return authorID, nil
}

// Delete removes a review from its campground's collection and deletes
// the record. Scoping by campground ID keeps a review addressed through
// the wrong campground from being touched.
func (r *Repository) Delete(campgroundID, id int64) error {
	result, err := r.db.Exec(
		"DELETE FROM reviews WHERE id = ? AND campground_id = ?", id, campgroundID,
	)
	if err != nil {
		return fmt.Errorf("deleting review: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return apperror.NotFound("review", id)
	}

	return nil
}
