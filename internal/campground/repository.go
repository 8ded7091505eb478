package campground

import (
	"database/sql"
	"fmt"

	"github.com/jharden/campgrounds/internal/apperror"
)

// Repository provides CRUD operations for campgrounds and their images.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a campground repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const selectColumns = `c.id, c.title, c.description, c.location, c.price,
	c.longitude, c.latitude, c.author_id, u.username, c.created_at, c.updated_at`

// Insert adds a new campground and returns it with its generated ID.
func (r *Repository) Insert(c *Campground) (*Campground, error) {
	result, err := r.db.Exec(
		`INSERT INTO campgrounds (title, description, location, price, longitude, latitude, author_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.Title, c.Description, c.Location, c.Price, c.Longitude, c.Latitude, c.AuthorID,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting campground: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting insert id: %w", err)
	}

	return r.GetByID(id)
}

// GetByID returns a campground with its images.
func (r *Repository) GetByID(id int64) (*Campground, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM campgrounds c JOIN users u ON u.id = c.author_id WHERE c.id = ?",
		selectColumns,
	)

	var c Campground
	err := r.db.QueryRow(query, id).Scan(
		&c.ID, &c.Title, &c.Description, &c.Location, &c.Price,
		&c.Longitude, &c.Latitude, &c.AuthorID, &c.Author, &c.CreatedAt, &c.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperror.NotFound("campground", id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying campground %d: %w", id, err)
	}

	images, err := r.Images(id)
	if err != nil {
		return nil, err
	}
	c.Images = images

	return &c, nil
}

// List returns all campgrounds, newest first, each with its images.
func (r *Repository) List() ([]*Campground, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM campgrounds c JOIN users u ON u.id = c.author_id ORDER BY c.created_at DESC, c.id DESC",
		selectColumns,
	)

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("listing campgrounds: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	byID := make(map[int64]*Campground)
	var campgrounds []*Campground
	for rows.Next() {
		var c Campground
		if err := rows.Scan(
			&c.ID, &c.Title, &c.Description, &c.Location, &c.Price,
			&c.Longitude, &c.Latitude, &c.AuthorID, &c.Author, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning campground: %w", err)
		}
		campgrounds = append(campgrounds, &c)
		byID[c.ID] = &c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating campgrounds: %w", err)
	}

	imgRows, err := r.db.Query(
		"SELECT id, campground_id, public_id, url, position FROM campground_images ORDER BY campground_id, position, id",
	)
	if err != nil {
		return nil, fmt.Errorf("listing images: %w", err)
	}
	defer func() {
		if closeErr := imgRows.Close(); closeErr != nil {
			err = fmt.Errorf("closing image rows: %w", closeErr)
		}
	}()

	for imgRows.Next() {
		var img Image
		if err := imgRows.Scan(&img.ID, &img.CampgroundID, &img.PublicID, &img.URL, &img.Position); err != nil {
			return nil, fmt.Errorf("scanning image: %w", err)
		}
		if c, ok := byID[img.CampgroundID]; ok {
			c.Images = append(c.Images, img)
		}
	}
	if err := imgRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating images: %w", err)
	}

	return campgrounds, nil
}

// AuthorID returns the owning user of a campground. Used by the
// ownership check before any mutation.
func (r *Repository) AuthorID(id int64) (int64, error) {
	var authorID int64
	err := r.db.QueryRow("SELECT author_id FROM campgrounds WHERE id = ?", id).Scan(&authorID)
	if err == sql.ErrNoRows {
		return 0, apperror.NotFound("campground", id)
	}
	if err != nil {
		return 0, fmt.Errorf("querying campground author: %w", err)
	}
	return authorID, nil
}

// Update persists field changes. The author reference is never touched.
func (r *Repository) Update(id int64, f Form) error {
	result, err := r.db.Exec(
		`UPDATE campgrounds SET title = ?, description = ?, location = ?, price = ?,
		 updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		f.Title, f.Description, f.Location, f.Price, id,
	)
	if err != nil {
		return fmt.Errorf("updating campground: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return apperror.NotFound("campground", id)
	}

	return nil
}

// AddImages appends image references to the campground's collection,
// preserving submission order.
func (r *Repository) AddImages(campgroundID int64, images []Image) error {
	if len(images) == 0 {
		return nil
	}

	var max sql.NullInt64
	if err := r.db.QueryRow(
		"SELECT MAX(position) FROM campground_images WHERE campground_id = ?", campgroundID,
	).Scan(&max); err != nil {
		return fmt.Errorf("querying image positions: %w", err)
	}

	pos := int(max.Int64)
	if max.Valid {
		pos++
	}
	for _, img := range images {
		if _, err := r.db.Exec(
			"INSERT INTO campground_images (campground_id, public_id, url, position) VALUES (?, ?, ?, ?)",
			campgroundID, img.PublicID, img.URL, pos,
		); err != nil {
			return fmt.Errorf("inserting image: %w", err)
		}
		pos++
	}

	return nil
}

// Images returns the campground's image references in order.
func (r *Repository) Images(campgroundID int64) ([]Image, error) {
	rows, err := r.db.Query(
		"SELECT id, campground_id, public_id, url, position FROM campground_images WHERE campground_id = ? ORDER BY position, id",
		campgroundID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing images: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	var images []Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.ID, &img.CampgroundID, &img.PublicID, &img.URL, &img.Position); err != nil {
			return nil, fmt.Errorf("scanning image: %w", err)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating images: %w", err)
	}

	return images, nil
}

// RemoveImages drops the named image references from the campground's
// collection. Releasing the external resources is the caller's step.
func (r *Repository) RemoveImages(campgroundID int64, publicIDs []string) error {
	for _, publicID := range publicIDs {
		if _, err := r.db.Exec(
			"DELETE FROM campground_images WHERE campground_id = ? AND public_id = ?",
			campgroundID, publicID,
		); err != nil {
			return fmt.Errorf("removing image %s: %w", publicID, err)
		}
	}
	return nil
}

// Delete removes a campground, its reviews, and its image references as
// sequential steps. Releasing the external image resources happens
// before this is called.
func (r *Repository) Delete(id int64) error {
	if _, err := r.db.Exec("DELETE FROM reviews WHERE campground_id = ?", id); err != nil {
		return fmt.Errorf("deleting reviews: %w", err)
	}
	if _, err := r.db.Exec("DELETE FROM campground_images WHERE campground_id = ?", id); err != nil {
		return fmt.Errorf("deleting images: %w", err)
	}

	result, err := r.db.Exec("DELETE FROM campgrounds WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting campground: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return apperror.NotFound("campground", id)
	}

	return nil
}
