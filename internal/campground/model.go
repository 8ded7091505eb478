// Package campground provides the campground domain model, payload
// validation, and data access.
package campground

import "time"

// Image is a stored image reference: the opaque identifier in the
// external image store plus its retrievable URL.
type Image struct {
	ID           int64  `json:"id"`
	CampgroundID int64  `json:"campground_id"`
	PublicID     string `json:"public_id"`
	URL          string `json:"url"`
	Position     int    `json:"position"`
}

// Campground represents a listing. AuthorID is set at creation and never
// changes afterwards.
type Campground struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Price       float64   `json:"price"`
	Longitude   float64   `json:"longitude"`
	Latitude    float64   `json:"latitude"`
	AuthorID    int64     `json:"author_id"`
	Author      string    `json:"author"`
	Images      []Image   `json:"images"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
