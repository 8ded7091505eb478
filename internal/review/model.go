// Package review provides the review domain model, payload validation,
// and data access.
package review

import "time"

// Review is a rated comment on a campground. AuthorID is set at creation
// and never changes; membership in the campground's collection is the
// campground_id reference.
type Review struct {
	ID           int64     `json:"id"`
	CampgroundID int64     `json:"campground_id"`
	AuthorID     int64     `json:"author_id"`
	Author       string    `json:"author"`
	Rating       int       `json:"rating"`
	Body         string    `json:"body"`
	CreatedAt    time.Time `json:"created_at"`
}
