// Package authz implements the ownership check shared by every owned
// resource kind.
package authz

import "github.com/jharden/campgrounds/internal/apperror"

// Kind names a resource kind for ownership checks.
type Kind string

const (
	KindCampground Kind = "campground"
	KindReview     Kind = "review"
)

// Owned describes a resource and the identity that owns it.
type Owned struct {
	Kind       Kind
	ResourceID int64
	OwnerID    int64
}

// Check confirms that userID owns the resource. A mismatch is Forbidden;
// whether the resource exists at all is the caller's lookup to make, so
// NotFound is never produced here.
func Check(res Owned, userID int64) error {
	if res.OwnerID != userID {
		return apperror.Forbidden("You do not have permission to do that")
	}
	return nil
}
