package domain

import (
	"fmt"
	"strings"
	"time"
)

// Rating bounds. Every review accepted by the service carries a rating in
// [MinRating, MaxRating].
const (
	MinRating = 1
	MaxRating = 5
)

// AnonymousUser is the display name stored when a review is submitted without one.
const AnonymousUser = "Anonymous"

// Review represents a product review. Reviews are immutable once created.
type Review struct {
	ID        string    `json:"id" bson:"-"`
	ProductID string    `json:"productId" bson:"productId"`
	UserID    string    `json:"userId" bson:"userId"`
	Rating    int       `json:"rating" bson:"rating"`
	Comment   string    `json:"comment" bson:"comment"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// ValidRating reports whether r is a star value the breakdown can hold.
func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}

// DisplayName returns the trimmed user name, or AnonymousUser when blank.
func DisplayName(userID string) string {
	if name := strings.TrimSpace(userID); name != "" {
		return name
	}
	return AnonymousUser
}

// SortOrder controls the ordering of a review listing.
type SortOrder string

// Supported review orderings. SortNone leaves the store's natural order.
const (
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
	SortNone   SortOrder = "none"
)

// ParseSortOrder maps a query value to a SortOrder. Empty means newest first.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortNewest:
		return SortNewest, nil
	case SortOldest:
		return SortOldest, nil
	case SortNone:
		return SortNone, nil
	default:
		return "", fmt.Errorf("unknown sort order %q", s)
	}
}
