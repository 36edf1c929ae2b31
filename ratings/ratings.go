// Package ratings stores per-user 1-5 star movie ratings and computes the
// aggregate summaries shown next to each movie.
package ratings

import (
	"context"
	"time"
)

// Rating is one user's score for one movie. A (user, movie) pair has at most
// one rating; re-rating updates the score in place.
type Rating struct {
	ID        int64
	UserID    int64
	ImdbID    string
	Score     int // 1..5
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Summary is the aggregate view of a movie's ratings. MyRating is nil when
// the caller has not rated the movie (or when the view is anonymous).
type Summary struct {
	Average  float64 `json:"average"`
	Count    int64   `json:"count"`
	MyRating *int    `json:"myRating,omitempty"`
}

// Repo is the rating row store.
type Repo interface {
	// Upsert inserts the caller's rating or updates its score in place.
	Upsert(ctx context.Context, userID int64, imdbID string, score int) error

	// GetByUserAndMovie returns the caller's rating, or apperr.ErrNotFound.
	GetByUserAndMovie(ctx context.Context, userID int64, imdbID string) (*Rating, error)

	// AggregateForMovie returns the average score and rating count for a
	// movie. A movie with no ratings aggregates to (0, 0).
	AggregateForMovie(ctx context.Context, imdbID string) (float64, int64, error)

	// DeleteByUserAndMovie removes the caller's rating if present.
	DeleteByUserAndMovie(ctx context.Context, userID int64, imdbID string) error
}
