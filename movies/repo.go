package movies

import "context"

// Repo is the movie row store. Implementations return apperr.ErrNotFound and
// apperr.ErrConflict for the usual cases.
type Repo interface {
	Create(ctx context.Context, movie *Movie) error
	ExistsByImdbID(ctx context.Context, imdbID string) (bool, error)
	GetByImdbID(ctx context.Context, imdbID string) (*Movie, error)
	DeleteByImdbID(ctx context.Context, imdbID string) (int64, error)
	DeleteByImdbIDs(ctx context.Context, imdbIDs []string) (int64, error)

	// List returns one page of movies sorted by title ascending, filtered by
	// a case-insensitive title substring when search is non-empty, together
	// with the total row count for the same filter.
	List(ctx context.Context, search string, offset, limit int) ([]*Movie, int64, error)
}
