package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/pkg/errors"

	"github.com/filmvault/movie-server/internal/apperr"
	"github.com/filmvault/movie-server/ratings"
)

var _ ratings.Repo = (*RatingRepo)(nil)

type RatingRepo struct {
	db DBTX
}

func NewRatingRepo(db DBTX) *RatingRepo {
	return &RatingRepo{db: db}
}

const (
	qRatingUpsert = `
		INSERT INTO ratings (user_id, movie_id, score)
		SELECT $1, m.id, $3 FROM movies m WHERE m.imdb_id = $2
		ON CONFLICT (user_id, movie_id)
		DO UPDATE SET score = EXCLUDED.score, updated_at = now()
	`
	qRatingByUserAndMovie = `
		SELECT r.id, r.user_id, m.imdb_id, r.score, r.created_at, r.updated_at
		FROM ratings r
		JOIN movies m ON m.id = r.movie_id
		WHERE r.user_id = $1 AND m.imdb_id = $2
	`
	qRatingAggregate = `
		SELECT COALESCE(avg(r.score), 0), count(r.id)
		FROM ratings r
		JOIN movies m ON m.id = r.movie_id
		WHERE m.imdb_id = $1
	`
	qRatingDelete = `
		DELETE FROM ratings r
		USING movies m
		WHERE r.movie_id = m.id AND r.user_id = $1 AND m.imdb_id = $2
	`
)

func (rr *RatingRepo) Upsert(ctx context.Context, userID int64, imdbID string, score int) error {
	if _, err := rr.db.ExecContext(ctx, qRatingUpsert, userID, imdbID, score); err != nil {
		return errors.Wrap(err, "upsert rating")
	}
	return nil
}

func (rr *RatingRepo) GetByUserAndMovie(ctx context.Context, userID int64, imdbID string) (*ratings.Rating, error) {
	rating := &ratings.Rating{}
	err := rr.db.QueryRowContext(ctx, qRatingByUserAndMovie, userID, imdbID).Scan(
		&rating.ID, &rating.UserID, &rating.ImdbID, &rating.Score, &rating.CreatedAt, &rating.UpdatedAt,
	)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, errors.Wrap(err, "find rating")
	}
	return rating, nil
}

func (rr *RatingRepo) AggregateForMovie(ctx context.Context, imdbID string) (float64, int64, error) {
	var (
		avg   float64
		count int64
	)
	if err := rr.db.QueryRowContext(ctx, qRatingAggregate, imdbID).Scan(&avg, &count); err != nil {
		return 0, 0, errors.Wrap(err, "aggregate ratings")
	}
	return avg, count, nil
}

func (rr *RatingRepo) DeleteByUserAndMovie(ctx context.Context, userID int64, imdbID string) error {
	if _, err := rr.db.ExecContext(ctx, qRatingDelete, userID, imdbID); err != nil {
		return errors.Wrap(err, "delete rating")
	}
	return nil
}
