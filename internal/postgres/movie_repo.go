package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/pkg/errors"

	"github.com/filmvault/movie-server/internal/apperr"
	"github.com/filmvault/movie-server/movies"
)

var _ movies.Repo = (*MovieRepo)(nil)

type MovieRepo struct {
	db DBTX
}

func NewMovieRepo(db DBTX) *MovieRepo {
	return &MovieRepo{db: db}
}

const movieColumns = `id, imdb_id, title, year, type, poster, plot, genre, runtime,
		director, actors, language, country, awards, rated, released`

const (
	qMovieCreate = `
		INSERT INTO movies (imdb_id, title, year, type, poster, plot, genre, runtime,
			director, actors, language, country, awards, rated, released)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`
	qMovieExists   = `SELECT EXISTS (SELECT 1 FROM movies WHERE imdb_id = $1)`
	qMovieByImdbID = `SELECT ` + movieColumns + ` FROM movies WHERE imdb_id = $1`
	qMovieDelete   = `DELETE FROM movies WHERE imdb_id = $1`
	qMovieDeleteIn = `DELETE FROM movies WHERE imdb_id = ANY ($1)`
	qMovieList     = `
		SELECT ` + movieColumns + `
		FROM movies
		WHERE $1 = '' OR title ILIKE '%' || $1 || '%'
		ORDER BY title ASC
		OFFSET $2 LIMIT $3
	`
	qMovieCount = `
		SELECT count(*)
		FROM movies
		WHERE $1 = '' OR title ILIKE '%' || $1 || '%'
	`
)

func (mr *MovieRepo) Create(ctx context.Context, movie *movies.Movie) error {
	err := mr.db.QueryRowContext(ctx, qMovieCreate,
		movie.ImdbID, movie.Title, movie.Year, string(movie.Type), movie.Poster,
		movie.Plot, movie.Genre, movie.Runtime, movie.Director, movie.Actors,
		movie.Language, movie.Country, movie.Awards, movie.Rated, movie.Released,
	).Scan(&movie.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.ErrConflict
		}
		return errors.Wrap(err, "insert movie")
	}
	return nil
}

func (mr *MovieRepo) ExistsByImdbID(ctx context.Context, imdbID string) (bool, error) {
	var exists bool
	if err := mr.db.QueryRowContext(ctx, qMovieExists, imdbID).Scan(&exists); err != nil {
		return false, errors.Wrap(err, "movie exists")
	}
	return exists, nil
}

func (mr *MovieRepo) GetByImdbID(ctx context.Context, imdbID string) (*movies.Movie, error) {
	movie := &movies.Movie{}
	err := mr.db.QueryRowContext(ctx, qMovieByImdbID, imdbID).Scan(
		&movie.ID, &movie.ImdbID, &movie.Title, &movie.Year, &movie.Type,
		&movie.Poster, &movie.Plot, &movie.Genre, &movie.Runtime, &movie.Director,
		&movie.Actors, &movie.Language, &movie.Country, &movie.Awards, &movie.Rated,
		&movie.Released,
	)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, errors.Wrap(err, "find movie")
	}
	return movie, nil
}

func (mr *MovieRepo) DeleteByImdbID(ctx context.Context, imdbID string) (int64, error) {
	res, err := mr.db.ExecContext(ctx, qMovieDelete, imdbID)
	if err != nil {
		return 0, errors.Wrap(err, "delete movie")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "delete rows affected")
	}
	return affected, nil
}

func (mr *MovieRepo) DeleteByImdbIDs(ctx context.Context, imdbIDs []string) (int64, error) {
	res, err := mr.db.ExecContext(ctx, qMovieDeleteIn, imdbIDs)
	if err != nil {
		return 0, errors.Wrap(err, "delete movies")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "delete rows affected")
	}
	return affected, nil
}

func (mr *MovieRepo) List(ctx context.Context, search string, offset, limit int) ([]*movies.Movie, int64, error) {
	var total int64
	if err := mr.db.QueryRowContext(ctx, qMovieCount, search).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, "count movies")
	}

	rows, err := mr.db.QueryContext(ctx, qMovieList, search, offset, limit)
	if err != nil {
		return nil, 0, errors.Wrap(err, "list movies")
	}
	defer rows.Close()

	result := make([]*movies.Movie, 0)
	for rows.Next() {
		movie := &movies.Movie{}
		if err := rows.Scan(
			&movie.ID, &movie.ImdbID, &movie.Title, &movie.Year, &movie.Type,
			&movie.Poster, &movie.Plot, &movie.Genre, &movie.Runtime, &movie.Director,
			&movie.Actors, &movie.Language, &movie.Country, &movie.Awards, &movie.Rated,
			&movie.Released,
		); err != nil {
			return nil, 0, errors.Wrap(err, "scan movie")
		}
		result = append(result, movie)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.Wrap(err, "iterate movies")
	}
	return result, total, nil
}
