package ratings

import (
	"context"
	stderrors "errors"
	"math"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/filmvault/movie-server/internal/apperr"
	"github.com/filmvault/movie-server/movies"
)

// Service implements rating submission and aggregate queries.
type Service struct {
	movieRepo movies.Repo
	repo      Repo
}

func NewService(repo Repo, movieRepo movies.Repo) (*Service, error) {
	if repo == nil {
		return nil, errors.New("[ratings.NewService] repo is required")
	}
	if movieRepo == nil {
		return nil, errors.New("[ratings.NewService] movie repo is required")
	}
	return &Service{repo: repo, movieRepo: movieRepo}, nil
}

// Rate records the caller's score for a movie and returns the refreshed
// summary including their own rating.
func (s *Service) Rate(ctx context.Context, userID int64, imdbID string, score int) (*Summary, error) {
	id, err := s.requireMovie(ctx, imdbID)
	if err != nil {
		return nil, err
	}
	if score < 1 || score > 5 {
		return nil, errors.Wrap(apperr.ErrInvalidArgument, "score must be between 1 and 5")
	}

	if err := s.repo.Upsert(ctx, userID, id, score); err != nil {
		return nil, errors.Wrap(err, "[ratings.Service.Rate] Upsert")
	}
	return s.summary(ctx, id, &score)
}

// MyRating returns the movie summary including the caller's own score, if any.
func (s *Service) MyRating(ctx context.Context, userID int64, imdbID string) (*Summary, error) {
	id, err := s.requireMovie(ctx, imdbID)
	if err != nil {
		return nil, err
	}

	var mine *int
	rating, err := s.repo.GetByUserAndMovie(ctx, userID, id)
	if err == nil {
		mine = &rating.Score
	} else if !stderrors.Is(err, apperr.ErrNotFound) {
		return nil, errors.Wrap(err, "[ratings.Service.MyRating] GetByUserAndMovie")
	}
	return s.summary(ctx, id, mine)
}

// MovieSummary returns the anonymous aggregate view of a movie's ratings.
func (s *Service) MovieSummary(ctx context.Context, imdbID string) (*Summary, error) {
	id, err := s.requireMovie(ctx, imdbID)
	if err != nil {
		return nil, err
	}
	return s.summary(ctx, id, nil)
}

// DeleteMyRating removes the caller's rating and returns the refreshed
// summary. Deleting a rating that does not exist is not an error.
func (s *Service) DeleteMyRating(ctx context.Context, userID int64, imdbID string) (*Summary, error) {
	id, err := s.requireMovie(ctx, imdbID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.DeleteByUserAndMovie(ctx, userID, id); err != nil {
		return nil, errors.Wrap(err, "[ratings.Service.DeleteMyRating] DeleteByUserAndMovie")
	}
	return s.summary(ctx, id, nil)
}

func (s *Service) requireMovie(ctx context.Context, rawImdbID string) (string, error) {
	id := strings.TrimSpace(rawImdbID)
	if id == "" {
		return "", errors.Wrap(apperr.ErrInvalidArgument, "imdbId must not be empty")
	}
	if _, err := s.movieRepo.GetByImdbID(ctx, id); err != nil {
		if stderrors.Is(err, apperr.ErrNotFound) {
			log.Warn().Str("imdbId", id).Msg("movie not found")
			return "", apperr.ErrNotFound
		}
		return "", errors.Wrap(err, "[ratings.Service] GetByImdbID")
	}
	return id, nil
}

func (s *Service) summary(ctx context.Context, imdbID string, mine *int) (*Summary, error) {
	avg, count, err := s.repo.AggregateForMovie(ctx, imdbID)
	if err != nil {
		return nil, errors.Wrap(err, "[ratings.Service] AggregateForMovie")
	}
	return &Summary{
		Average:  math.Round(avg*10) / 10,
		Count:    count,
		MyRating: mine,
	}, nil
}
