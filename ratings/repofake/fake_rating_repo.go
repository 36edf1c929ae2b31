package fakeratingrepo

import (
	"context"
	"sync"
	"time"

	"github.com/filmvault/movie-server/internal/apperr"
	"github.com/filmvault/movie-server/ratings"
)

var _ ratings.Repo = (*FakeRatingRepo)(nil)

type key struct {
	userID int64
	imdbID string
}

type FakeRatingRepo struct {
	rows   map[key]*ratings.Rating
	nextID int64
	lock   sync.RWMutex
}

func NewFakeRatingRepo() *FakeRatingRepo {
	return &FakeRatingRepo{
		rows: make(map[key]*ratings.Rating),
	}
}

func (rr *FakeRatingRepo) Upsert(ctx context.Context, userID int64, imdbID string, score int) error {
	rr.lock.Lock()
	defer rr.lock.Unlock()

	k := key{userID: userID, imdbID: imdbID}
	now := time.Now()
	if row, ok := rr.rows[k]; ok {
		row.Score = score
		row.UpdatedAt = now
		return nil
	}
	rr.nextID++
	rr.rows[k] = &ratings.Rating{
		ID:        rr.nextID,
		UserID:    userID,
		ImdbID:    imdbID,
		Score:     score,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return nil
}

func (rr *FakeRatingRepo) GetByUserAndMovie(ctx context.Context, userID int64, imdbID string) (*ratings.Rating, error) {
	rr.lock.RLock()
	defer rr.lock.RUnlock()

	row, ok := rr.rows[key{userID: userID, imdbID: imdbID}]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *row
	return &cp, nil
}

func (rr *FakeRatingRepo) AggregateForMovie(ctx context.Context, imdbID string) (float64, int64, error) {
	rr.lock.RLock()
	defer rr.lock.RUnlock()

	var sum, count int64
	for k, row := range rr.rows {
		if k.imdbID == imdbID {
			sum += int64(row.Score)
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

func (rr *FakeRatingRepo) DeleteByUserAndMovie(ctx context.Context, userID int64, imdbID string) error {
	rr.lock.Lock()
	defer rr.lock.Unlock()

	delete(rr.rows, key{userID: userID, imdbID: imdbID})
	return nil
}
