package fakemovierepo

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/filmvault/movie-server/internal/apperr"
	"github.com/filmvault/movie-server/movies"
)

var _ movies.Repo = (*FakeMovieRepo)(nil)

type FakeMovieRepo struct {
	byImdbID map[string]*movies.Movie
	nextID   int64
	lock     sync.RWMutex
}

func NewFakeMovieRepo() *FakeMovieRepo {
	return &FakeMovieRepo{
		byImdbID: make(map[string]*movies.Movie),
	}
}

func (mr *FakeMovieRepo) Create(ctx context.Context, movie *movies.Movie) error {
	mr.lock.Lock()
	defer mr.lock.Unlock()

	if _, ok := mr.byImdbID[movie.ImdbID]; ok {
		return apperr.ErrConflict
	}
	mr.nextID++
	movie.ID = mr.nextID
	cp := *movie
	mr.byImdbID[movie.ImdbID] = &cp
	return nil
}

func (mr *FakeMovieRepo) ExistsByImdbID(ctx context.Context, imdbID string) (bool, error) {
	mr.lock.RLock()
	defer mr.lock.RUnlock()

	_, ok := mr.byImdbID[imdbID]
	return ok, nil
}

func (mr *FakeMovieRepo) GetByImdbID(ctx context.Context, imdbID string) (*movies.Movie, error) {
	mr.lock.RLock()
	defer mr.lock.RUnlock()

	movie, ok := mr.byImdbID[imdbID]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *movie
	return &cp, nil
}

func (mr *FakeMovieRepo) DeleteByImdbID(ctx context.Context, imdbID string) (int64, error) {
	mr.lock.Lock()
	defer mr.lock.Unlock()

	if _, ok := mr.byImdbID[imdbID]; !ok {
		return 0, nil
	}
	delete(mr.byImdbID, imdbID)
	return 1, nil
}

func (mr *FakeMovieRepo) DeleteByImdbIDs(ctx context.Context, imdbIDs []string) (int64, error) {
	mr.lock.Lock()
	defer mr.lock.Unlock()

	var deleted int64
	for _, id := range imdbIDs {
		if _, ok := mr.byImdbID[id]; ok {
			delete(mr.byImdbID, id)
			deleted++
		}
	}
	return deleted, nil
}

func (mr *FakeMovieRepo) List(ctx context.Context, search string, offset, limit int) ([]*movies.Movie, int64, error) {
	mr.lock.RLock()
	defer mr.lock.RUnlock()

	matched := make([]*movies.Movie, 0, len(mr.byImdbID))
	needle := strings.ToLower(search)
	for _, movie := range mr.byImdbID {
		if needle != "" && !strings.Contains(strings.ToLower(movie.Title), needle) {
			continue
		}
		cp := *movie
		matched = append(matched, &cp)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Title < matched[j].Title
	})

	total := int64(len(matched))
	if offset >= len(matched) {
		return []*movies.Movie{}, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}
