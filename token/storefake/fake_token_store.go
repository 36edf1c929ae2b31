package faketokenstore

import (
	"context"
	"sync"

	"github.com/filmvault/movie-server/internal/apperr"
	"github.com/filmvault/movie-server/token"
)

var _ token.Store = (*FakeTokenStore)(nil)

type FakeTokenStore struct {
	records map[string]*token.RefreshTokenRecord // keyed by token string
	nextID  int64
	lock    sync.RWMutex
}

func NewFakeTokenStore() *FakeTokenStore {
	return &FakeTokenStore{
		records: make(map[string]*token.RefreshTokenRecord),
	}
}

func (ts *FakeTokenStore) Save(ctx context.Context, rec *token.RefreshTokenRecord) error {
	ts.lock.Lock()
	defer ts.lock.Unlock()

	if _, ok := ts.records[rec.Token]; ok {
		return apperr.ErrConflict
	}
	ts.nextID++
	rec.ID = ts.nextID
	cp := *rec
	ts.records[rec.Token] = &cp
	return nil
}

func (ts *FakeTokenStore) FindByToken(ctx context.Context, tokenStr string) (*token.RefreshTokenRecord, error) {
	ts.lock.RLock()
	defer ts.lock.RUnlock()

	rec, ok := ts.records[tokenStr]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (ts *FakeTokenStore) FindLiveByOwner(ctx context.Context, userID int64) ([]*token.RefreshTokenRecord, error) {
	ts.lock.RLock()
	defer ts.lock.RUnlock()

	live := make([]*token.RefreshTokenRecord, 0)
	for _, rec := range ts.records {
		if rec.UserID == userID && !rec.Expired && !rec.Revoked {
			cp := *rec
			live = append(live, &cp)
		}
	}
	return live, nil
}

func (ts *FakeTokenStore) Revoke(ctx context.Context, tokenStr string) (bool, error) {
	ts.lock.Lock()
	defer ts.lock.Unlock()

	rec, ok := ts.records[tokenStr]
	if !ok {
		return false, nil
	}
	if rec.Expired || rec.Revoked {
		return false, nil
	}
	rec.Expired = true
	rec.Revoked = true
	return true, nil
}
