package postgres

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestRatingRepo_Upsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRatingRepo(db)

	mock.ExpectExec(regexp.QuoteMeta(qRatingUpsert)).
		WithArgs(int64(7), "tt0133093", 4).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Upsert(context.Background(), 7, "tt0133093", 4))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRatingRepo_AggregateForMovie(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRatingRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(qRatingAggregate)).
		WithArgs("tt0133093").
		WillReturnRows(sqlmock.NewRows([]string{"avg", "count"}).AddRow(4.333333, int64(3)))

	avg, count, err := repo.AggregateForMovie(context.Background(), "tt0133093")
	require.NoError(t, err)
	require.InDelta(t, 4.33, avg, 0.01)
	require.Equal(t, int64(3), count)
}

func TestRatingRepo_AggregateForMovie_NoRatings(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRatingRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(qRatingAggregate)).
		WithArgs("tt0133093").
		WillReturnRows(sqlmock.NewRows([]string{"avg", "count"}).AddRow(0.0, int64(0)))

	avg, count, err := repo.AggregateForMovie(context.Background(), "tt0133093")
	require.NoError(t, err)
	require.Zero(t, avg)
	require.Zero(t, count)
}
