package omdb_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/filmvault/movie-server/internal/apperr"
	"github.com/filmvault/movie-server/movies/omdb"
)

const testAPIKey = "test-key"

func newCatalogServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(handler))
	t.Cleanup(srv.Close)
	return srv
}

func TestSearch_Success(t *testing.T) {
	var gotQuery string
	srv := newCatalogServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Encode()
		_ = json.NewEncoder(w).Encode(omdb.SearchResponse{
			Search: []omdb.SearchItem{
				{Title: "The Matrix", Year: "1999", ImdbID: "tt0133093", Type: "movie"},
			},
			TotalResults: "1",
			Response:     "True",
		})
	})

	client := omdb.NewClient(srv.URL, testAPIKey)
	res, err := client.Search(context.Background(), "matrix", 1)
	require.NoError(t, err)
	require.Len(t, res.Search, 1)
	require.Equal(t, "tt0133093", res.Search[0].ImdbID)
	require.Equal(t, "apikey=test-key&page=1&s=matrix", gotQuery)
}

func TestSearch_ClampsPage(t *testing.T) {
	var gotPage string
	srv := newCatalogServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPage = r.URL.Query().Get("page")
		_ = json.NewEncoder(w).Encode(omdb.SearchResponse{Response: "True"})
	})

	client := omdb.NewClient(srv.URL, testAPIKey)
	_, err := client.Search(context.Background(), "matrix", -5)
	require.NoError(t, err)
	require.Equal(t, "1", gotPage)

	_, err = client.Search(context.Background(), "matrix", 5000)
	require.NoError(t, err)
	require.Equal(t, "100", gotPage)
}

func TestSearch_EmptyQuery(t *testing.T) {
	client := omdb.NewClient("http://unused", testAPIKey)

	_, err := client.Search(context.Background(), "", 1)
	require.ErrorIs(t, err, apperr.ErrInvalidArgument)
}

func TestSearch_CatalogReportsError(t *testing.T) {
	srv := newCatalogServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(omdb.SearchResponse{Response: "False", Error: "Movie not found!"})
	})

	client := omdb.NewClient(srv.URL, testAPIKey)
	_, err := client.Search(context.Background(), "zzzzzz", 1)
	require.ErrorIs(t, err, apperr.ErrExternalAPI)
	require.Contains(t, err.Error(), "Movie not found!")
}

func TestGetByID_Success(t *testing.T) {
	srv := newCatalogServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "tt0133093", r.URL.Query().Get("i"))
		require.Equal(t, "full", r.URL.Query().Get("plot"))
		_ = json.NewEncoder(w).Encode(omdb.MovieDetail{
			Title:    "The Matrix",
			Year:     "1999",
			ImdbID:   "tt0133093",
			Type:     "movie",
			Response: "True",
		})
	})

	client := omdb.NewClient(srv.URL, testAPIKey)
	detail, err := client.GetByID(context.Background(), "tt0133093")
	require.NoError(t, err)
	require.Equal(t, "The Matrix", detail.Title)
}

func TestGetByID_Non200(t *testing.T) {
	srv := newCatalogServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	client := omdb.NewClient(srv.URL, testAPIKey)
	_, err := client.GetByID(context.Background(), "tt0133093")
	require.ErrorIs(t, err, apperr.ErrExternalAPI)
}

func TestGetByID_MalformedBody(t *testing.T) {
	srv := newCatalogServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})

	client := omdb.NewClient(srv.URL, testAPIKey)
	_, err := client.GetByID(context.Background(), "tt0133093")
	require.ErrorIs(t, err, apperr.ErrExternalAPI)
}

func TestGetByID_ServerUnreachable(t *testing.T) {
	srv := newCatalogServer(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	client := omdb.NewClient(srv.URL, testAPIKey)
	_, err := client.GetByID(context.Background(), "tt0133093")
	require.ErrorIs(t, err, apperr.ErrExternalAPI)
}
