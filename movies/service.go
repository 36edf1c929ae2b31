package movies

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/filmvault/movie-server/internal/apperr"
	"github.com/filmvault/movie-server/movies/omdb"
)

const maxPageSize = 100

// Catalog is the external lookup collaborator, satisfied by *omdb.Client.
type Catalog interface {
	Search(ctx context.Context, query string, page int) (*omdb.SearchResponse, error)
	GetByID(ctx context.Context, imdbID string) (*omdb.MovieDetail, error)
}

// ImportStatus is the per-id outcome of a batch import.
type ImportStatus string

const (
	ImportAdded  ImportStatus = "ADDED"
	ImportExists ImportStatus = "EXISTS"
	ImportFailed ImportStatus = "FAILED"
)

type ImportResult struct {
	ImdbID  string       `json:"imdbId"`
	Status  ImportStatus `json:"status"`
	Message string       `json:"message"`
}

// Page is one page of the local movie listing.
type Page struct {
	Movies []*Movie
	Total  int64
	Number int // 1-based
	Size   int
}

// Service implements catalog search, imports, and local store management.
type Service struct {
	repo    Repo
	catalog Catalog
}

func NewService(repo Repo, catalog Catalog) (*Service, error) {
	if repo == nil {
		return nil, errors.New("[movies.NewService] repo is required")
	}
	if catalog == nil {
		return nil, errors.New("[movies.NewService] catalog is required")
	}
	return &Service{repo: repo, catalog: catalog}, nil
}

// SearchCatalog passes a title search through to the external catalog.
func (s *Service) SearchCatalog(ctx context.Context, query string, page int) (*omdb.SearchResponse, error) {
	return s.catalog.Search(ctx, strings.TrimSpace(query), page)
}

// Import fetches each id from the external catalog and stores it locally,
// reporting a per-id outcome. Ids duplicated within the request and ids
// already stored come back as EXISTS; catalog failures come back as FAILED
// without aborting the rest of the batch.
func (s *Service) Import(ctx context.Context, imdbIDs []string) ([]ImportResult, error) {
	if len(imdbIDs) == 0 {
		return nil, errors.Wrap(apperr.ErrInvalidArgument, "imdbIds must not be empty")
	}

	results := make([]ImportResult, 0, len(imdbIDs))
	seen := make(map[string]struct{}, len(imdbIDs))
	for _, raw := range imdbIDs {
		results = append(results, s.importOne(ctx, raw, seen))
	}
	return results, nil
}

func (s *Service) importOne(ctx context.Context, raw string, seen map[string]struct{}) ImportResult {
	imdbID := strings.TrimSpace(raw)
	if imdbID == "" {
		return ImportResult{ImdbID: raw, Status: ImportFailed, Message: "imdbId must not be empty"}
	}

	if _, dup := seen[imdbID]; dup {
		log.Info().Str("imdbId", imdbID).Msg("duplicated in the same request, skipping")
		return ImportResult{ImdbID: imdbID, Status: ImportExists, Message: "Duplicated in same request"}
	}
	seen[imdbID] = struct{}{}

	exists, err := s.repo.ExistsByImdbID(ctx, imdbID)
	if err != nil {
		log.Error().Err(err).Str("imdbId", imdbID).Msg("import existence check failed")
		return ImportResult{ImdbID: imdbID, Status: ImportFailed, Message: "Unexpected error"}
	}
	if exists {
		log.Info().Str("imdbId", imdbID).Msg("already in database, skipping")
		return ImportResult{ImdbID: imdbID, Status: ImportExists, Message: "Already in database"}
	}

	detail, err := s.catalog.GetByID(ctx, imdbID)
	if err != nil {
		if stderrors.Is(err, apperr.ErrExternalAPI) {
			log.Warn().Err(err).Str("imdbId", imdbID).Msg("catalog lookup failed")
			return ImportResult{ImdbID: imdbID, Status: ImportFailed, Message: "Catalog lookup failed"}
		}
		return ImportResult{ImdbID: imdbID, Status: ImportFailed, Message: "Unexpected error"}
	}

	movie := movieFromDetail(detail)
	if err := s.repo.Create(ctx, movie); err != nil {
		if stderrors.Is(err, apperr.ErrConflict) {
			return ImportResult{ImdbID: imdbID, Status: ImportExists, Message: "Already in database"}
		}
		log.Error().Err(err).Str("imdbId", imdbID).Msg("import insert failed")
		return ImportResult{ImdbID: imdbID, Status: ImportFailed, Message: "Unexpected error"}
	}
	return ImportResult{ImdbID: imdbID, Status: ImportAdded, Message: "Imported successfully"}
}

// List returns one page of the local store. page is 1-based; size is clamped
// to 1..100.
func (s *Service) List(ctx context.Context, search string, page, size int) (*Page, error) {
	if size < 1 {
		size = 1
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	if page < 1 {
		page = 1
	}

	rows, total, err := s.repo.List(ctx, strings.TrimSpace(search), (page-1)*size, size)
	if err != nil {
		return nil, errors.Wrap(err, "[movies.Service.List] repo.List")
	}
	return &Page{Movies: rows, Total: total, Number: page, Size: size}, nil
}

// Get returns the locally stored detail for one id.
func (s *Service) Get(ctx context.Context, imdbID string) (*Movie, error) {
	id, err := checkImdbID(imdbID)
	if err != nil {
		return nil, err
	}
	movie, err := s.repo.GetByImdbID(ctx, id)
	if err != nil {
		if stderrors.Is(err, apperr.ErrNotFound) {
			log.Warn().Str("imdbId", id).Msg("movie not found")
			return nil, apperr.ErrNotFound
		}
		return nil, errors.Wrap(err, "[movies.Service.Get] GetByImdbID")
	}
	return movie, nil
}

// Delete removes one movie; missing ids are reported as ErrNotFound.
func (s *Service) Delete(ctx context.Context, imdbID string) error {
	id, err := checkImdbID(imdbID)
	if err != nil {
		return err
	}
	deleted, err := s.repo.DeleteByImdbID(ctx, id)
	if err != nil {
		return errors.Wrap(err, "[movies.Service.Delete] DeleteByImdbID")
	}
	if deleted == 0 {
		log.Warn().Str("imdbId", id).Msg("movie not found for deletion")
		return apperr.ErrNotFound
	}
	return nil
}

// DeleteBatch removes a set of movies and returns how many rows went away.
func (s *Service) DeleteBatch(ctx context.Context, imdbIDs []string) (int64, error) {
	if len(imdbIDs) == 0 {
		return 0, nil
	}
	ids := make([]string, 0, len(imdbIDs))
	for _, raw := range imdbIDs {
		id, err := checkImdbID(raw)
		if err != nil {
			return 0, err
		}
		ids = append(ids, id)
	}
	deleted, err := s.repo.DeleteByImdbIDs(ctx, ids)
	if err != nil {
		return 0, errors.Wrap(err, "[movies.Service.DeleteBatch] DeleteByImdbIDs")
	}
	return deleted, nil
}

func movieFromDetail(d *omdb.MovieDetail) *Movie {
	return &Movie{
		ImdbID:   d.ImdbID,
		Title:    d.Title,
		Year:     d.Year,
		Type:     TypeFromCatalog(d.Type),
		Poster:   d.Poster,
		Plot:     d.Plot,
		Genre:    d.Genre,
		Runtime:  d.Runtime,
		Director: d.Director,
		Actors:   d.Actors,
		Language: d.Language,
		Country:  d.Country,
		Awards:   d.Awards,
		Rated:    d.Rated,
		Released: d.Released,
	}
}

func checkImdbID(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", errors.Wrap(apperr.ErrInvalidArgument, "imdbId must not be empty")
	}
	return id, nil
}
