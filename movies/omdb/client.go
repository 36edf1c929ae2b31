// Package omdb is a thin HTTP wrapper over an OMDb-style movie catalog API.
package omdb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/filmvault/movie-server/internal/apperr"
)

const (
	minPage = 1
	maxPage = 100
)

// SearchItem is one row of a catalog search result.
type SearchItem struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	ImdbID string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

// SearchResponse is the catalog's paged search envelope.
type SearchResponse struct {
	Search       []SearchItem `json:"Search"`
	TotalResults string       `json:"totalResults"`
	Response     string       `json:"Response"`
	Error        string       `json:"Error,omitempty"`
}

// MovieDetail is the catalog's full record for one title.
type MovieDetail struct {
	Title    string `json:"Title"`
	Year     string `json:"Year"`
	Rated    string `json:"Rated"`
	Released string `json:"Released"`
	Runtime  string `json:"Runtime"`
	Genre    string `json:"Genre"`
	Director string `json:"Director"`
	Actors   string `json:"Actors"`
	Plot     string `json:"Plot"`
	Language string `json:"Language"`
	Country  string `json:"Country"`
	Awards   string `json:"Awards"`
	Poster   string `json:"Poster"`
	Type     string `json:"Type"`
	ImdbID   string `json:"imdbID"`
	Response string `json:"Response"`
	Error    string `json:"Error,omitempty"`
}

func (r *SearchResponse) ok() bool { return r.Response == "True" }
func (d *MovieDetail) ok() bool    { return d.Response == "True" }

// Client calls the external catalog API.
type Client struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
}

type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client (primarily for testing)
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func NewClient(apiURL, apiKey string, options ...ClientOption) *Client {
	c := &Client{
		apiURL: apiURL,
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Search runs a paged title search. The page is clamped to the catalog's
// supported range.
func (c *Client) Search(ctx context.Context, query string, page int) (*SearchResponse, error) {
	if query == "" {
		return nil, errors.Wrap(apperr.ErrInvalidArgument, "query must not be empty")
	}
	if page < minPage {
		page = minPage
	}
	if page > maxPage {
		page = maxPage
	}

	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("s", query)
	params.Set("page", strconv.Itoa(page))

	var res SearchResponse
	if err := c.get(ctx, params, &res); err != nil {
		return nil, err
	}
	if !res.ok() {
		if res.Error == "" {
			return nil, errors.Wrap(apperr.ErrExternalAPI, "catalog search error")
		}
		return nil, errors.Wrap(apperr.ErrExternalAPI, res.Error)
	}
	return &res, nil
}

// GetByID fetches the full record for one catalog id.
func (c *Client) GetByID(ctx context.Context, imdbID string) (*MovieDetail, error) {
	if imdbID == "" {
		return nil, errors.Wrap(apperr.ErrInvalidArgument, "imdbId must not be empty")
	}

	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("i", imdbID)
	params.Set("plot", "full")

	var res MovieDetail
	if err := c.get(ctx, params, &res); err != nil {
		return nil, err
	}
	if !res.ok() {
		if res.Error == "" {
			return nil, errors.Wrap(apperr.ErrExternalAPI, "catalog detail error")
		}
		return nil, errors.Wrap(apperr.ErrExternalAPI, res.Error)
	}
	return &res, nil
}

func (c *Client) get(ctx context.Context, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return errors.Wrap(err, "catalog request build")
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Str("url", c.apiURL).Msg("catalog request failed")
		return errors.Wrap(apperr.ErrExternalAPI, "catalog request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Error().Int("status", resp.StatusCode).Msg("catalog request returned non-200")
		return errors.Wrapf(apperr.ErrExternalAPI, "catalog request status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(apperr.ErrExternalAPI, "catalog response decode")
	}
	return nil
}
