// Package movies manages the local movie store and its imports from the
// external catalog.
package movies

import "strings"

// Type classifies a catalog entry.
type Type string

const (
	TypeMovie   Type = "MOVIE"
	TypeSeries  Type = "SERIES"
	TypeEpisode Type = "EPISODE"
)

// TypeFromCatalog maps the external catalog's free-form type string onto a
// Type, defaulting to TypeMovie.
func TypeFromCatalog(value string) Type {
	switch strings.ToLower(value) {
	case "series":
		return TypeSeries
	case "episode":
		return TypeEpisode
	}
	return TypeMovie
}

// Movie is a locally stored catalog entry, keyed by its external catalog id.
type Movie struct {
	ID       int64  `json:"-"`
	ImdbID   string `json:"imdbId"`
	Title    string `json:"title"`
	Year     string `json:"year,omitempty"`
	Type     Type   `json:"type"`
	Poster   string `json:"poster,omitempty"`
	Plot     string `json:"plot,omitempty"`
	Genre    string `json:"genre,omitempty"`
	Runtime  string `json:"runtime,omitempty"`
	Director string `json:"director,omitempty"`
	Actors   string `json:"actors,omitempty"`
	Language string `json:"language,omitempty"`
	Country  string `json:"country,omitempty"`
	Awards   string `json:"awards,omitempty"`
	Rated    string `json:"rated,omitempty"`
	Released string `json:"released,omitempty"`
}

// Summary is the trimmed listing shape.
type Summary struct {
	ImdbID string `json:"imdbId"`
	Title  string `json:"title"`
	Year   string `json:"year,omitempty"`
	Type   Type   `json:"type"`
	Poster string `json:"poster,omitempty"`
}

func (m *Movie) Summary() Summary {
	return Summary{
		ImdbID: m.ImdbID,
		Title:  m.Title,
		Year:   m.Year,
		Type:   m.Type,
		Poster: m.Poster,
	}
}
