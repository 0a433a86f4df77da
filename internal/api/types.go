package api

import (
	"net/url"

	"movieroulette/internal/details"
	"movieroulette/internal/seen"
)

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Movie describes a movie in a transport-friendly format.
type Movie struct {
	ID                string      `json:"id"`
	Title             string      `json:"title"`
	Overview          string      `json:"overview"`
	Genres            []string    `json:"genres"`
	IMDbID            string      `json:"imdbId,omitempty"`
	CrossReferenceURL string      `json:"crossReferenceUrl,omitempty"`
	Poster            *PosterInfo `json:"poster,omitempty"`
}

// PosterInfo describes an available poster; the bytes are served separately.
type PosterInfo struct {
	URL         string `json:"url"`
	SourceURL   string `json:"sourceUrl"`
	ContentType string `json:"contentType"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}

// SeenRecord is one entry of the seen list.
type SeenRecord struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	AddedAt string `json:"addedAt,omitempty"`
}

// SeenListResponse wraps the seen list.
type SeenListResponse struct {
	Items []SeenRecord `json:"items"`
	Count int          `json:"count"`
}

// SeenRequest marks a movie as seen.
type SeenRequest struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// ResetResponse reports how many entries a reset removed.
type ResetResponse struct {
	Removed int64 `json:"removed"`
}

// GenreListResponse lists genre names in display order.
type GenreListResponse struct {
	Genres []string `json:"genres"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FromMovie converts a resolved movie for transport.
func FromMovie(movie *details.Movie) Movie {
	if movie == nil {
		return Movie{}
	}
	genres := movie.Genres
	if genres == nil {
		genres = []string{}
	}
	out := Movie{
		ID:                movie.ID,
		Title:             movie.Title,
		Overview:          movie.Overview,
		Genres:            genres,
		IMDbID:            movie.IMDbID,
		CrossReferenceURL: movie.CrossReferenceURL,
	}
	if movie.Poster != nil {
		out.Poster = &PosterInfo{
			URL:         "/api/movies/" + url.PathEscape(movie.ID) + "/poster",
			SourceURL:   movie.Poster.URL,
			ContentType: movie.Poster.ContentType,
			Width:       movie.Poster.Width,
			Height:      movie.Poster.Height,
		}
	}
	return out
}

// FromRecords converts seen records for transport.
func FromRecords(records []seen.Record) SeenListResponse {
	items := make([]SeenRecord, 0, len(records))
	for _, rec := range records {
		item := SeenRecord{ID: rec.ID, Title: rec.Title}
		if !rec.AddedAt.IsZero() {
			item.AddedAt = rec.AddedAt.UTC().Format(dateTimeFormat)
		}
		items = append(items, item)
	}
	return SeenListResponse{Items: items, Count: len(items)}
}
