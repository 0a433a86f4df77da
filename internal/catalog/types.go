package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MovieSummary is a discover result reduced to what disqualification needs.
type MovieSummary struct {
	ID string
	// Rank is the 1-based position within its page.
	Rank int
}

// Page is one page of discover results in catalog order.
type Page struct {
	Number     int
	Results    []MovieSummary
	TotalPages int
}

// Detail is the full record of a single movie.
type Detail struct {
	ID         string
	Title      string
	Overview   string
	Genres     []string
	PosterPath string
	IMDbID     string
}

// Poster holds the raw bytes of a poster image.
type Poster struct {
	URL         string
	ContentType string
	Data        []byte
}

type genreListPayload struct {
	Genres *[]genrePayload `json:"genres"`
}

type genrePayload struct {
	ID   *int    `json:"id"`
	Name *string `json:"name"`
}

type pagePayload struct {
	Results    *[]resultPayload `json:"results"`
	TotalPages *int             `json:"total_pages"`
}

type resultPayload struct {
	ID *movieID `json:"id"`
}

type detailPayload struct {
	Title      *string         `json:"title"`
	Overview   *string         `json:"overview"`
	IMDbID     json.RawMessage `json:"imdb_id"`
	PosterPath json.RawMessage `json:"poster_path"`
	Genres     *[]struct {
		Name *string `json:"name"`
	} `json:"genres"`
}

// movieID accepts both the numeric ids TMDB emits and string ids.
type movieID string

func (m *movieID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		if strings.TrimSpace(s) == "" {
			return errors.New("empty movie id")
		}
		*m = movieID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("movie id must be a number or string: %w", err)
	}
	if _, err := strconv.ParseInt(n.String(), 10, 64); err != nil {
		return fmt.Errorf("movie id %q is not an integer", n.String())
	}
	*m = movieID(n.String())
	return nil
}

// nullableString decodes a field that must be present but may be null.
func nullableString(raw json.RawMessage) (string, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "", false
	}
	if bytes.Equal(trimmed, []byte("null")) {
		return "", true
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return "", false
	}
	return s, true
}

func (p genreListPayload) toMap(endpoint string) (map[string]int, error) {
	if p.Genres == nil {
		return nil, malformed(endpoint, "missing genres")
	}
	out := make(map[string]int, len(*p.Genres))
	for i, g := range *p.Genres {
		if g.ID == nil {
			return nil, malformed(endpoint, "genres[%d] missing id", i)
		}
		if g.Name == nil {
			return nil, malformed(endpoint, "genres[%d] missing name", i)
		}
		out[*g.Name] = *g.ID
	}
	return out, nil
}

func (p pagePayload) toPage(endpoint string, number int) (*Page, error) {
	if p.Results == nil {
		return nil, malformed(endpoint, "missing results")
	}
	if p.TotalPages == nil {
		return nil, malformed(endpoint, "missing total_pages")
	}
	page := &Page{
		Number:     number,
		Results:    make([]MovieSummary, 0, len(*p.Results)),
		TotalPages: *p.TotalPages,
	}
	for i, r := range *p.Results {
		if r.ID == nil {
			return nil, malformed(endpoint, "results[%d] missing id", i)
		}
		page.Results = append(page.Results, MovieSummary{ID: string(*r.ID), Rank: i + 1})
	}
	return page, nil
}

func (p detailPayload) toDetail(endpoint, id string) (*Detail, error) {
	if p.Overview == nil {
		return nil, malformed(endpoint, "missing overview")
	}
	if p.Title == nil {
		return nil, malformed(endpoint, "missing title")
	}
	imdbID, ok := nullableString(p.IMDbID)
	if !ok {
		return nil, malformed(endpoint, "missing or invalid imdb_id")
	}
	if p.Genres == nil {
		return nil, malformed(endpoint, "missing genres")
	}
	genres := make([]string, 0, len(*p.Genres))
	for i, g := range *p.Genres {
		if g.Name == nil {
			return nil, malformed(endpoint, "genres[%d] missing name", i)
		}
		genres = append(genres, *g.Name)
	}
	posterPath, ok := nullableString(p.PosterPath)
	if !ok {
		return nil, malformed(endpoint, "missing or invalid poster_path")
	}
	return &Detail{
		ID:         id,
		Title:      *p.Title,
		Overview:   *p.Overview,
		Genres:     genres,
		PosterPath: posterPath,
		IMDbID:     imdbID,
	}, nil
}
