package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"movieroulette/internal/logging"
)

const (
	defaultTimeout      = 10 * time.Second
	defaultImageBaseURL = "https://image.tmdb.org/t/p/w500"
	maxPayloadBytes     = 4 << 20
	maxPosterBytes      = 16 << 20
)

// Catalog defines the TMDB operations used by discovery and detail display.
type Catalog interface {
	FetchGenreList(ctx context.Context) (map[string]int, error)
	FetchPage(ctx context.Context, query DiscoverQuery, page int) (*Page, error)
	FetchDetail(ctx context.Context, id string) (*Detail, error)
	FetchPoster(ctx context.Context, posterPath string) (*Poster, error)
}

// Client provides access to the TMDB API.
type Client struct {
	apiKey       string
	baseURL      string
	imageBaseURL string
	language     string
	httpClient   *http.Client
	logger       *slog.Logger
}

var _ Catalog = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout bounds each request. Expiry surfaces as ErrTransport.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithImageBaseURL overrides the poster base URL (size segment included).
func WithImageBaseURL(base string) Option {
	return func(c *Client) {
		if base = strings.TrimSpace(base); base != "" {
			c.imageBaseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithLogger attaches a logger for per-request debug lines.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logging.NewComponentLogger(logger, "catalog")
		}
	}
}

// New creates a TMDB client.
func New(apiKey, baseURL, language string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("tmdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tmdb base url required")
	}
	client := &Client{
		apiKey:       apiKey,
		baseURL:      strings.TrimRight(baseURL, "/"),
		imageBaseURL: defaultImageBaseURL,
		language:     strings.TrimSpace(language),
		httpClient:   &http.Client{Timeout: defaultTimeout},
		logger:       logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// FetchGenreList returns the movie genre names mapped to their TMDB ids.
func (c *Client) FetchGenreList(ctx context.Context) (map[string]int, error) {
	const endpoint = "genre list"
	var payload genreListPayload
	if err := c.getJSON(ctx, endpoint, "/genre/movie/list", nil, &payload); err != nil {
		return nil, err
	}
	return payload.toMap(endpoint)
}

// FetchPage requests one page of discover results sorted by popularity.
func (c *Client) FetchPage(ctx context.Context, query DiscoverQuery, page int) (*Page, error) {
	const endpoint = "discover"
	if page < 1 {
		return nil, transportError(endpoint, fmt.Errorf("page %d out of range", page))
	}
	terms := query.Terms().With(ParamPage, strconv.Itoa(page))
	var payload pagePayload
	if err := c.getJSON(ctx, endpoint, "/discover/movie", terms, &payload); err != nil {
		return nil, err
	}
	return payload.toPage(endpoint, page)
}

// FetchDetail fetches the full record for a movie id.
func (c *Client) FetchDetail(ctx context.Context, id string) (*Detail, error) {
	const endpoint = "movie details"
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, transportError(endpoint, errors.New("movie id must not be empty"))
	}
	var payload detailPayload
	if err := c.getJSON(ctx, endpoint, "/movie/"+url.PathEscape(id), nil, &payload); err != nil {
		return nil, err
	}
	return payload.toDetail(endpoint, id)
}

// FetchPoster downloads the poster image referenced by a detail's poster path.
func (c *Client) FetchPoster(ctx context.Context, posterPath string) (*Poster, error) {
	const endpoint = "poster"
	posterPath = strings.TrimLeft(strings.TrimSpace(posterPath), "/")
	if posterPath == "" {
		return nil, transportError(endpoint, errors.New("poster path must not be empty"))
	}
	target := c.imageBaseURL + "/" + posterPath
	if _, err := url.Parse(target); err != nil {
		return nil, transportError(endpoint, err)
	}

	body, header, err := c.do(ctx, endpoint, target, maxPosterBytes)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, malformed(endpoint, "empty image body")
	}
	return &Poster{URL: target, ContentType: header.Get("Content-Type"), Data: body}, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint, path string, terms Terms, dst any) error {
	terms = terms.With("api_key", c.apiKey)
	if c.language != "" {
		terms = terms.With("language", c.language)
	}
	body, _, err := c.do(ctx, endpoint, c.baseURL+path+"?"+terms.Encode(), maxPayloadBytes)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return malformed(endpoint, "decode: %v", err)
	}
	return nil
}

// do performs exactly one GET round trip and returns the body.
func (c *Client) do(ctx context.Context, endpoint, target string, limit int64) ([]byte, http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, nil, transportError(endpoint, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json, image/*")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, nil, transportError(endpoint, fmt.Errorf("execute request (latency=%v): %w", latency, err))
	}
	defer resp.Body.Close()

	c.logger.Debug("catalog request completed",
		logging.String("endpoint", endpoint),
		logging.Int("status", resp.StatusCode),
		logging.Duration("latency", latency),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, nil, &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, nil, transportError(endpoint, fmt.Errorf("read body: %w", err))
	}
	if int64(len(body)) > limit {
		return nil, nil, malformed(endpoint, "body exceeds %d bytes", limit)
	}
	return body, resp.Header, nil
}
