package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"movieroulette/internal/api"
	"movieroulette/internal/discovery"
	"movieroulette/internal/testsupport"
)

type cliTestEnv struct {
	configPath string

	mu       sync.Mutex
	requests []string
}

func (e *cliTestEnv) discoverQueries() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.requests...)
}

func fakeTMDB(t *testing.T, env *cliTestEnv) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/genre/movie/list", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"genres":[{"id":18,"name":"Drama"},{"id":35,"name":"Comedy"}]}`))
	})
	mux.HandleFunc("/discover/movie", func(w http.ResponseWriter, r *http.Request) {
		env.mu.Lock()
		env.requests = append(env.requests, r.URL.RawQuery)
		env.mu.Unlock()
		_, _ = w.Write([]byte(`{"page":1,"results":[{"id":42},{"id":7}],"total_pages":1}`))
	})
	mux.HandleFunc("/movie/42", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":42,"title":"Answer","overview":"Deep thought.","imdb_id":"tt42","poster_path":null,"genres":[{"id":18,"name":"Drama"}]}`))
	})
	mux.HandleFunc("/movie/7", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":7,"title":"Seven","overview":"Lucky.","imdb_id":null,"poster_path":null,"genres":[]}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	env := &cliTestEnv{}
	srv := fakeTMDB(t, env)
	cfg := testsupport.NewConfig(t, testsupport.WithTMDBServer(srv.URL))

	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	env.configPath = filepath.Join(testsupport.BaseDir(cfg), "roulette.toml")
	if err := os.WriteFile(env.configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), err
}

func TestSuggestCommitAndSeenCycle(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, env, "suggest", "--commit")
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if !strings.Contains(out, "Answer (#42)") || !strings.Contains(out, "https://m.imdb.com/title/tt42") {
		t.Fatalf("unexpected suggest output:\n%s", out)
	}

	out, err = runCLI(t, env, "suggest", "--json")
	if err != nil {
		t.Fatalf("suggest --json: %v", err)
	}
	var movie api.Movie
	if err := json.Unmarshal([]byte(out), &movie); err != nil {
		t.Fatalf("decode json: %v\n%s", err, out)
	}
	if movie.ID != "7" || movie.CrossReferenceURL != "" {
		t.Fatalf("expected 7 after committing 42, got %+v", movie)
	}

	if _, err := runCLI(t, env, "seen", "add", "7"); err != nil {
		t.Fatalf("seen add: %v", err)
	}
	_, err = runCLI(t, env, "suggest")
	if !errors.Is(err, discovery.ErrNoQualifyingMovie) {
		t.Fatalf("expected ErrNoQualifyingMovie, got %v", err)
	}
	if err.Error() != "no movie matches these filters that you haven't seen" {
		t.Fatalf("unexpected message %q", err.Error())
	}

	out, err = runCLI(t, env, "seen", "list")
	if err != nil {
		t.Fatalf("seen list: %v", err)
	}
	if !strings.Contains(out, "Answer") || !strings.Contains(out, "Seven") {
		t.Fatalf("unexpected seen list:\n%s", out)
	}

	if _, err := runCLI(t, env, "seen", "remove", "42"); err != nil {
		t.Fatalf("seen remove: %v", err)
	}
	if _, err := runCLI(t, env, "seen", "reset"); err == nil {
		t.Fatal("expected reset without --yes to fail")
	}
	out, err = runCLI(t, env, "seen", "reset", "--yes")
	if err != nil {
		t.Fatalf("seen reset: %v", err)
	}
	if !strings.Contains(out, "Cleared 1 movie(s)") {
		t.Fatalf("unexpected reset output: %s", out)
	}
}

func TestSuggestFilters(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, err := runCLI(t, env, "suggest", "--year", "2020", "--genre", "drama"); err != nil {
		t.Fatalf("suggest: %v", err)
	}
	queries := env.discoverQueries()
	if len(queries) != 1 {
		t.Fatalf("expected one discover request, got %d", len(queries))
	}
	query := queries[0]
	if !strings.Contains(query, "year=2020") || !strings.Contains(query, "with_genres=18") {
		t.Fatalf("expected year and genre terms, got %s", query)
	}

	_, err := runCLI(t, env, "suggest", "--year", "0")
	if err == nil || err.Error() != "invalid year value" {
		t.Fatalf("expected invalid year error, got %v", err)
	}
	_, err = runCLI(t, env, "suggest", "--genre", "")
	if err == nil || err.Error() != "no genre selected" {
		t.Fatalf("expected no genre error, got %v", err)
	}
}

func TestGenresCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, env, "genres")
	if err != nil {
		t.Fatalf("genres: %v", err)
	}
	if strings.Index(out, "Comedy") > strings.Index(out, "Drama") || !strings.Contains(out, "Drama") {
		t.Fatalf("expected sorted genres, got:\n%s", out)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TMDB_API_KEY", "from-env")
	target := filepath.Join(t.TempDir(), "config.toml")

	cmd := newRootCommand()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"config", "init", "--path", target})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config written: %v", err)
	}

	cmd = newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"config", "init", "--path", target})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected second init without --overwrite to fail")
	}

	stdout.Reset()
	cmd = newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"--config", target, "config", "validate"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("config validate: %v", err)
	}
	if !strings.Contains(stdout.String(), "Configuration valid") {
		t.Fatalf("unexpected validate output: %s", stdout.String())
	}
}
