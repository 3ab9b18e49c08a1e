package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	dto "github.com/prometheus/client_model/go"

	"github.com/Belphemur/EpisodeGrid/internal/apperrors"
	"github.com/Belphemur/EpisodeGrid/internal/cache"
	"github.com/Belphemur/EpisodeGrid/internal/config"
	"github.com/Belphemur/EpisodeGrid/internal/testutil"
)

func newTestClient(t *testing.T, baseURL string) Client {
	t.Helper()
	c := NewClient(&config.Config{
		TVMazeBaseURL: baseURL,
		ClientTimeout: "10s",
	})
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestClient_SearchShows(t *testing.T) {
	fake := testutil.NewFakeTVMaze(t)
	fake.AddSearch("game of thrones", testutil.GenerateSearchJSON(
		testutil.ShowOptions{ID: 82, Name: "Game of Thrones", Premiered: "2011-04-17", Ended: "2019-05-19", Genres: []string{"Drama"}, Runtime: 60},
		testutil.ShowOptions{ID: 9999, Name: "Game of Thrones: Behind the Scenes"},
	))

	c := newTestClient(t, fake.URL())
	shows, err := c.SearchShows(context.Background(), "  game   of thrones ")
	if err != nil {
		t.Fatalf("SearchShows failed: %v", err)
	}

	if len(shows) != 2 {
		t.Fatalf("Expected 2 shows, got %d", len(shows))
	}
	if shows[0].ID != 82 || shows[0].StartYear != "2011" || shows[0].EndYear != "2019" {
		t.Errorf("Unexpected first show %+v", shows[0])
	}
	if shows[1].StartYear != "N/A" || shows[1].EndYear != "Present" {
		t.Errorf("Expected year placeholders, got %s-%s", shows[1].StartYear, shows[1].EndYear)
	}
}

func TestClient_SearchShows_NoMatchesIsEmpty(t *testing.T) {
	fake := testutil.NewFakeTVMaze(t)

	c := newTestClient(t, fake.URL())
	shows, err := c.SearchShows(context.Background(), "zzzznosuchshow")
	if err != nil {
		t.Fatalf("Expected no error for empty result, got %v", err)
	}
	if len(shows) != 0 {
		t.Errorf("Expected empty result, got %d shows", len(shows))
	}
}

func TestClient_SearchShows_EmptyQuery(t *testing.T) {
	fake := testutil.NewFakeTVMaze(t)

	c := newTestClient(t, fake.URL())
	_, err := c.SearchShows(context.Background(), "   ")
	if !errors.Is(err, &apperrors.ResolutionFailed{}) {
		t.Fatalf("Expected ResolutionFailed, got %v", err)
	}
	if fake.Requests() != 0 {
		t.Errorf("Expected no request for an empty query, got %d", fake.Requests())
	}
}

func TestClient_SearchShows_Failures(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
	}{
		{
			name:       "server error",
			handler:    func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) },
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "not found",
			handler:    func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNotFound) },
			wantStatus: http.StatusNotFound,
		},
		{
			name: "undecodable body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`<html>maintenance</html>`))
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			c := newTestClient(t, server.URL)
			_, err := c.SearchShows(context.Background(), "lost")

			var resolution *apperrors.ResolutionFailed
			if !errors.As(err, &resolution) {
				t.Fatalf("Expected *ResolutionFailed, got %T: %v", err, err)
			}
			if resolution.StatusCode != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, resolution.StatusCode)
			}
			if resolution.Query != "lost" {
				t.Errorf("Expected query 'lost', got %q", resolution.Query)
			}
		})
	}
}

func TestClient_SearchShows_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	c := newTestClient(t, baseURL)
	_, err := c.SearchShows(context.Background(), "lost")

	var resolution *apperrors.ResolutionFailed
	if !errors.As(err, &resolution) {
		t.Fatalf("Expected *ResolutionFailed, got %T: %v", err, err)
	}
	if resolution.StatusCode != 0 || resolution.Err == nil {
		t.Errorf("Expected transport cause without status, got %+v", resolution)
	}
}

func TestClient_SingleSearch(t *testing.T) {
	fake := testutil.NewFakeTVMaze(t)
	fake.AddSingle("breaking bad", testutil.GenerateShowJSON(testutil.ShowOptions{
		ID: 169, Name: "Breaking Bad", Premiered: "2008-01-20", Ended: "2013-09-29",
	}))

	c := newTestClient(t, fake.URL())

	shows, err := c.SingleSearch(context.Background(), "breaking bad")
	if err != nil {
		t.Fatalf("SingleSearch failed: %v", err)
	}
	if len(shows) != 1 || shows[0].ID != 169 {
		t.Fatalf("Expected Breaking Bad, got %+v", shows)
	}

	none, err := c.SingleSearch(context.Background(), "zzzznosuchshow")
	if err != nil {
		t.Fatalf("Expected 404 to map to an empty result, got %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Errorf("Expected empty non-nil result, got %#v", none)
	}
}

func TestClient_GetEpisodes(t *testing.T) {
	fake := testutil.NewFakeTVMaze(t)
	fake.AddEpisodes(82, testutil.GenerateEpisodesJSON(
		testutil.EpisodeOptions{Season: 2, Number: 1, Rating: testutil.FloatPtr(7.5)},
		testutil.EpisodeOptions{Season: 1, Number: 2, Rating: testutil.FloatPtr(8.0)},
		testutil.EpisodeOptions{Season: 1, Number: 1},
	))

	c := newTestClient(t, fake.URL())
	table, err := c.GetEpisodes(context.Background(), 82)
	if err != nil {
		t.Fatalf("GetEpisodes failed: %v", err)
	}

	if table.ShowID != 82 || table.Len() != 3 {
		t.Fatalf("Unexpected table %+v", table)
	}
	wantOrder := [][2]int{{1, 1}, {1, 2}, {2, 1}}
	for i, want := range wantOrder {
		ep := table.Episodes[i]
		if ep.Season != want[0] || ep.Number != want[1] {
			t.Errorf("Position %d: expected S%dE%d, got S%dE%d", i, want[0], want[1], ep.Season, ep.Number)
		}
	}
	if table.Episodes[0].Rating != nil {
		t.Errorf("Expected nil rating for unrated episode, got %v", *table.Episodes[0].Rating)
	}
}

func TestClient_GetEpisodes_Errors(t *testing.T) {
	fake := testutil.NewFakeTVMaze(t)
	fake.AddEpisodes(5, `[{"season":1,"number":1},{"season":"x","number":2}]`)
	fake.FailPath("/shows/6/episodes", http.StatusServiceUnavailable)

	c := newTestClient(t, fake.URL())
	ctx := context.Background()

	_, err := c.GetEpisodes(ctx, 5)
	var malformed *apperrors.MalformedData
	if !errors.As(err, &malformed) {
		t.Fatalf("Expected *MalformedData, got %T: %v", err, err)
	}
	if malformed.ShowID != 5 || malformed.Index != 1 {
		t.Errorf("Expected show 5 index 1, got %+v", malformed)
	}

	_, err = c.GetEpisodes(ctx, 6)
	var fetch *apperrors.FetchFailed
	if !errors.As(err, &fetch) {
		t.Fatalf("Expected *FetchFailed, got %T: %v", err, err)
	}
	if fetch.ShowID != 6 || fetch.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("Unexpected fetch error %+v", fetch)
	}

	_, err = c.GetEpisodes(ctx, 404)
	if !errors.As(err, &fetch) || fetch.StatusCode != http.StatusNotFound {
		t.Errorf("Expected FetchFailed with 404 for unknown show, got %v", err)
	}

	_, err = c.GetEpisodes(ctx, 0)
	if !errors.Is(err, &apperrors.FetchFailed{}) {
		t.Errorf("Expected FetchFailed for show id 0, got %v", err)
	}
}

func TestClient_CachesSuccessfulResponses(t *testing.T) {
	fake := testutil.NewFakeTVMaze(t)
	fake.AddEpisodes(1, testutil.GenerateEpisodesJSON(testutil.SampleEpisodes()...))

	c := newTestClient(t, fake.URL())
	ctx := context.Background()
	hitsBefore := cacheHits(t)

	for i := 0; i < 3; i++ {
		if _, err := c.GetEpisodes(ctx, 1); err != nil {
			t.Fatalf("GetEpisodes #%d failed: %v", i, err)
		}
	}
	if fake.Requests() != 1 {
		t.Errorf("Expected a single upstream request, got %d", fake.Requests())
	}
	if got := cacheHits(t) - hitsBefore; got != 2 {
		t.Errorf("Expected 2 responses served from cache, got %.0f", got)
	}

	// Failures are never cached.
	for i := 0; i < 2; i++ {
		_, _ = c.GetEpisodes(ctx, 2)
	}
	if fake.Requests() != 3 {
		t.Errorf("Expected failed lookups to reach upstream each time, got %d requests", fake.Requests())
	}
}

func TestClient_DisabledCache(t *testing.T) {
	fake := testutil.NewFakeTVMaze(t)
	fake.AddEpisodes(1, testutil.GenerateEpisodesJSON(testutil.SampleEpisodes()...))

	c := NewClient(&config.Config{
		TVMazeBaseURL: fake.URL(),
		Cache:         config.CacheConfig{Provider: "none"},
	})
	defer c.Close()

	for i := 0; i < 2; i++ {
		if _, err := c.GetEpisodes(context.Background(), 1); err != nil {
			t.Fatalf("GetEpisodes failed: %v", err)
		}
	}
	if fake.Requests() != 2 {
		t.Errorf("Expected every call to reach upstream, got %d", fake.Requests())
	}
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(testutil.GenerateEpisodesJSON(testutil.SampleEpisodes()...)))
	}))
	defer server.Close()

	c := NewClient(&config.Config{
		TVMazeBaseURL: server.URL,
		Retry:         config.RetryConfig{MaxRetries: 3, Delay: "1ms", MaxDelay: "5ms"},
	})
	defer c.Close()

	table, err := c.GetEpisodes(context.Background(), 1)
	if err != nil {
		t.Fatalf("Expected retries to recover, got %v", err)
	}
	if table.Len() != 4 {
		t.Errorf("Expected 4 episodes, got %d", table.Len())
	}
	if attempts.Load() != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts.Load())
	}
}

func TestClient_ContextCancellation(t *testing.T) {
	fake := testutil.NewFakeTVMaze(t)

	c := newTestClient(t, fake.URL())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.GetEpisodes(ctx, 1)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled in the error chain, got %v", err)
	}
}

func TestNormalizeQuery(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  lost ", "lost"},
		{"the   office", "the office"},
		{"Poke\u0301mon", "Pok\u00e9mon"},
		{"\t\n", ""},
	}

	for _, tt := range tests {
		if got := normalizeQuery(tt.in); got != tt.want {
			t.Errorf("normalizeQuery(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// cacheHits reads the hit counter of the TVMaze response cache
func cacheHits(t *testing.T) float64 {
	t.Helper()
	counter, err := cache.HitsTotal.GetMetricWithLabelValues(cacheGroup)
	if err != nil {
		t.Fatalf("GetMetricWithLabelValues: %v", err)
	}
	var m dto.Metric
	if err := counter.Write(&m); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return m.GetCounter().GetValue()
}
