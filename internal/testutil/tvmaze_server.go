package testutil

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

// FakeTVMaze is an httptest server that answers the three TVMaze endpoints from canned bodies.
// Unknown queries and shows answer 404, like the real API.
type FakeTVMaze struct {
	Server *httptest.Server

	mu       sync.RWMutex
	search   map[string]string
	single   map[string]string
	episodes map[int]string
	statuses map[string]int // path -> forced status

	requests atomic.Int64
}

// NewFakeTVMaze starts a fake API and closes it when the test ends
func NewFakeTVMaze(t *testing.T) *FakeTVMaze {
	t.Helper()
	f := &FakeTVMaze{
		search:   make(map[string]string),
		single:   make(map[string]string),
		episodes: make(map[int]string),
		statuses: make(map[string]int),
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.Server.Close)
	return f
}

// URL is the base URL to configure as tvmaze_base_url
func (f *FakeTVMaze) URL() string {
	return f.Server.URL
}

// Requests returns how many requests reached the server
func (f *FakeTVMaze) Requests() int {
	return int(f.requests.Load())
}

// AddSearch registers the /search/shows body for query
func (f *FakeTVMaze) AddSearch(query, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.search[query] = body
}

// AddSingle registers the /singlesearch/shows body for query
func (f *FakeTVMaze) AddSingle(query, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.single[query] = body
}

// AddEpisodes registers the /shows/{id}/episodes body
func (f *FakeTVMaze) AddEpisodes(showID int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.episodes[showID] = body
}

// FailPath makes every request to path answer with status
func (f *FakeTVMaze) FailPath(path string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses[path] = status
}

func (f *FakeTVMaze) handle(w http.ResponseWriter, r *http.Request) {
	f.requests.Add(1)

	f.mu.RLock()
	defer f.mu.RUnlock()

	if status, ok := f.statuses[r.URL.Path]; ok {
		w.WriteHeader(status)
		return
	}

	var (
		body  string
		found bool
	)
	switch {
	case r.URL.Path == "/search/shows":
		body, found = f.search[r.URL.Query().Get("q")]
		if !found {
			body, found = "[]", true
		}
	case r.URL.Path == "/singlesearch/shows":
		body, found = f.single[r.URL.Query().Get("q")]
	case strings.HasPrefix(r.URL.Path, "/shows/") && strings.HasSuffix(r.URL.Path, "/episodes"):
		idText := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/shows/"), "/episodes")
		if id, err := strconv.Atoi(idText); err == nil {
			body, found = f.episodes[id]
		}
	}

	if !found {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"name":"Not Found","message":"","code":0,"status":404}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}
