package testutil

import (
	"encoding/json"
	"fmt"
	"strings"
)

// IntPtr is a helper for creating *int values in tests
func IntPtr(v int) *int {
	return &v
}

// FloatPtr is a helper for creating *float64 values in tests
func FloatPtr(v float64) *float64 {
	return &v
}

// StringPtr is a helper for creating *string values in tests
func StringPtr(v string) *string {
	return &v
}

// ShowOptions contains options for generating a TVMaze show object
type ShowOptions struct {
	ID        int
	Name      string
	Premiered string // empty renders null
	Ended     string // empty renders null
	Image     string // original image URL, empty renders null
	Summary   string // empty renders null
	Genres    []string
	Runtime   int // 0 renders null
}

// EpisodeOptions contains options for generating a TVMaze episode object
type EpisodeOptions struct {
	Season int
	Number int
	Name   string
	Rating *float64 // nil renders {"average": null}
}

// GenerateShowJSON renders a single show object as returned by /singlesearch/shows
func GenerateShowJSON(opts ShowOptions) string {
	show := map[string]any{
		"id":        opts.ID,
		"name":      opts.Name,
		"premiered": nullable(opts.Premiered),
		"ended":     nullable(opts.Ended),
		"summary":   nullable(opts.Summary),
		"genres":    opts.Genres,
		"runtime":   nil,
		"image":     nil,
	}
	if opts.Genres == nil {
		show["genres"] = []string{}
	}
	if opts.Runtime > 0 {
		show["runtime"] = opts.Runtime
	}
	if opts.Image != "" {
		show["image"] = map[string]string{
			"medium":   strings.Replace(opts.Image, "original", "medium", 1),
			"original": opts.Image,
		}
	}
	return mustJSON(show)
}

// GenerateSearchJSON renders a /search/shows result array, scoring results in descending order
func GenerateSearchJSON(shows ...ShowOptions) string {
	parts := make([]string, 0, len(shows))
	for i, show := range shows {
		score := 1.0 - float64(i)*0.1
		parts = append(parts, fmt.Sprintf(`{"score":%.2f,"show":%s}`, score, GenerateShowJSON(show)))
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// GenerateEpisodesJSON renders a /shows/{id}/episodes array
func GenerateEpisodesJSON(episodes ...EpisodeOptions) string {
	items := make([]map[string]any, 0, len(episodes))
	for i, ep := range episodes {
		name := ep.Name
		if name == "" {
			name = fmt.Sprintf("Episode %d", ep.Number)
		}
		items = append(items, map[string]any{
			"id":     1000 + i,
			"name":   name,
			"season": ep.Season,
			"number": ep.Number,
			"rating": map[string]any{"average": ep.Rating},
		})
	}
	return mustJSON(items)
}

// SampleEpisodes is a small two-season show with one unrated episode:
// S1 = 8.0, 9.0 (average 8.5), S2 = 7.0, unrated (average 7.0)
func SampleEpisodes() []EpisodeOptions {
	return []EpisodeOptions{
		{Season: 1, Number: 1, Name: "Pilot", Rating: FloatPtr(8.0)},
		{Season: 1, Number: 2, Name: "Second", Rating: FloatPtr(9.0)},
		{Season: 2, Number: 1, Name: "Return", Rating: FloatPtr(7.0)},
		{Season: 2, Number: 2, Name: "Unaired"},
	}
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}
