package parser

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Belphemur/EpisodeGrid/internal/config"
	"github.com/Belphemur/EpisodeGrid/internal/models"
)

// tvmazeShow mirrors the show object returned by the TVMaze API.
// Every optional field is a pointer so that null and absent values stay distinguishable.
type tvmazeShow struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Premiered *string `json:"premiered"`
	Ended     *string `json:"ended"`
	Image     *struct {
		Medium   *string `json:"medium"`
		Original *string `json:"original"`
	} `json:"image"`
	Summary *string  `json:"summary"`
	Genres  []string `json:"genres"`
	Runtime *int     `json:"runtime"`
	// averageRuntime is filled for shows whose episodes vary in length
	AverageRuntime *int `json:"averageRuntime"`
}

// tvmazeSearchResult is one entry of the /search/shows array
type tvmazeSearchResult struct {
	Score float64     `json:"score"`
	Show  *tvmazeShow `json:"show"`
}

// ShowSearchParser decodes the scored result array of /search/shows
type ShowSearchParser struct{}

// NewShowSearchParser creates a new search result parser
func NewShowSearchParser() Parser[models.Show] {
	return &ShowSearchParser{}
}

// Parse decodes the search array, keeping the API's ordering
func (p *ShowSearchParser) Parse(body io.Reader) ([]models.Show, error) {
	logger := config.GetLogger()

	var results []tvmazeSearchResult
	if err := json.NewDecoder(body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode search results: %w", err)
	}

	shows := make([]models.Show, 0, len(results))
	for i, result := range results {
		if result.Show == nil {
			logger.Debug().Int("index", i).Msg("Skipping search result without show object")
			continue
		}
		shows = append(shows, convertShow(result.Show))
	}

	logger.Debug().Int("results", len(results)).Int("shows", len(shows)).Msg("Parsed show search results")
	return shows, nil
}

// SingleShowParser decodes the single show object of /singlesearch/shows
type SingleShowParser struct{}

// NewSingleShowParser creates a new single show parser
func NewSingleShowParser() SingleResultParser[models.Show] {
	return &SingleShowParser{}
}

// Parse decodes one show object
func (p *SingleShowParser) Parse(body io.Reader) (models.Show, error) {
	var show tvmazeShow
	if err := json.NewDecoder(body).Decode(&show); err != nil {
		return models.Show{}, fmt.Errorf("failed to decode show: %w", err)
	}
	if show.ID == 0 {
		return models.Show{}, fmt.Errorf("show object has no id")
	}
	return convertShow(&show), nil
}

// convertShow maps the API representation to a models.Show, applying the
// year placeholders and nil defaults for missing optional fields
func convertShow(s *tvmazeShow) models.Show {
	show := models.Show{
		ID:        s.ID,
		Name:      s.Name,
		StartYear: models.YearFromDate(deref(s.Premiered), models.UnknownStartYear),
		EndYear:   models.YearFromDate(deref(s.Ended), models.OngoingEndYear),
		Summary:   nonEmpty(s.Summary),
		Genres:    make([]string, 0, len(s.Genres)),
	}

	show.Genres = append(show.Genres, s.Genres...)

	if s.Image != nil {
		if img := nonEmpty(s.Image.Original); img != nil {
			show.ImageURL = img
		} else {
			show.ImageURL = nonEmpty(s.Image.Medium)
		}
	}

	switch {
	case s.Runtime != nil:
		runtime := *s.Runtime
		show.RuntimeMinutes = &runtime
	case s.AverageRuntime != nil:
		runtime := *s.AverageRuntime
		show.RuntimeMinutes = &runtime
	}

	return show
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}
