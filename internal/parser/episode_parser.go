package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/Belphemur/EpisodeGrid/internal/apperrors"
	"github.com/Belphemur/EpisodeGrid/internal/models"
)

type tvmazeEpisode struct {
	Name   string          `json:"name"`
	Season json.RawMessage `json:"season"`
	Number json.RawMessage `json:"number"`
	Rating *struct {
		Average *float64 `json:"average"`
	} `json:"rating"`
}

// EpisodeParser decodes the /shows/{id}/episodes array.
// Errors are *apperrors.MalformedData with ShowID left at zero; callers fill it in.
type EpisodeParser struct{}

// NewEpisodeParser creates a new episode list parser
func NewEpisodeParser() Parser[models.Episode] {
	return &EpisodeParser{}
}

// Parse decodes every episode in source order. It fails on the first entry whose season or
// number is not a positive integer.
func (p *EpisodeParser) Parse(body io.Reader) ([]models.Episode, error) {
	var raw []tvmazeEpisode
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return nil, &apperrors.MalformedData{Index: -1, Reason: fmt.Sprintf("episode list is not a JSON array of objects: %v", err)}
	}

	episodes := make([]models.Episode, 0, len(raw))
	for i, entry := range raw {
		season, err := positiveInt(entry.Season)
		if err != nil {
			return nil, &apperrors.MalformedData{Index: i, Reason: "season " + err.Error()}
		}
		number, err := positiveInt(entry.Number)
		if err != nil {
			return nil, &apperrors.MalformedData{Index: i, Reason: "number " + err.Error()}
		}

		var rating *float64
		if entry.Rating != nil && entry.Rating.Average != nil {
			v := *entry.Rating.Average
			rating = &v
		}

		episodes = append(episodes, models.Episode{
			Season: season,
			Number: number,
			Name:   entry.Name,
			Rating: rating,
		})
	}

	return episodes, nil
}

// positiveInt coerces a JSON number or numeric string to an integer >= 1
func positiveInt(raw json.RawMessage) (int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, fmt.Errorf("is missing")
	}

	text := string(raw)
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, fmt.Errorf("is not a valid string: %w", err)
		}
		text = strings.TrimSpace(s)
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not numeric", text)
	}
	if f != math.Trunc(f) || f < 1 || f > math.MaxInt32 {
		return 0, fmt.Errorf("%q is not a positive integer", text)
	}
	return int(f), nil
}
