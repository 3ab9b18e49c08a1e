package models

// Episode is one installment of a show. Rating is nil until the source publishes an audience score.
type Episode struct {
	Season int      `json:"season"`
	Number int      `json:"number"`
	Name   string   `json:"name"`
	Rating *float64 `json:"rating"`
}

// EpisodeTable holds every episode of a show ordered by (season, number)
type EpisodeTable struct {
	ShowID   int       `json:"showId"`
	Episodes []Episode `json:"episodes"`
}

// Len returns the number of episodes in the table
func (t *EpisodeTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Episodes)
}

// Seasons returns the distinct season numbers in table order
func (t *EpisodeTable) Seasons() []int {
	if t == nil {
		return nil
	}
	seasons := make([]int, 0)
	seen := make(map[int]struct{})
	for _, ep := range t.Episodes {
		if _, ok := seen[ep.Season]; ok {
			continue
		}
		seen[ep.Season] = struct{}{}
		seasons = append(seasons, ep.Season)
	}
	return seasons
}
