package models

// SeasonAverage is the mean rating of the rated episodes of one season
type SeasonAverage struct {
	Season  int     `json:"season"`
	Average float64 `json:"average"`
}

// SeasonAverages lists averages in ascending season order. Seasons without a single
// rated episode are absent rather than zero.
type SeasonAverages []SeasonAverage

// Get returns the average for a season and whether the season has one
func (s SeasonAverages) Get(season int) (float64, bool) {
	for _, avg := range s {
		if avg.Season == season {
			return avg.Average, true
		}
	}
	return 0, false
}

// AsMap returns the averages keyed by season
func (s SeasonAverages) AsMap() map[int]float64 {
	m := make(map[int]float64, len(s))
	for _, avg := range s {
		m[avg.Season] = avg.Average
	}
	return m
}
