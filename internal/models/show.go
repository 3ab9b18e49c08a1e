package models

// Show represents a TV show matched by a free-text query
type Show struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	StartYear      string   `json:"startYear"`
	EndYear        string   `json:"endYear"`
	ImageURL       *string  `json:"imageUrl"`
	Summary        *string  `json:"summary"`
	Genres         []string `json:"genres"`
	RuntimeMinutes *int     `json:"runtimeMinutes"`
}

// Placeholders used when a premiere or end date is too short to carry a year.
const (
	UnknownStartYear = "N/A"
	OngoingEndYear   = "Present"
)

// YearFromDate returns the first four characters of a date string, or fallback when
// the date is shorter than a year.
func YearFromDate(date string, fallback string) string {
	if len(date) < 4 {
		return fallback
	}
	return date[:4]
}
