package models

// EpisodeReport bundles everything the presentation layer needs for one show
type EpisodeReport struct {
	Show     *Show          `json:"show,omitempty"`
	Table    *EpisodeTable  `json:"table"`
	Averages SeasonAverages `json:"averages"`
	Grid     *RatingGrid    `json:"grid"`
}
