// Package ratings turns an episode table into the aggregates shown next to it:
// per-season averages and the episode-number by season rating grid.
// Every function here is pure and deterministic.
package ratings

import (
	"math"
	"sort"

	"github.com/Belphemur/EpisodeGrid/internal/apperrors"
	"github.com/Belphemur/EpisodeGrid/internal/models"
)

// averagePrecision is the number of decimals kept in a season average.
const averagePrecision = 2

// SeasonAverages computes the mean of the non-nil ratings of every season, rounded to two
// decimals with ties to even. A season whose episodes are all unrated has no entry.
func SeasonAverages(table *models.EpisodeTable) models.SeasonAverages {
	if table == nil {
		return models.SeasonAverages{}
	}

	type accumulator struct {
		sum   float64
		count int
	}
	bySeason := make(map[int]*accumulator)
	for _, ep := range table.Episodes {
		if ep.Rating == nil {
			continue
		}
		acc, ok := bySeason[ep.Season]
		if !ok {
			acc = &accumulator{}
			bySeason[ep.Season] = acc
		}
		acc.sum += *ep.Rating
		acc.count++
	}

	averages := make(models.SeasonAverages, 0, len(bySeason))
	for season, acc := range bySeason {
		averages = append(averages, models.SeasonAverage{
			Season:  season,
			Average: roundTo(acc.sum/float64(acc.count), averagePrecision),
		})
	}
	sort.Slice(averages, func(i, j int) bool { return averages[i].Season < averages[j].Season })
	return averages
}

// BuildGrid pivots the table into a grid with the episode number as row and the season as
// column. Two episodes sharing a (season, number) key yield *apperrors.AmbiguousPivot.
func BuildGrid(table *models.EpisodeTable) (*models.RatingGrid, error) {
	grid := models.NewRatingGrid()
	if table == nil {
		return grid, nil
	}

	for _, ep := range table.Episodes {
		if !grid.Put(ep.Number, ep.Season, ep.Rating) {
			return nil, &apperrors.AmbiguousPivot{Season: ep.Season, Number: ep.Number}
		}
	}
	return grid, nil
}

// SortEpisodes orders episodes by (season, number), keeping source order for equal keys.
func SortEpisodes(episodes []models.Episode) {
	sort.SliceStable(episodes, func(i, j int) bool {
		if episodes[i].Season != episodes[j].Season {
			return episodes[i].Season < episodes[j].Season
		}
		return episodes[i].Number < episodes[j].Number
	})
}

func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.RoundToEven(v*scale) / scale
}
