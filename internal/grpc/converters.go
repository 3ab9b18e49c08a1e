package grpc

import (
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Belphemur/EpisodeGrid/internal/models"
)

// The converters build plain map/slice trees first and hand them to structpb.NewStruct,
// which only accepts []any and map[string]any containers.

func showToValue(show models.Show) map[string]any {
	genres := make([]any, len(show.Genres))
	for i, g := range show.Genres {
		genres[i] = g
	}

	return map[string]any{
		"id":              show.ID,
		"name":            show.Name,
		"start_year":      show.StartYear,
		"end_year":        show.EndYear,
		"image_url":       stringOrNil(show.ImageURL),
		"summary":         stringOrNil(show.Summary),
		"genres":          genres,
		"runtime_minutes": intOrNil(show.RuntimeMinutes),
	}
}

func episodeToValue(ep models.Episode) map[string]any {
	return map[string]any{
		"season": ep.Season,
		"number": ep.Number,
		"name":   ep.Name,
		"rating": floatOrNil(ep.Rating),
	}
}

func tableToValue(table *models.EpisodeTable) map[string]any {
	if table == nil {
		return map[string]any{"show_id": 0, "episodes": []any{}}
	}
	episodes := make([]any, len(table.Episodes))
	for i, ep := range table.Episodes {
		episodes[i] = episodeToValue(ep)
	}
	return map[string]any{
		"show_id":  table.ShowID,
		"episodes": episodes,
	}
}

func averagesToValue(averages models.SeasonAverages) []any {
	out := make([]any, len(averages))
	for i, avg := range averages {
		out[i] = map[string]any{
			"season":  avg.Season,
			"average": avg.Average,
		}
	}
	return out
}

func gridToValue(grid *models.RatingGrid) map[string]any {
	rows, columns, cells := []any{}, []any{}, []any{}
	if grid != nil {
		for _, r := range grid.Rows() {
			rows = append(rows, r)
		}
		for _, c := range grid.Columns() {
			columns = append(columns, c)
		}
		for _, cell := range grid.Cells() {
			cells = append(cells, map[string]any{
				"row":    cell.Row,
				"column": cell.Column,
				"rating": floatOrNil(cell.Rating),
			})
		}
	}
	return map[string]any{
		"rows":    rows,
		"columns": columns,
		"cells":   cells,
	}
}

func convertShowsToStruct(shows []models.Show) (*structpb.Struct, error) {
	list := make([]any, len(shows))
	for i, show := range shows {
		list[i] = showToValue(show)
	}
	return structpb.NewStruct(map[string]any{"shows": list})
}

func convertReportToStruct(report *models.EpisodeReport) (*structpb.Struct, error) {
	fields := map[string]any{
		"table":    tableToValue(report.Table),
		"averages": averagesToValue(report.Averages),
		"grid":     gridToValue(report.Grid),
	}
	if report.Show != nil {
		fields["show"] = showToValue(*report.Show)
	}
	return structpb.NewStruct(fields)
}

func stringOrNil(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func intOrNil(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func floatOrNil(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
