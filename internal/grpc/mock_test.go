package grpc

import (
	"context"

	"github.com/Belphemur/EpisodeGrid/internal/models"
)

// mockService implements services.EpisodeGridService for testing
type mockService struct {
	resolveFunc        func(ctx context.Context, query string) ([]models.Show, error)
	reportFunc         func(ctx context.Context, showID int) (*models.EpisodeReport, error)
	reportForQueryFunc func(ctx context.Context, query string) (*models.EpisodeReport, error)
}

func (m *mockService) Resolve(ctx context.Context, query string) ([]models.Show, error) {
	if m.resolveFunc != nil {
		return m.resolveFunc(ctx, query)
	}
	return []models.Show{}, nil
}

func (m *mockService) Report(ctx context.Context, showID int) (*models.EpisodeReport, error) {
	if m.reportFunc != nil {
		return m.reportFunc(ctx, showID)
	}
	return &models.EpisodeReport{Table: &models.EpisodeTable{ShowID: showID}, Grid: models.NewRatingGrid()}, nil
}

func (m *mockService) ReportForQuery(ctx context.Context, query string) (*models.EpisodeReport, error) {
	if m.reportForQueryFunc != nil {
		return m.reportForQueryFunc(ctx, query)
	}
	return &models.EpisodeReport{Grid: models.NewRatingGrid()}, nil
}

func floatPtr(v float64) *float64 { return &v }

func stringPtr(v string) *string { return &v }

// sampleReport is a two-season report with one unrated episode
func sampleReport() *models.EpisodeReport {
	grid := models.NewRatingGrid()
	grid.Put(1, 1, floatPtr(8.0))
	grid.Put(2, 1, floatPtr(9.0))
	grid.Put(1, 2, nil)

	return &models.EpisodeReport{
		Show: &models.Show{ID: 82, Name: "Game of Thrones", StartYear: "2011", EndYear: "2019", Genres: []string{"Drama"}, ImageURL: stringPtr("https://img/original.jpg")},
		Table: &models.EpisodeTable{
			ShowID: 82,
			Episodes: []models.Episode{
				{Season: 1, Number: 1, Name: "Winter Is Coming", Rating: floatPtr(8.0)},
				{Season: 1, Number: 2, Name: "The Kingsroad", Rating: floatPtr(9.0)},
				{Season: 2, Number: 1, Name: "The North Remembers"},
			},
		},
		Averages: models.SeasonAverages{{Season: 1, Average: 8.5}},
		Grid:     grid,
	}
}
