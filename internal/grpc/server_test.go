package grpc

import (
	"context"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Belphemur/EpisodeGrid/internal/apperrors"
	"github.com/Belphemur/EpisodeGrid/internal/models"
)

func mustStruct(t *testing.T, fields map[string]any) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(fields)
	if err != nil {
		t.Fatalf("structpb.NewStruct: %v", err)
	}
	return s
}

func TestServer_ResolveShows(t *testing.T) {
	var gotQuery string
	srv := NewServer(&mockService{
		resolveFunc: func(_ context.Context, query string) ([]models.Show, error) {
			gotQuery = query
			return []models.Show{{ID: 82, Name: "Game of Thrones", Genres: []string{}}}, nil
		},
	})

	resp, err := srv.ResolveShows(context.Background(), mustStruct(t, map[string]any{"query": "thrones"}))
	if err != nil {
		t.Fatalf("ResolveShows: %v", err)
	}
	if gotQuery != "thrones" {
		t.Errorf("Expected query 'thrones', got %q", gotQuery)
	}
	if n := len(resp.GetFields()["shows"].GetListValue().GetValues()); n != 1 {
		t.Errorf("Expected 1 show, got %d", n)
	}
}

func TestServer_ResolveShows_EmptyIsNotAnError(t *testing.T) {
	srv := NewServer(&mockService{})

	resp, err := srv.ResolveShows(context.Background(), mustStruct(t, map[string]any{"query": "nothing"}))
	if err != nil {
		t.Fatalf("ResolveShows: %v", err)
	}
	if n := len(resp.GetFields()["shows"].GetListValue().GetValues()); n != 0 {
		t.Errorf("Expected no shows, got %d", n)
	}
}

func TestServer_InvalidArguments(t *testing.T) {
	srv := NewServer(&mockService{})
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
	}{
		{"missing query", func() error {
			_, err := srv.ResolveShows(ctx, mustStruct(t, map[string]any{}))
			return err
		}},
		{"blank query", func() error {
			_, err := srv.GetEpisodeReportForQuery(ctx, mustStruct(t, map[string]any{"query": "  "}))
			return err
		}},
		{"numeric query", func() error {
			_, err := srv.ResolveShows(ctx, mustStruct(t, map[string]any{"query": 5}))
			return err
		}},
		{"missing show id", func() error {
			_, err := srv.GetEpisodeReport(ctx, mustStruct(t, map[string]any{}))
			return err
		}},
		{"string show id", func() error {
			_, err := srv.GetEpisodeReport(ctx, mustStruct(t, map[string]any{"show_id": "82"}))
			return err
		}},
		{"fractional show id", func() error {
			_, err := srv.GetEpisodeReport(ctx, mustStruct(t, map[string]any{"show_id": 1.5}))
			return err
		}},
		{"zero show id", func() error {
			_, err := srv.GetEpisodeReport(ctx, mustStruct(t, map[string]any{"show_id": 0}))
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code := status.Code(tt.call()); code != codes.InvalidArgument {
				t.Errorf("Expected InvalidArgument, got %v", code)
			}
		})
	}
}

func TestServer_GetEpisodeReport(t *testing.T) {
	srv := NewServer(&mockService{
		reportFunc: func(_ context.Context, showID int) (*models.EpisodeReport, error) {
			if showID != 82 {
				t.Errorf("Expected show id 82, got %d", showID)
			}
			report := sampleReport()
			report.Show = nil
			return report, nil
		},
	})

	resp, err := srv.GetEpisodeReport(context.Background(), mustStruct(t, map[string]any{"show_id": 82}))
	if err != nil {
		t.Fatalf("GetEpisodeReport: %v", err)
	}
	if _, ok := resp.GetFields()["show"]; ok {
		t.Error("Expected no show for a report by id")
	}
	if n := len(resp.GetFields()["grid"].GetStructValue().GetFields()["cells"].GetListValue().GetValues()); n != 3 {
		t.Errorf("Expected 3 cells, got %d", n)
	}
}

func TestServer_GetEpisodeReportForQuery_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"no matches", apperrors.NewNoMatchesError("zzz"), codes.NotFound},
		{"ambiguous", &apperrors.AmbiguousPivot{Season: 1, Number: 1}, codes.FailedPrecondition},
		{"upstream", &apperrors.FetchFailed{ShowID: 1, StatusCode: 500}, codes.Unavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := NewServer(&mockService{
				reportForQueryFunc: func(context.Context, string) (*models.EpisodeReport, error) {
					return nil, tt.err
				},
			})
			_, err := srv.GetEpisodeReportForQuery(context.Background(), mustStruct(t, map[string]any{"query": "x"}))
			if code := status.Code(err); code != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, code)
			}
		})
	}
}
