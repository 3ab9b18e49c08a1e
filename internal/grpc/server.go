package grpc

import (
	"context"
	"math"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Belphemur/EpisodeGrid/internal/config"
	"github.com/Belphemur/EpisodeGrid/internal/services"
)

// server implements the EpisodeGridServiceServer interface
type server struct {
	service services.EpisodeGridService
	logger  zerolog.Logger
}

// NewServer creates a new gRPC server instance
func NewServer(svc services.EpisodeGridService) EpisodeGridServiceServer {
	return &server{
		service: svc,
		logger:  config.GetLogger(),
	}
}

// ResolveShows implements EpisodeGridServiceServer.ResolveShows
func (s *server) ResolveShows(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	query, err := queryField(req)
	if err != nil {
		return nil, err
	}
	s.logger.Debug().Str("query", query).Msg("ResolveShows called")

	shows, err := s.service.Resolve(ctx, query)
	if err != nil {
		s.logger.Error().Err(err).Str("query", query).Msg("Failed to resolve shows")
		return nil, toStatusError(err)
	}

	resp, err := convertShowsToStruct(shows)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode shows: %v", err)
	}

	s.logger.Debug().Str("query", query).Int("count", len(shows)).Msg("ResolveShows completed")
	return resp, nil
}

// GetEpisodeReport implements EpisodeGridServiceServer.GetEpisodeReport
func (s *server) GetEpisodeReport(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	showID, err := showIDField(req)
	if err != nil {
		return nil, err
	}
	s.logger.Debug().Int("show_id", showID).Msg("GetEpisodeReport called")

	report, err := s.service.Report(ctx, showID)
	if err != nil {
		s.logger.Error().Err(err).Int("show_id", showID).Msg("Failed to build episode report")
		return nil, toStatusError(err)
	}

	resp, err := convertReportToStruct(report)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode report: %v", err)
	}
	return resp, nil
}

// GetEpisodeReportForQuery implements EpisodeGridServiceServer.GetEpisodeReportForQuery
func (s *server) GetEpisodeReportForQuery(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	query, err := queryField(req)
	if err != nil {
		return nil, err
	}
	s.logger.Debug().Str("query", query).Msg("GetEpisodeReportForQuery called")

	report, err := s.service.ReportForQuery(ctx, query)
	if err != nil {
		s.logger.Error().Err(err).Str("query", query).Msg("Failed to build episode report for query")
		return nil, toStatusError(err)
	}

	resp, err := convertReportToStruct(report)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode report: %v", err)
	}
	return resp, nil
}

func queryField(req *structpb.Struct) (string, error) {
	v, ok := req.GetFields()["query"]
	if !ok {
		return "", status.Error(codes.InvalidArgument, "query is required")
	}
	sv, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok || strings.TrimSpace(sv.StringValue) == "" {
		return "", status.Error(codes.InvalidArgument, "query must be a non-empty string")
	}
	return sv.StringValue, nil
}

func showIDField(req *structpb.Struct) (int, error) {
	v, ok := req.GetFields()["show_id"]
	if !ok {
		return 0, status.Error(codes.InvalidArgument, "show_id is required")
	}
	nv, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, status.Error(codes.InvalidArgument, "show_id must be a number")
	}
	id := nv.NumberValue
	if id != math.Trunc(id) || id < 1 || id > math.MaxInt32 {
		return 0, status.Errorf(codes.InvalidArgument, "show_id must be a positive integer, got %v", id)
	}
	return int(id), nil
}
