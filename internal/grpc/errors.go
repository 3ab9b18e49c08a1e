package grpc

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Belphemur/EpisodeGrid/internal/apperrors"
)

// errorDomain is the ErrorInfo domain attached to every pipeline error
const errorDomain = "episodegrid"

// toStatusError maps a pipeline error to a gRPC status carrying an ErrorInfo detail
func toStatusError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}

	kind := apperrors.Kind(err)
	metadata := map[string]string{}
	code := codes.Internal

	var (
		resolution *apperrors.ResolutionFailed
		noMatches  *apperrors.NoMatches
		fetch      *apperrors.FetchFailed
		malformed  *apperrors.MalformedData
		pivot      *apperrors.AmbiguousPivot
	)
	switch {
	case errors.As(err, &resolution):
		code = codes.Unavailable
		metadata["query"] = resolution.Query
		addStatus(metadata, resolution.StatusCode)
	case errors.As(err, &noMatches):
		code = codes.NotFound
		metadata["query"] = noMatches.Query
	case errors.As(err, &fetch):
		code = codes.Unavailable
		metadata["show_id"] = strconv.Itoa(fetch.ShowID)
		addStatus(metadata, fetch.StatusCode)
	case errors.As(err, &malformed):
		code = codes.DataLoss
		metadata["show_id"] = strconv.Itoa(malformed.ShowID)
		metadata["index"] = strconv.Itoa(malformed.Index)
	case errors.As(err, &pivot):
		code = codes.FailedPrecondition
		metadata["season"] = strconv.Itoa(pivot.Season)
		metadata["number"] = strconv.Itoa(pivot.Number)
	}

	st := status.New(code, err.Error())
	detailed, detailErr := st.WithDetails(&errdetails.ErrorInfo{
		Reason:   strings.ToUpper(kind),
		Domain:   errorDomain,
		Metadata: metadata,
	})
	if detailErr != nil {
		return st.Err()
	}
	return detailed.Err()
}

func addStatus(metadata map[string]string, statusCode int) {
	if statusCode != 0 {
		metadata["http_status"] = strconv.Itoa(statusCode)
	}
}
