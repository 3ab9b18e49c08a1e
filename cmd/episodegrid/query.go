package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Belphemur/EpisodeGrid/internal/apperrors"
	"github.com/Belphemur/EpisodeGrid/internal/models"
	"github.com/Belphemur/EpisodeGrid/internal/render"
)

var showID int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "List the TVMaze shows matching a query",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

var gridCmd = &cobra.Command{
	Use:   "grid [query]",
	Short: "Print the rating grid and season averages of a show",
	Long: `Print the rating grid and season averages of a show.

The show is either the first match of <query> or the TVMaze id given with --id.
Episodes without a rating are shown as N/A; episodes that do not exist stay blank.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if showID == 0 && len(args) == 0 {
			return errors.New("a query or --id is required")
		}
		if showID != 0 && len(args) > 0 {
			return errors.New("a query and --id are mutually exclusive")
		}
		if showID < 0 {
			return fmt.Errorf("invalid show id %d", showID)
		}
		return nil
	},
	RunE: runGrid,
}

func init() {
	gridCmd.Flags().IntVar(&showID, "id", 0, "TVMaze show id")
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := effectiveConfig()
	if err != nil {
		return err
	}
	service, tvmaze := newPipeline(cfg)
	defer tvmaze.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	query := strings.Join(args, " ")
	shows, err := service.Resolve(ctx, query)
	if err != nil {
		return describe(err)
	}
	return render.Shows(cmd.OutOrStdout(), query, shows)
}

func runGrid(cmd *cobra.Command, args []string) error {
	cfg, err := effectiveConfig()
	if err != nil {
		return err
	}
	service, tvmaze := newPipeline(cfg)
	defer tvmaze.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	var report *models.EpisodeReport
	if showID != 0 {
		report, err = service.Report(ctx, showID)
	} else {
		report, err = service.ReportForQuery(ctx, strings.Join(args, " "))
	}
	if err != nil {
		return describe(err)
	}
	return render.Report(cmd.OutOrStdout(), report)
}

// describe turns pipeline errors into messages fit for a terminal
func describe(err error) error {
	var (
		noMatches *apperrors.NoMatches
		fetch     *apperrors.FetchFailed
		pivot     *apperrors.AmbiguousPivot
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("timed out after %s: %w", timeout, err)
	case errors.As(err, &noMatches):
		return fmt.Errorf("no show found for %q", noMatches.Query)
	case errors.As(err, &fetch) && fetch.StatusCode == 404:
		return fmt.Errorf("show %d does not exist on TVMaze", fetch.ShowID)
	case errors.As(err, &pivot):
		return fmt.Errorf("cannot build a grid: %w", err)
	default:
		return err
	}
}
