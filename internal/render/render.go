// Package render formats episode reports as plain terminal tables.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Belphemur/EpisodeGrid/internal/models"
	"github.com/Belphemur/EpisodeGrid/internal/parser"
)

// NotAvailable is printed for an episode that exists but has no rating
const NotAvailable = "N/A"

var headerStyle = lipgloss.NewStyle().Bold(true)

// FormatRating renders a rating with one decimal, or NotAvailable when nil
func FormatRating(rating *float64) string {
	if rating == nil {
		return NotAvailable
	}
	return strconv.FormatFloat(*rating, 'f', 1, 64)
}

// ShowHeader returns a one-line "Name (start - end)" title
func ShowHeader(show models.Show) string {
	return headerStyle.Render(fmt.Sprintf("%s (%s - %s)", show.Name, show.StartYear, show.EndYear))
}

// GridTable lays the grid out with episode numbers as rows and seasons as columns.
// Absent cells stay blank so missing episodes are distinguishable from unrated ones.
func GridTable(grid *models.RatingGrid) *table.Table {
	columns := grid.Columns()
	headers := make([]string, 0, len(columns)+1)
	headers = append(headers, "Ep")
	for _, season := range columns {
		headers = append(headers, "S"+strconv.Itoa(season))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)

	for _, row := range grid.Rows() {
		cells := make([]string, 0, len(columns)+1)
		cells = append(cells, strconv.Itoa(row))
		for _, season := range columns {
			rating, ok := grid.Cell(row, season)
			if !ok {
				cells = append(cells, "")
				continue
			}
			cells = append(cells, FormatRating(rating))
		}
		t.Row(cells...)
	}
	return t
}

// AveragesTable lists the per-season averages
func AveragesTable(averages models.SeasonAverages) *table.Table {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Season", "Average")
	for _, avg := range averages {
		t.Row(strconv.Itoa(avg.Season), strconv.FormatFloat(avg.Average, 'f', 2, 64))
	}
	return t
}

// ShowsTable lists search results with their summary reduced to plain text
func ShowsTable(shows []models.Show, summaryWidth int) *table.Table {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Name", "Years", "Genres", "Summary")
	for _, show := range shows {
		summary := ""
		if show.Summary != nil {
			summary = truncate(parser.PlainText(*show.Summary), summaryWidth)
		}
		t.Row(
			strconv.Itoa(show.ID),
			show.Name,
			show.StartYear+" - "+show.EndYear,
			strings.Join(show.Genres, ", "),
			summary,
		)
	}
	return t
}

// Report writes the header, the grid and the averages of report to w
func Report(w io.Writer, report *models.EpisodeReport) error {
	var b strings.Builder
	if report.Show != nil {
		b.WriteString(ShowHeader(*report.Show))
		b.WriteString("\n")
	}
	if report.Grid == nil || report.Grid.Len() == 0 {
		b.WriteString("No episodes.\n")
	} else {
		b.WriteString(GridTable(report.Grid).String())
		b.WriteString("\n")
	}
	if len(report.Averages) > 0 {
		b.WriteString(AveragesTable(report.Averages).String())
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Shows writes search results to w
func Shows(w io.Writer, query string, shows []models.Show) error {
	if len(shows) == 0 {
		_, err := fmt.Fprintf(w, "No show matches %q.\n", query)
		return err
	}
	_, err := fmt.Fprintln(w, ShowsTable(shows, 60).String())
	return err
}

func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
