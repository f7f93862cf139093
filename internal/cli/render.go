package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/mattn/go-runewidth"

	"github.com/rshade/launchdeck/internal/cli/pagination"
	"github.com/rshade/launchdeck/internal/launch"
)

// Output formats accepted by --output.
const (
	outputTable  = "table"
	outputJSON   = "json"
	outputNDJSON = "ndjson"
)

// tabPadding is the minimum column padding for tabwriter output.
const tabPadding = 2

// missionColumnWidth caps the MISSION column in display cells.
const missionColumnWidth = 40

// listOutput is the JSON document written by `list --output json`.
type listOutput struct {
	Query      string          `json:"query,omitempty"`
	Sort       string          `json:"sort,omitempty"`
	Launches   []launch.Record `json:"launches"`
	Pagination pagination.Meta `json:"pagination"`
}

func isValidOutputFormat(format string) bool {
	switch format {
	case outputTable, outputJSON, outputNDJSON:
		return true
	default:
		return false
	}
}

// renderTable writes records as an aligned table.
func renderTable(w io.Writer, records []launch.Record) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)

	if _, err := fmt.Fprintf(tw, "FLIGHT\tMISSION\tYEAR\tSTATUS\tLINK\n"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "------\t-------\t----\t------\t----\n"); err != nil {
		return fmt.Errorf("writing separator: %w", err)
	}

	for _, r := range records {
		link := r.PrimaryLink()
		if link == "" {
			link = "-"
		}
		if _, err := fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			r.FlightNumber,
			runewidth.Truncate(r.MissionName, missionColumnWidth, "…"),
			r.LaunchYear,
			r.Status(),
			link,
		); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	return tw.Flush()
}

// renderJSON writes the page and its metadata as one indented document.
func renderJSON(w io.Writer, out listOutput) error {
	if out.Launches == nil {
		out.Launches = []launch.Record{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// renderNDJSON writes one record per line with no wrapper.
func renderNDJSON(w io.Writer, records []launch.Record) error {
	for _, r := range records {
		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("marshaling launch %s: %w", r.ID, err)
		}
		if _, err = fmt.Fprintf(w, "%s\n", data); err != nil {
			return fmt.Errorf("writing NDJSON line: %w", err)
		}
	}
	return nil
}

// renderPageSummary writes the "page x of y" line under a table.
func renderPageSummary(w io.Writer, meta pagination.Meta, shown int) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%d of %d launches", shown, meta.TotalItems)
	if meta.TotalPages > 1 {
		fmt.Fprintf(&b, " (page %d of %d)", meta.CurrentPage, meta.TotalPages)
	}
	if _, err := fmt.Fprintln(w, b.String()); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}
