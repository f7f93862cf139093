package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/launchdeck/internal/browse"
	"github.com/rshade/launchdeck/internal/cli/pagination"
)

// ErrUnsupportedOutput is returned for an unknown --output value.
var ErrUnsupportedOutput = errors.New("unsupported output format")

// listOptions holds the flags of the list command.
type listOptions struct {
	search string
	sort   string
	output string
	params pagination.Params
}

func newListCmd(s *session) *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print launches without the interactive browser",
		Long: `Loads the launch collection once, filters it by mission name, sorts it
and prints one page of it.

Sort fields: date (default server order, newest first), name, year, flight.
Append :asc or :desc to choose the direction.`,
		Example: `  launchdeck list --search starlink
  launchdeck list --limit 5 --offset 10
  launchdeck list --page 3 --page-size 20 --output json
  launchdeck list --sort name:desc --output ndjson`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, s, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.search, "search", "s", "", "case-insensitive mission name filter")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "sort as field[:asc|desc] (date, name, year, flight)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", outputTable, "output format: table, json or ndjson")
	cmd.Flags().IntVar(&opts.params.Limit, "limit", pagination.DefaultLimit, "maximum launches to print (0 = all)")
	cmd.Flags().IntVar(&opts.params.Offset, "offset", pagination.DefaultOffset, "launches to skip")
	cmd.Flags().IntVar(&opts.params.Page, "page", 0, "1-based page number (requires --page-size)")
	cmd.Flags().IntVar(&opts.params.PageSize, "page-size", 0, "launches per page (requires --page)")

	return cmd
}

func runList(cmd *cobra.Command, s *session, opts listOptions) error {
	format := strings.ToLower(opts.output)
	if !isValidOutputFormat(format) {
		return fmt.Errorf("%w: %q", ErrUnsupportedOutput, opts.output)
	}

	if err := opts.params.Validate(); err != nil {
		return fmt.Errorf("invalid pagination: %w", err)
	}

	field, order, err := pagination.ParseSort(opts.sort)
	if err != nil {
		return err
	}
	sorter := pagination.NewLaunchSorter()
	if field != "" && !sorter.IsValidField(field) {
		return fmt.Errorf("%w: %q (valid: %s)",
			pagination.ErrInvalidSortField, field, strings.Join(sorter.ValidFields(), ", "))
	}

	ctx := cmd.Context()
	res := s.newLoader().Load(ctx)
	if res.Err != nil {
		return fmt.Errorf("fetching launches: %w", res.Err)
	}

	filtered := browse.Filter(res.Records, opts.search)
	sorted, err := sorter.Sort(filtered, field, order)
	if err != nil {
		return err
	}

	page := pagination.Apply(opts.params, sorted)
	meta := pagination.NewMeta(opts.params, len(sorted))

	logger.Debug().Ctx(ctx).
		Str("search", opts.search).
		Int("matched", len(sorted)).
		Int("printed", len(page)).
		Dur("fetch_duration", res.Duration).
		Msg("listing launches")

	w := cmd.OutOrStdout()
	switch format {
	case outputJSON:
		return renderJSON(w, listOutput{
			Query:      opts.search,
			Sort:       opts.sort,
			Launches:   page,
			Pagination: meta,
		})
	case outputNDJSON:
		return renderNDJSON(w, page)
	default:
		if len(page) == 0 {
			_, err = fmt.Fprintln(w, browse.FooterNoResults.String())
			return err
		}
		if err = renderTable(w, page); err != nil {
			return err
		}
		return renderPageSummary(w, meta, len(page))
	}
}
