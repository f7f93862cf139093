package cli

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/launchdeck/internal/browse"
	"github.com/rshade/launchdeck/internal/logging"
	"github.com/rshade/launchdeck/internal/tui"
)

func newBrowseCmd(s *session) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse launches interactively (default command)",
		Long: `Opens a full-screen list of launches, newest first.

Type / to search by mission name, scroll to load more, press enter to show
details and o to open the launch article. Without a terminal the first page
is printed instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowse(cmd, s, plain)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print the first page instead of starting the browser")

	return cmd
}

// runBrowse starts the interactive browser, or prints the first page when
// stdout is not a terminal.
func runBrowse(cmd *cobra.Command, s *session, forcePlain bool) error {
	ctx := cmd.Context()
	loader := s.newLoader()

	if tui.DetectOutputMode(forcePlain) == tui.OutputModePlain {
		return renderFirstPage(ctx, cmd.OutOrStdout(), loader, s.cfg.Browse.PageSize)
	}

	model := tui.NewLaunchesModel(ctx, loader,
		tui.WithPageSize(s.cfg.Browse.PageSize),
		tui.WithLogger(logging.ComponentLogger(logger, "tui")),
	)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run interactive TUI: %w", err)
	}

	if err := model.LoadErr(); err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: launches could not be loaded: %v\n", err)
		if s.logResult != nil && s.logResult.UsingFile {
			logging.PrintLogPathMessage(cmd.ErrOrStderr(), s.logResult.FilePath)
		}
	}

	return nil
}

// renderFirstPage prints what the browser would show before any scrolling:
// the first page of the collection and the footer.
func renderFirstPage(ctx context.Context, w io.Writer, loader tui.Loader, pageSize int) error {
	res := loader.Load(ctx)
	state := browse.New(pageSize).WithCollection(res.Records)

	if window := state.Window(); len(window) > 0 {
		if err := renderTable(w, window); err != nil {
			return err
		}
	}

	footer := state.Footer().String()
	if state.HasMore() {
		footer = fmt.Sprintf("Showing %d of %d launches. Use 'launchdeck list' to see more.",
			len(state.Window()), len(state.All()))
	}
	if _, err := fmt.Fprintln(w, footer); err != nil {
		return fmt.Errorf("writing footer: %w", err)
	}
	return nil
}
