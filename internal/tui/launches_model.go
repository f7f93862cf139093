package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/rshade/launchdeck/internal/browse"
	"github.com/rshade/launchdeck/internal/launch"
	"github.com/rshade/launchdeck/internal/spacex"
	listview "github.com/rshade/launchdeck/internal/tui/list"
)

const (
	// chromeLines is the space taken by everything except list rows:
	// title, search, blank, box borders, footer, status, help.
	chromeLines = 8

	// footerLines is the row kept below the list for the footer.
	footerLines = 1

	// boxChrome is the horizontal room taken by the list box border and padding.
	boxChrome = 4

	// revealFrames is the number of animation steps of an expand/collapse.
	revealFrames = 4

	// revealInterval is the delay between animation steps.
	revealInterval = 30 * time.Millisecond
)

// Loader provides the launch collection.
type Loader interface {
	Load(ctx context.Context) spacex.Result
}

// Messages for LaunchesModel.
type (
	launchesLoadedMsg struct {
		records []launch.Record
		err     error
	}

	// loadMoreMsg is raised when the last displayed record scrolls into view.
	// at is the window length when the observation fired.
	loadMoreMsg struct {
		at int
	}

	revealTickMsg struct {
		id string
	}
)

// LaunchesModel is the Bubble Tea model for the launch browser.
type LaunchesModel struct {
	ctx    context.Context
	logger zerolog.Logger

	// View state
	state   ViewState
	browse  browse.State
	loadErr error

	// Interactive components
	list      *listview.VirtualListModel[launch.Record]
	search    textinput.Model
	searching bool
	loading   *LoadingState
	loadCmd   tea.Cmd

	// reveal tracks the expand/collapse animation frame per record ID.
	reveal map[string]int

	// Display configuration
	width  int
	height int

	// Status line
	status    string
	statusErr bool
	statusSeq int

	openURL URLFunc
	copyURL URLFunc
}

// ModelOption configures a LaunchesModel.
type ModelOption func(*LaunchesModel)

// WithPageSize sets how many records each load-more reveals.
func WithPageSize(n int) ModelOption {
	return func(m *LaunchesModel) {
		m.browse = browse.New(n).BeginLoad()
	}
}

// WithLogger sets the model logger.
func WithLogger(logger zerolog.Logger) ModelOption {
	return func(m *LaunchesModel) {
		m.logger = logger
	}
}

// WithURLOpener replaces the browser launcher.
func WithURLOpener(fn URLFunc) ModelOption {
	return func(m *LaunchesModel) {
		m.openURL = fn
	}
}

// WithClipboard replaces the clipboard writer.
func WithClipboard(fn URLFunc) ModelOption {
	return func(m *LaunchesModel) {
		m.copyURL = fn
	}
}

// NewLaunchesModel creates a model that starts loading on Init.
func NewLaunchesModel(ctx context.Context, loader Loader, opts ...ModelOption) *LaunchesModel {
	m := &LaunchesModel{
		ctx:     ctx,
		logger:  zerolog.Nop(),
		state:   ViewStateLoading,
		browse:  browse.New(browse.DefaultPageSize).BeginLoad(),
		search:  newSearchInput(),
		loading: NewLoadingState(),
		reveal:  make(map[string]int),
		width:   defaultWidth,
		height:  defaultHeight,
		openURL: openURLInBrowser,
		copyURL: clipboardWrite,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.list = listview.NewVirtualListModel(nil, m.listLines(), m.width, m.renderItem)
	m.list.SetBufferSize(0)
	m.list.SetHeightFunc(m.itemHeight)

	m.loadCmd = func() tea.Msg {
		res := loader.Load(ctx)
		return launchesLoadedMsg{records: res.Records, err: res.Err}
	}
	return m
}

// newSearchInput creates the mission name search box.
func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Search by mission name..."
	ti.Prompt = "Search: "
	ti.CharLimit = filterInputCharLimit
	ti.Width = filterInputWidth
	return ti
}

// Init starts the spinner and the single collection load.
func (m *LaunchesModel) Init() tea.Cmd {
	return tea.Batch(m.loading.Init(), m.loadCmd)
}

// Update handles messages and updates the model state.
func (m *LaunchesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width, m.listLines())
		return m, m.list.TakePending()

	case launchesLoadedMsg:
		return m.handleLoaded(msg)

	case loadMoreMsg:
		return m.handleLoadMore(msg)

	case revealTickMsg:
		tick := m.advanceReveal(msg.id)
		m.list.Refresh()
		return m, tea.Batch(tick, m.list.TakePending())

	case linkResultMsg:
		return m.handleLinkResult(msg)

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
		return m, nil

	case spinner.TickMsg:
		if !m.browse.Loading() {
			return m, nil
		}
		return m, m.loading.Update(msg)

	case tea.KeyMsg:
		if msg.String() == keyCtrlC {
			return m.quit()
		}
		if m.searching {
			return m.handleSearchInput(msg)
		}
		return m.handleListKey(msg)
	}

	// Cursor blink and other input messages.
	if m.searching {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *LaunchesModel) handleLoaded(msg launchesLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Debug().Err(msg.err).Msg("launch load failed, showing empty list")
		m.loadErr = msg.err
	}
	m.browse = m.browse.WithCollection(msg.records)
	m.state = ViewStateList
	m.resetWindow()
	return m, m.list.TakePending()
}

func (m *LaunchesModel) handleLoadMore(msg loadMoreMsg) (tea.Model, tea.Cmd) {
	before := len(m.browse.Window())
	m.browse = m.browse.LoadMore(msg.at)
	after := len(m.browse.Window())
	if after == before {
		return m, nil
	}

	m.logger.Debug().Int("from", before).Int("to", after).Msg("loaded more launches")
	m.list.SetItems(m.browse.Window())
	m.observeLast()
	return m, m.list.TakePending()
}

func (m *LaunchesModel) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEnter, keyEsc:
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, tea.Batch(cmd, m.applyQuery(m.search.Value()))
}

func (m *LaunchesModel) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyQuit:
		return m.quit()
	case keySlash:
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink
	case keyEsc:
		if m.search.Value() == "" {
			return m, nil
		}
		m.search.SetValue("")
		return m, m.applyQuery("")
	case keyEnter, keySpace:
		return m, m.toggleSelected()
	case keyOpen:
		return m, m.withSelected(func(r launch.Record) tea.Cmd {
			return openURLCmd(r.PrimaryLink(), m.openURL, m.copyURL)
		})
	case keyVideo:
		return m, m.withSelected(func(r launch.Record) tea.Cmd {
			return openURLCmd(r.Links.VideoLink, m.openURL, m.copyURL)
		})
	case keyCopy:
		return m, m.withSelected(func(r launch.Record) tea.Cmd {
			return copyURLCmd(r.PrimaryLink(), m.copyURL)
		})
	}

	_, cmd := m.list.Update(msg)
	return m, cmd
}

func (m *LaunchesModel) handleLinkResult(msg linkResultMsg) (tea.Model, tea.Cmd) {
	m.statusSeq++
	if msg.err != nil {
		m.status = msg.err.Error()
		m.statusErr = true
		m.logger.Debug().Err(msg.err).Msg("link action failed")
	} else {
		m.status = msg.status
		m.statusErr = false
	}
	return m, clearStatusCmd(m.statusSeq, statusClearDelay)
}

func (m *LaunchesModel) quit() (tea.Model, tea.Cmd) {
	m.list.Disconnect()
	m.state = ViewStateQuitting
	return m, tea.Quit
}

// applyQuery runs the re-filter transition and restarts the window.
func (m *LaunchesModel) applyQuery(query string) tea.Cmd {
	if query == m.browse.Query() {
		return nil
	}
	m.browse = m.browse.WithQuery(query)
	m.resetWindow()
	return m.list.TakePending()
}

// resetWindow shows the window from the top and re-attaches the observer.
func (m *LaunchesModel) resetWindow() {
	m.list.SetItems(m.browse.Window())
	m.list.SetSelected(0)
	m.observeLast()
}

// observeLast moves the visibility observation onto the last window element.
// Nothing is observed while the collection is loading or the window is empty.
func (m *LaunchesModel) observeLast() {
	window := m.browse.Window()
	if m.browse.Loading() || len(window) == 0 {
		m.list.Disconnect()
		return
	}
	m.list.Observe(len(window)-1, func(index int) tea.Msg {
		return loadMoreMsg{at: index + 1}
	})
}

func (m *LaunchesModel) withSelected(fn func(launch.Record) tea.Cmd) tea.Cmd {
	rec := m.list.GetSelectedItem()
	if rec == nil {
		return nil
	}
	return fn(*rec)
}

// toggleSelected flips the details of the selected record and starts the
// reveal animation. Records without details are inert.
func (m *LaunchesModel) toggleSelected() tea.Cmd {
	rec := m.list.GetSelectedItem()
	if rec == nil || !rec.HasDetails() {
		return nil
	}
	m.browse = m.browse.Toggle(*rec)
	tick := m.advanceReveal(rec.ID)
	m.list.Refresh()
	return tea.Batch(m.list.TakePending(), tick)
}

// advanceReveal moves the animation of id one frame toward its target and
// schedules the next frame until the target is reached.
func (m *LaunchesModel) advanceReveal(id string) tea.Cmd {
	target := 0
	if m.browse.DetailsVisible(id) {
		target = revealFrames
	}

	frame := m.reveal[id]
	switch {
	case frame < target:
		frame++
	case frame > target:
		frame--
	}

	if frame == 0 {
		delete(m.reveal, id)
	} else {
		m.reveal[id] = frame
	}

	if frame == target {
		return nil
	}
	return tea.Tick(revealInterval, func(time.Time) tea.Msg {
		return revealTickMsg{id: id}
	})
}

// listLines returns how many terminal lines the records may use.
func (m *LaunchesModel) listLines() int {
	return max(m.height-chromeLines, recordLines)
}

// itemHeight measures a record as drawn, including the details revealed by
// the current animation frame.
func (m *LaunchesModel) itemHeight(rec launch.Record) int {
	return lipgloss.Height(m.renderItem(rec, false))
}

func (m *LaunchesModel) contentWidth() int {
	return max(m.width-boxChrome, minNameWidth)
}

// renderItem renders one record for the virtual list.
func (m *LaunchesModel) renderItem(rec launch.Record, selected bool) string {
	return renderRecord(recordView{
		record:   rec,
		selected: selected,
		expanded: m.browse.DetailsVisible(rec.ID),
		revealed: m.reveal[rec.ID],
		width:    m.contentWidth(),
	})
}

// View renders the current view.
func (m *LaunchesModel) View() string {
	if m.state == ViewStateQuitting {
		return ""
	}

	title := HeaderStyle.Render("SpaceX Launches")
	if !m.browse.Loading() {
		title += MutedStyle.Render(fmt.Sprintf("  %d of %d shown",
			len(m.browse.Window()), len(m.browse.Filtered())))
	}

	listLines := m.listLines()
	body := m.list.View()
	if rows := strings.Split(body, "\n"); len(rows) > listLines {
		// Only a selected record taller than the box can overflow it.
		body = strings.Join(rows[:listLines], "\n")
	}
	if footer := renderFooter(m.browse.Footer(), m.loading); footer != "" {
		if body != "" {
			body += "\n"
		}
		body += footer
	}
	box := BoxStyle.
		Width(m.contentWidth() + 2).
		Height(listLines + footerLines).
		Render(body)

	status := ""
	if m.status != "" {
		if m.statusErr {
			status = ErrorStyle.Render(m.status)
		} else {
			status = StatusStyle.Render(m.status)
		}
	}

	help := "[/] Search [↑↓] Move [Enter] Details [o] Open [v] Video [y] Copy [q] Quit"
	if m.searching {
		help = "[Enter/Esc] Done  typing filters live"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.search.View(),
		"",
		box,
		status,
		MutedStyle.Render(help),
	)
}

// State returns the current browse snapshot.
func (m *LaunchesModel) State() browse.State {
	return m.browse
}

// LoadErr returns the error of the collection fetch, if it failed.
func (m *LaunchesModel) LoadErr() error {
	return m.loadErr
}
