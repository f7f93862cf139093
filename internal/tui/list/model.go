package listview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// defaultBufferSize is the number of extra rows to render above/below viewport for smooth scrolling.
const defaultBufferSize = 5

// halfViewportDivisor is used to calculate half the viewport height for centering.
const halfViewportDivisor = 2

// RenderFunc is a function that renders an item at a given index.
// The selected parameter indicates whether this item is currently selected.
type RenderFunc[T any] func(item T, selected bool) string

// HeightFunc returns the number of terminal lines an item occupies.
type HeightFunc[T any] func(item T) int

// VirtualListModel implements virtual scrolling for growing lists.
// Height is measured in items unless a HeightFunc is set, in which case it
// is measured in terminal lines and only items that fit entirely count as
// visible.
type VirtualListModel[T any] struct {
	// items contains all list items
	items []T

	// renderFunc renders a single item
	renderFunc RenderFunc[T]

	// heightFunc measures an item in lines; nil means one item per row
	heightFunc HeightFunc[T]

	// selected is the currently selected item index (0-based)
	selected int

	// visibleFrom is the first visible item index
	visibleFrom int

	// visibleTo is the last visible item index (exclusive)
	visibleTo int

	// height is the viewport height in items, or in lines with a heightFunc
	height int

	// width is the viewport width in columns
	width int

	// bufferSize is the number of extra items to render above/below viewport
	bufferSize int

	// observer fires when its target index scrolls into view
	observer Observer

	// pending holds observer commands not yet handed to the runtime
	pending tea.Cmd
}

// NewVirtualListModel creates a new virtual list model.
// items: the items to display.
// height: viewport height in items.
// width: viewport width in columns.
// renderFunc: function to render each item.
func NewVirtualListModel[T any](items []T, height, width int, renderFunc RenderFunc[T]) *VirtualListModel[T] {
	m := &VirtualListModel[T]{
		items:      items,
		renderFunc: renderFunc,
		height:     height,
		width:      width,
		bufferSize: defaultBufferSize,
	}
	m.observer.Disconnect()

	m.updateVisibleRange()
	return m
}

// Init initializes the model (required for tea.Model interface).
func (m *VirtualListModel[T]) Init() tea.Cmd {
	return nil
}

// Update handles keyboard and resize messages. The returned command carries
// any observer notification raised by the scroll.
func (m *VirtualListModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg), m.TakePending()
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, m.TakePending()
	}

	return m, nil
}

// handleKeyMsg processes keyboard input for navigation.
//
//nolint:exhaustive // Only navigation keys are relevant.
func (m *VirtualListModel[T]) handleKeyMsg(msg tea.KeyMsg) tea.Model {
	if len(m.items) == 0 {
		return m
	}

	switch msg.Type {
	case tea.KeyUp:
		m.move(-1)
	case tea.KeyDown:
		m.move(1)
	case tea.KeyPgUp:
		m.move(-m.pageStep())
	case tea.KeyPgDown:
		m.move(m.pageStep())
	case tea.KeyHome:
		m.SetSelected(0)
	case tea.KeyEnd:
		m.SetSelected(len(m.items) - 1)
	case tea.KeyRunes:
		// vim-style navigation
		if len(msg.Runes) > 0 {
			switch msg.Runes[0] {
			case 'j':
				m.move(1)
			case 'k':
				m.move(-1)
			case 'g':
				m.SetSelected(0)
			case 'G':
				m.SetSelected(len(m.items) - 1)
			}
		}
	default:
		// Ignore other key types (Ctrl combinations, function keys, etc.)
	}

	return m
}

func (m *VirtualListModel[T]) move(delta int) {
	m.SetSelected(m.selected + delta)
}

// pageStep is the number of items a page key moves.
func (m *VirtualListModel[T]) pageStep() int {
	if m.heightFunc == nil {
		return m.height
	}
	return max(m.visibleTo-m.visibleFrom, 1)
}

// updateVisibleRange calculates the visible range of items based on selection and viewport,
// keeping the selected item visible, then notifies the observer.
func (m *VirtualListModel[T]) updateVisibleRange() {
	if len(m.items) == 0 {
		m.visibleFrom = 0
		m.visibleTo = 0
		m.notify()
		return
	}
	if m.heightFunc != nil {
		m.updateVisibleLines()
		m.notify()
		return
	}

	halfViewport := m.height / halfViewportDivisor

	// Start by centering the selected item
	idealFrom := m.selected - halfViewport
	idealTo := idealFrom + m.height

	// Adjust if we're near the start
	if idealFrom < 0 {
		idealFrom = 0
		idealTo = m.height
	}

	// Adjust if we're near the end
	if idealTo > len(m.items) {
		idealTo = len(m.items)
		idealFrom = max(idealTo-m.height, 0)
	}

	m.visibleFrom = idealFrom
	m.visibleTo = idealTo
	m.notify()
}

// updateVisibleLines packs whole items around the selection into height
// lines: up to half the spare lines above it, then as many below as fit,
// then any remainder above. The selected item always counts as visible even
// when it alone is taller than the viewport.
func (m *VirtualListModel[T]) updateVisibleLines() {
	from, to := m.selected, m.selected+1
	used := m.itemHeight(m.selected)

	above := 0
	halfSpare := (m.height - used) / halfViewportDivisor
	for from > 0 {
		h := m.itemHeight(from - 1)
		if above+h > halfSpare {
			break
		}
		above += h
		used += h
		from--
	}

	for to < len(m.items) {
		h := m.itemHeight(to)
		if used+h > m.height {
			break
		}
		used += h
		to++
	}

	for from > 0 {
		h := m.itemHeight(from - 1)
		if used+h > m.height {
			break
		}
		used += h
		from--
	}

	m.visibleFrom = from
	m.visibleTo = to
}

func (m *VirtualListModel[T]) itemHeight(index int) int {
	return max(m.heightFunc(m.items[index]), 1)
}

func (m *VirtualListModel[T]) notify() {
	m.queue(m.observer.Notify(m.visibleFrom, m.visibleTo))
}

func (m *VirtualListModel[T]) queue(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	if m.pending == nil {
		m.pending = cmd
		return
	}
	m.pending = tea.Batch(m.pending, cmd)
}

// TakePending returns and clears observer commands raised since the last call.
func (m *VirtualListModel[T]) TakePending() tea.Cmd {
	cmd := m.pending
	m.pending = nil
	return cmd
}

// View renders the visible portion of the list with buffer.
func (m *VirtualListModel[T]) View() string {
	if len(m.items) == 0 {
		return ""
	}

	renderFrom := max(m.visibleFrom-m.bufferSize, 0)
	renderTo := min(m.visibleTo+m.bufferSize, len(m.items))

	rows := make([]string, 0, renderTo-renderFrom)
	for i := renderFrom; i < renderTo; i++ {
		rows = append(rows, m.renderFunc(m.items[i], i == m.selected))
	}

	return strings.Join(rows, "\n")
}

// SetItems replaces the items, keeping the selection where possible.
// Appending a page therefore does not move the cursor.
func (m *VirtualListModel[T]) SetItems(items []T) {
	m.items = items
	m.SetSelected(m.selected)
}

// SetSize updates the viewport dimensions.
func (m *VirtualListModel[T]) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.updateVisibleRange()
}

// SetHeightFunc switches the viewport height to terminal lines, measuring
// each item with fn. Call Refresh when item heights change.
func (m *VirtualListModel[T]) SetHeightFunc(fn HeightFunc[T]) {
	m.heightFunc = fn
	m.updateVisibleRange()
}

// Refresh recomputes the visible range, for example after an item's rendered
// height changed.
func (m *VirtualListModel[T]) Refresh() {
	m.updateVisibleRange()
}

// SetBufferSize sets how many items outside the viewport are rendered.
func (m *VirtualListModel[T]) SetBufferSize(n int) {
	m.bufferSize = max(n, 0)
}

// Observe attaches the visibility observer to index. If the item is already
// visible the callback fires with the next TakePending.
func (m *VirtualListModel[T]) Observe(index int, callback VisibleFunc) {
	m.observer.Observe(index, callback)
	m.notify()
}

// Disconnect releases the visibility observer.
func (m *VirtualListModel[T]) Disconnect() {
	m.observer.Disconnect()
}

// Observing returns the observed index, or -1.
func (m *VirtualListModel[T]) Observing() int {
	return m.observer.Target()
}

// ItemCount returns the total number of items in the list.
func (m *VirtualListModel[T]) ItemCount() int {
	return len(m.items)
}

// Selected returns the currently selected item index.
func (m *VirtualListModel[T]) Selected() int {
	return m.selected
}

// SetSelected sets the selected item index, capping to valid bounds.
func (m *VirtualListModel[T]) SetSelected(index int) {
	switch {
	case len(m.items) == 0, index < 0:
		m.selected = 0
	case index >= len(m.items):
		m.selected = len(m.items) - 1
	default:
		m.selected = index
	}

	m.updateVisibleRange()
}

// VisibleFrom returns the first visible item index (inclusive).
func (m *VirtualListModel[T]) VisibleFrom() int {
	return m.visibleFrom
}

// VisibleTo returns the last visible item index (exclusive).
func (m *VirtualListModel[T]) VisibleTo() int {
	return m.visibleTo
}

// Height returns the viewport height.
func (m *VirtualListModel[T]) Height() int {
	return m.height
}

// Width returns the viewport width.
func (m *VirtualListModel[T]) Width() int {
	return m.width
}

// GetSelectedItem returns the currently selected item.
// Returns nil if list is empty.
func (m *VirtualListModel[T]) GetSelectedItem() *T {
	if len(m.items) == 0 || m.selected < 0 || m.selected >= len(m.items) {
		return nil
	}
	return &m.items[m.selected]
}
