// Package browse holds the list state behind the launch browser: the full
// collection, the search-filtered view, the growing displayed window and the
// per-record detail visibility.
//
// State is an immutable snapshot. Every transition returns a new State and
// leaves the receiver untouched, so a single holder (the TUI model) can swap
// snapshots without aliasing surprises. Slices handed out by accessors must be
// treated as read-only.
//
// Invariants kept by every transition:
//   - Window() is a prefix of Filtered()
//   - len(Window()) <= len(Filtered())
//   - HasMore() == (len(Window()) < len(Filtered()))
package browse

import "github.com/rshade/launchdeck/internal/launch"

// DefaultPageSize is how many records each page adds to the window.
const DefaultPageSize = 10

// Footer is the status line shown below the list.
type Footer int

const (
	// FooterNone shows nothing: more records can still be revealed.
	FooterNone Footer = iota
	// FooterLoading is shown while the collection is being fetched.
	FooterLoading
	// FooterNoMore is shown when every filtered record is displayed.
	FooterNoMore
	// FooterNoResults is shown when nothing is displayed.
	FooterNoResults
)

// String returns the footer text.
func (f Footer) String() string {
	switch f {
	case FooterLoading:
		return "Loading launches..."
	case FooterNoMore:
		return "No more launches to display"
	case FooterNoResults:
		return "No launches found"
	case FooterNone:
		return ""
	default:
		return ""
	}
}

// State is one snapshot of the browser.
type State struct {
	pageSize int
	loading  bool
	query    string

	all      []launch.Record
	filtered []launch.Record
	// windowLen is the length of the displayed prefix of filtered.
	windowLen int
	// offset is where the next page starts.
	offset int

	visible map[string]bool
}

// New returns an empty, idle state. pageSize < 1 selects DefaultPageSize.
func New(pageSize int) State {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return State{pageSize: pageSize}
}

// BeginLoad marks the collection fetch as in flight.
func (s State) BeginLoad() State {
	s.loading = true
	return s
}

// WithCollection ends loading and stores the fetched collection. An empty
// collection leaves the derived view untouched.
func (s State) WithCollection(records []launch.Record) State {
	s.loading = false
	if len(records) == 0 {
		return s
	}
	s.all = records
	return s.refilter()
}

// WithQuery sets the search string and recomputes the filtered view once a
// collection is present.
func (s State) WithQuery(query string) State {
	if query == s.query {
		return s
	}
	s.query = query
	if len(s.all) == 0 {
		return s
	}
	return s.refilter()
}

// refilter rescans the full collection and resets the window to the first page.
func (s State) refilter() State {
	s.filtered = Filter(s.all, s.query)
	s.windowLen = min(s.pageSize, len(s.filtered))
	s.offset = s.pageSize
	return s
}

// LoadMore appends the next page. at is the window length observed when the
// trigger fired; a trigger raised for an older window is ignored, as is any
// trigger while loading or when nothing is left.
func (s State) LoadMore(at int) State {
	if s.loading || !s.HasMore() || at != s.windowLen {
		return s
	}
	// While HasMore holds, offset equals the window length.
	s.windowLen = min(s.offset+s.pageSize, len(s.filtered))
	s.offset += s.pageSize
	return s
}

// Toggle flips the detail visibility of rec. Records without details are inert.
func (s State) Toggle(rec launch.Record) State {
	if !rec.HasDetails() {
		return s
	}
	next := make(map[string]bool, len(s.visible)+1)
	for k, v := range s.visible {
		next[k] = v
	}
	next[rec.ID] = !next[rec.ID]
	s.visible = next
	return s
}

// Window returns the displayed prefix of the filtered view.
func (s State) Window() []launch.Record {
	return s.filtered[:s.windowLen]
}

// Filtered returns the full search-filtered view.
func (s State) Filtered() []launch.Record {
	return s.filtered
}

// All returns the full collection.
func (s State) All() []launch.Record {
	return s.all
}

// Query returns the current search string.
func (s State) Query() string {
	return s.query
}

// Loading reports whether the collection fetch is in flight.
func (s State) Loading() bool {
	return s.loading
}

// HasMore reports whether filtered records remain outside the window.
func (s State) HasMore() bool {
	return s.windowLen < len(s.filtered)
}

// Offset returns where the next page starts in the filtered view.
func (s State) Offset() int {
	return s.offset
}

// PageSize returns the page size.
func (s State) PageSize() int {
	return s.pageSize
}

// DetailsVisible reports whether the details of record id are expanded.
func (s State) DetailsVisible(id string) bool {
	return s.visible[id]
}

// Footer evaluates the footer in priority order.
func (s State) Footer() Footer {
	switch {
	case s.loading:
		return FooterLoading
	case s.windowLen > 0 && !s.HasMore():
		return FooterNoMore
	case s.windowLen == 0:
		return FooterNoResults
	default:
		return FooterNone
	}
}
