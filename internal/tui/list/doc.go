// Package listview provides virtual scrolling components for Bubble Tea TUI applications.
//
// The list renders only the rows inside the viewport plus a small buffer, so a
// window that keeps growing as pages are appended stays cheap to draw. Key features:
//   - Virtual scrolling with O(viewport_height) render complexity
//   - Keyboard navigation (up/down, pgup/pgdn, home/end, j/k)
//   - Appending items without losing the selection
//   - A viewport visibility Observer: one live observation on an item index that
//     emits a command when that item scrolls into view
//
// The Observer is the terminal counterpart of an intersection observer: callers
// attach it to the last rendered item to drive "load more" pagination.
package listview
