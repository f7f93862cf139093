package tui

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// statusClearDelay is how long a status line stays on screen.
const statusClearDelay = 3 * time.Second

var errNoLink = errors.New("no link available for this launch")

// linkResultMsg reports the outcome of an open or copy action.
type linkResultMsg struct {
	status string
	err    error
}

// clearStatusMsg clears the status line if no newer status replaced it.
type clearStatusMsg struct {
	seq int
}

// URLFunc opens or copies a URL.
type URLFunc func(url string) error

// openURLInBrowser opens url with the platform launcher.
func openURLInBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}

//nolint:gochecknoglobals // Replaced in tests.
var clipboardWrite URLFunc = clipboard.WriteAll

// openURLCmd opens url, falling back to copying it when no browser can be started.
func openURLCmd(url string, openFn, copyFn URLFunc) tea.Cmd {
	return func() tea.Msg {
		if url == "" {
			return linkResultMsg{err: errNoLink}
		}
		if openFn != nil {
			if err := openFn(url); err == nil {
				return linkResultMsg{status: "Opened " + url}
			}
		}
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return linkResultMsg{status: "Could not open browser, URL copied to clipboard"}
			}
		}
		return linkResultMsg{err: fmt.Errorf("could not open or copy %s", url)}
	}
}

// copyURLCmd copies url to the clipboard.
func copyURLCmd(url string, copyFn URLFunc) tea.Cmd {
	return func() tea.Msg {
		if url == "" {
			return linkResultMsg{err: errNoLink}
		}
		if copyFn == nil {
			return linkResultMsg{err: errors.New("clipboard unavailable")}
		}
		if err := copyFn(url); err != nil {
			return linkResultMsg{err: fmt.Errorf("clipboard: %w", err)}
		}
		return linkResultMsg{status: "URL copied to clipboard"}
	}
}

func clearStatusCmd(seq int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}
