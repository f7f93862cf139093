package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/rshade/launchdeck/internal/browse"
	"github.com/rshade/launchdeck/internal/launch"
)

const (
	// recordLines is the height of a collapsed record: title, year, links.
	recordLines = 3

	// detailsIndent aligns details with the mission name.
	detailsIndent = 4

	// minNameWidth keeps mission names readable on narrow terminals.
	minNameWidth = 12

	// titleReserve is the room kept on the title line for cursor, patch marker,
	// badge and expand indicator.
	titleReserve = 24

	linkDivider = " | "

	patchMarker     = "◉"
	indicatorClosed = "▾"
	indicatorOpen   = "▴"
	cursorMarker    = "▸"
)

// recordView carries everything needed to draw one record.
type recordView struct {
	record   launch.Record
	selected bool
	// expanded is the persisted visibility flag.
	expanded bool
	// revealed is the share of the details currently drawn, in frames out of
	// revealFrames. It trails expanded while the transition runs.
	revealed int
	width    int
}

// renderBadge renders the status badge in its colour.
func renderBadge(status launch.Status) string {
	var bg lipgloss.Color
	switch status {
	case launch.StatusUpcoming:
		bg = ColorUpcoming
	case launch.StatusSuccess:
		bg = ColorSuccess
	case launch.StatusFailed:
		bg = ColorFailed
	default:
		bg = ColorMuted
	}
	return badgeStyle.Background(bg).Render(status.String())
}

// renderLinks renders "Article | Video"; the divider appears only when both
// links exist. Returns "" when neither does.
func renderLinks(links launch.Links) string {
	parts := make([]string, 0, 2)
	if links.ArticleLink != "" {
		parts = append(parts, LinkStyle.Render("Article"))
	}
	if links.VideoLink != "" {
		parts = append(parts, LinkStyle.Render("Video"))
	}
	return strings.Join(parts, linkDivider)
}

// truncateName shortens a mission name to fit width display cells.
func truncateName(name string, width int) string {
	width = max(width, minNameWidth)
	return runewidth.Truncate(name, width, "…")
}

// wrapDetails wraps the details text to width and returns its lines.
func wrapDetails(text string, width int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	wrapWidth := max(width-detailsIndent, minNameWidth)
	wrapped := lipgloss.NewStyle().Width(wrapWidth).Render(text)
	return strings.Split(wrapped, "\n")
}

// revealedLines returns how many of total lines are drawn at frame.
func revealedLines(total, frame int) int {
	if total == 0 || frame <= 0 {
		return 0
	}
	if frame >= revealFrames {
		return total
	}
	return (total*frame + revealFrames - 1) / revealFrames
}

// renderRecord draws one record block.
func renderRecord(v recordView) string {
	r := v.record

	cursor := " "
	if v.selected {
		cursor = cursorMarker
	}

	patch := " "
	if r.HasPatch() {
		patch = patchMarker
	}

	name := truncateName(r.MissionName, v.width-titleReserve)
	if v.selected {
		name = SelectedStyle.Render(name)
	} else {
		name = lipgloss.NewStyle().Bold(true).Render(name)
	}

	title := fmt.Sprintf("%s %s %s %s", cursor, patch, name, renderBadge(r.Status()))
	if r.HasDetails() {
		indicator := indicatorClosed
		if v.expanded {
			indicator = indicatorOpen
		}
		title += "  " + MutedStyle.Render(indicator)
	}

	pad := strings.Repeat(" ", detailsIndent)
	lines := []string{
		title,
		pad + LabelStyle.Render("Launch Year: "+r.LaunchYear),
		pad + renderLinks(r.Links),
	}

	if r.HasDetails() {
		details := wrapDetails(r.DetailsText(), v.width)
		for _, line := range details[:revealedLines(len(details), v.revealed)] {
			lines = append(lines, DetailsStyle.Render(line))
		}
	}

	return strings.Join(lines, "\n")
}

// renderFooter returns the footer text for the current state. The loading
// footer uses the spinner when one is available.
func renderFooter(footer browse.Footer, loading *LoadingState) string {
	switch footer {
	case browse.FooterLoading:
		if loading != nil {
			return loading.View()
		}
		return FooterStyle.Render(footer.String())
	case browse.FooterNoMore, browse.FooterNoResults:
		return FooterStyle.Render(footer.String())
	case browse.FooterNone:
		return ""
	default:
		return ""
	}
}
