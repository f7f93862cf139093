package browse

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/rshade/launchdeck/internal/launch"
)

// Filter returns the records whose mission name contains query, ignoring
// case, in their original order. An empty query returns all records.
// The input slice is never modified.
func Filter(records []launch.Record, query string) []launch.Record {
	if query == "" {
		out := make([]launch.Record, len(records))
		copy(out, records)
		return out
	}

	fold := cases.Fold()
	needle := fold.String(query)

	var out []launch.Record
	for _, r := range records {
		if strings.Contains(fold.String(r.MissionName), needle) {
			out = append(out, r)
		}
	}
	return out
}
