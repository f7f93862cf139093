package pagination

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/rshade/launchdeck/internal/launch"
)

// Sort fields accepted by --sort.
const (
	SortByDate   = "date"
	SortByName   = "name"
	SortByYear   = "year"
	SortByFlight = "flight"
)

// LaunchSorter orders launch records by a named field.
type LaunchSorter struct {
	validFields map[string]bool
	fold        cases.Caser
}

// NewLaunchSorter creates a sorter for the supported fields.
func NewLaunchSorter() *LaunchSorter {
	return &LaunchSorter{
		validFields: map[string]bool{
			SortByDate:   true,
			SortByName:   true,
			SortByYear:   true,
			SortByFlight: true,
		},
		fold: cases.Fold(),
	}
}

// IsValidField checks if the field is valid for sorting.
func (s *LaunchSorter) IsValidField(field string) bool {
	return s.validFields[field]
}

// ValidFields returns the sort fields in a stable order.
func (s *LaunchSorter) ValidFields() []string {
	fields := make([]string, 0, len(s.validFields))
	for field := range s.validFields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Sort returns a sorted copy of records. An empty field keeps the input
// order; an unknown field is an error.
func (s *LaunchSorter) Sort(records []launch.Record, field, order string) ([]launch.Record, error) {
	sorted := make([]launch.Record, len(records))
	copy(sorted, records)

	if field == "" {
		return sorted, nil
	}
	if !s.IsValidField(field) {
		return nil, fmt.Errorf("%w: %q (valid: %s)",
			ErrInvalidSortField, field, strings.Join(s.ValidFields(), ", "))
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		// Swapping keeps the sort stable in both directions.
		if order == SortOrderDesc {
			i, j = j, i
		}
		return s.less(sorted[i], sorted[j], field)
	})

	return sorted, nil
}

func (s *LaunchSorter) less(a, b launch.Record, field string) bool {
	switch field {
	case SortByDate:
		// RFC 3339 UTC timestamps order lexically.
		return a.LaunchDateUTC < b.LaunchDateUTC
	case SortByName:
		return s.fold.String(a.MissionName) < s.fold.String(b.MissionName)
	case SortByYear:
		return yearOf(a) < yearOf(b)
	case SortByFlight:
		return a.FlightNumber < b.FlightNumber
	default:
		return false
	}
}

// yearOf parses the launch year; unparseable years sort first.
func yearOf(r launch.Record) int {
	y, err := strconv.Atoi(strings.TrimSpace(r.LaunchYear))
	if err != nil {
		return 0
	}
	return y
}
