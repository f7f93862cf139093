// Package launch defines the launch record served by the SpaceX v3 API and the
// small amount of derived presentation state every view needs (status badge,
// detail availability, link selection).
package launch

// Status is the badge shown next to a mission name.
type Status int

const (
	// StatusUpcoming marks a launch that has not flown yet.
	StatusUpcoming Status = iota
	// StatusSuccess marks a flown launch reported as successful.
	StatusSuccess
	// StatusFailed marks a flown launch that was not reported as successful.
	StatusFailed
)

// String returns the badge label.
func (s Status) String() string {
	switch s {
	case StatusUpcoming:
		return "Upcoming"
	case StatusSuccess:
		return "Success"
	case StatusFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Links holds the optional URLs attached to a launch.
type Links struct {
	MissionPatchSmall string `json:"mission_patch_small,omitempty"`
	ArticleLink       string `json:"article_link,omitempty"`
	VideoLink         string `json:"video_link,omitempty"`
}

// Record is a single launch as served by the remote API.
// Values are treated as immutable once decoded.
type Record struct {
	ID            string  `json:"_id"`
	FlightNumber  int     `json:"flight_number"`
	MissionName   string  `json:"mission_name"`
	LaunchYear    string  `json:"launch_year"`
	LaunchDateUTC string  `json:"launch_date_utc,omitempty"`
	Upcoming      bool    `json:"upcoming"`
	LaunchSuccess *bool   `json:"launch_success"`
	Details       *string `json:"details"`
	Links         Links   `json:"links"`
}

// Status derives the badge: upcoming wins, then launch success, else failed.
// A null launch_success on a flown launch counts as failed.
func (r Record) Status() Status {
	if r.Upcoming {
		return StatusUpcoming
	}
	if r.LaunchSuccess != nil && *r.LaunchSuccess {
		return StatusSuccess
	}
	return StatusFailed
}

// HasDetails reports whether the record carries a non-empty details string.
func (r Record) HasDetails() bool {
	return r.Details != nil && *r.Details != ""
}

// DetailsText returns the details string or "" when absent.
func (r Record) DetailsText() string {
	if r.Details == nil {
		return ""
	}
	return *r.Details
}

// HasPatch reports whether a mission patch image is available.
func (r Record) HasPatch() bool {
	return r.Links.MissionPatchSmall != ""
}

// PrimaryLink returns the article link, falling back to the video link.
func (r Record) PrimaryLink() string {
	if r.Links.ArticleLink != "" {
		return r.Links.ArticleLink
	}
	return r.Links.VideoLink
}
