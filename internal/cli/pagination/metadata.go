package pagination

// Meta describes where a page sits in the full result set.
type Meta struct {
	CurrentPage int  `json:"current_page"`
	PageSize    int  `json:"page_size"`
	TotalPages  int  `json:"total_pages"`
	TotalItems  int  `json:"total_items"`
	HasPrevious bool `json:"has_previous"`
	HasNext     bool `json:"has_next"`
}

// NewMeta builds metadata for a request of p over total items. Offset-based
// requests are reported as the page that contains the offset. Without a
// limit the whole result is one page.
func NewMeta(p Params, total int) Meta {
	pageSize := p.PageSize
	if pageSize == 0 {
		pageSize = p.Limit
	}
	if pageSize == 0 {
		pageSize = total
	}

	current := p.Page
	if current == 0 && pageSize > 0 {
		current = p.Offset/pageSize + 1
	}
	if current == 0 {
		current = 1
	}

	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	if p.IsPageBased() && totalPages > 0 {
		// Apply caps page requests past the end to the last page.
		current = min(current, totalPages)
	}

	return Meta{
		CurrentPage: current,
		PageSize:    pageSize,
		TotalPages:  totalPages,
		TotalItems:  total,
		HasPrevious: current > 1,
		HasNext:     current < totalPages,
	}
}
