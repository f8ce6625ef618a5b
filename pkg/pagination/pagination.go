package pagination

// Meta describes the page window of a result set.
type Meta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// NewMeta computes pagination metadata: totalPages = ceil(total/limit),
// hasNext iff page < totalPages, hasPrev iff page > 1. A zero total yields
// totalPages 0 with both flags false, whatever the requested page was.
func NewMeta(page, limit, total int) Meta {
	if limit < 1 {
		limit = 1
	}

	totalPages := total / limit
	if total%limit > 0 {
		totalPages++
	}

	m := Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
	if total == 0 {
		return m
	}

	m.HasNext = page < totalPages
	m.HasPrev = page > 1
	return m
}
