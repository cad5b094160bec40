package pagination

import "math"

const (
	// DefaultLimit is the page size used when the client sends none.
	DefaultLimit = 25
	// MaxLimit caps the page size a client may request.
	MaxLimit = 100
)

// Params represents the list window requested by the client.
// Limit and offset always travel together so a page change updates
// both atomically.
type Params struct {
	Limit  int `form:"limit" json:"limit"`
	Offset int `form:"offset" json:"offset"`
}

// Default returns the window used by the order list on first load.
func Default() *Params {
	return &Params{
		Limit:  DefaultLimit,
		Offset: 0,
	}
}

// Validate ensures the window parameters are within valid ranges
func (p *Params) Validate() {
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// Window describes where a limit/offset slice falls within a collection
// of Count records. It is what a pager needs to render page controls.
type Window struct {
	Count       int64 `json:"count"`
	Limit       int   `json:"limit"`
	Offset      int   `json:"offset"`
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
	NextOffset  int   `json:"next_offset"`
	PrevOffset  int   `json:"prev_offset"`
}

// NewWindow computes page boundaries from count, limit and offset.
func NewWindow(count int64, limit, offset int) *Window {
	if limit < 1 {
		limit = DefaultLimit
	}
	if offset < 0 {
		offset = 0
	}

	totalPages := int(math.Ceil(float64(count) / float64(limit)))
	currentPage := offset/limit + 1

	prevOffset := offset - limit
	if prevOffset < 0 {
		prevOffset = 0
	}

	return &Window{
		Count:       count,
		Limit:       limit,
		Offset:      offset,
		CurrentPage: currentPage,
		TotalPages:  totalPages,
		HasNext:     int64(offset+limit) < count,
		HasPrev:     offset > 0,
		NextOffset:  offset + limit,
		PrevOffset:  prevOffset,
	}
}
