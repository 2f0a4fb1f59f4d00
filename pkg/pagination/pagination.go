package pagination

const (
	DefaultPerPage = 15
	MaxPerPage     = 100
)

// Params holds page-based pagination input, bound from the query string
type Params struct {
	Page    int `form:"page" json:"page"`
	PerPage int `form:"per_page" json:"per_page"`
}

// Validate ensures pagination parameters are within valid ranges
func (p *Params) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
}

// Offset returns the index of the first item on the page
func (p *Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Meta describes the page returned to the client
type Meta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

// NewMeta builds page metadata for a result set of total items
func NewMeta(p Params, total int64) *Meta {
	p.Validate()
	totalPages := int((total + int64(p.PerPage) - 1) / int64(p.PerPage))

	return &Meta{
		CurrentPage: p.Page,
		PerPage:     p.PerPage,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     p.Page < totalPages,
		HasPrev:     p.Page > 1,
	}
}

// Slice returns the page of items selected by p. A page past the end is
// empty, never nil.
func Slice[T any](items []T, p Params) []T {
	p.Validate()
	start := p.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + p.PerPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
