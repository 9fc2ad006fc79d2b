package pagination

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Params is a 1-based page request.
type Params struct {
	Page     int
	PageSize int
}

// Normalize clamps the request into the accepted range.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// Offset is the number of rows skipped before this page.
func (p Params) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.PageSize
}

// Limit is the page size after normalization.
func (p Params) Limit() int {
	return p.Normalize().PageSize
}

// Page is the list envelope every paginated endpoint returns.
type Page[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	TotalPages int   `json:"totalPages"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
}

// NewPage wraps one page of items. Items is never nil so it encodes as [].
func NewPage[T any](items []T, total int64, p Params) Page[T] {
	n := p.Normalize()
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		TotalCount: total,
		TotalPages: TotalPages(total, n.PageSize),
		Page:       n.Page,
		PageSize:   n.PageSize,
	}
}

// TotalPages is ceil(total / pageSize).
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}

// Map converts the items of a page, keeping the envelope.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, len(p.Items))
	for i, it := range p.Items {
		out[i] = fn(it)
	}
	return Page[U]{Items: out, TotalCount: p.TotalCount, TotalPages: p.TotalPages, Page: p.Page, PageSize: p.PageSize}
}
