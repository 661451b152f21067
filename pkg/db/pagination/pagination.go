package pagination

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Pagination carries page-number pagination parameters bound from the query
// string.
type Pagination struct {
	Page     int `form:"page,default=1"`
	PageSize int `form:"page_size,default=20" validate:"gte=1,lte=100"`
}

// PageInfo summarizes a page of results for the caller.
type PageInfo struct {
	Page        int   `json:"page"`
	PageSize    int   `json:"page_size"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasPrevious bool  `json:"has_previous"`
	HasNext     bool  `json:"has_next"`
}

// Normalize clamps the parameters into their allowed ranges.
func (p Pagination) Normalize() Pagination {
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

// Offset returns the row offset for the current page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// TotalPages returns the page count for total rows, never less than one.
func TotalPages(total int64, pageSize int) int {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	pages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if pages < 1 {
		pages = 1
	}
	return pages
}

// BuildPageInfo derives the page summary for a result set.
func BuildPageInfo(p Pagination, total int64) PageInfo {
	p = p.Normalize()
	totalPages := TotalPages(total, p.PageSize)
	return PageInfo{
		Page:        p.Page,
		PageSize:    p.PageSize,
		Total:       total,
		TotalPages:  totalPages,
		HasPrevious: p.Page > 1,
		HasNext:     p.Page < totalPages,
	}
}
