package pagination

// Pagination carries page-number pagination parameters as supplied by the
// caller. Page is 1-based.
type Pagination struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

// PageInfo describes the position of a page within the filtered result set.
type PageInfo struct {
	Page         int   `json:"page"`
	PageSize     int   `json:"page_size"`
	TotalRecords int64 `json:"total_records"`
	TotalPages   int   `json:"total_pages"`
	HasNext      bool  `json:"has_next"`
	HasPrevious  bool  `json:"has_previous"`
}

// Normalize clamps the pagination parameters to sane bounds.
func (p Pagination) Normalize(defaultSize, maxSize int) Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = defaultSize
	}
	if maxSize > 0 && p.PageSize > maxSize {
		p.PageSize = maxSize
	}
	return p
}

// Offset returns the row offset for the current page.
func (p Pagination) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// BuildPageInfo derives page metadata from the total record count.
func BuildPageInfo(p Pagination, total int64) PageInfo {
	totalPages := 0
	if p.PageSize > 0 {
		totalPages = int((total + int64(p.PageSize) - 1) / int64(p.PageSize))
	}

	return PageInfo{
		Page:         p.Page,
		PageSize:     p.PageSize,
		TotalRecords: total,
		TotalPages:   totalPages,
		HasNext:      p.Page < totalPages,
		HasPrevious:  p.Page > 1 && totalPages > 0,
	}
}
