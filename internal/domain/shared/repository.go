package shared

// Paging bounds applied by Filter.Normalize
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Filter represents query filter options for list endpoints
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: DefaultPageSize,
		OrderBy:  "id",
		OrderDir: "asc",
	}
}

// Normalize fills zero values from DefaultFilter and caps PageSize.
func (f Filter) Normalize() Filter {
	def := DefaultFilter()
	if f.Page < 1 {
		f.Page = def.Page
	}
	if f.PageSize < 1 {
		f.PageSize = def.PageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
	if f.OrderBy == "" {
		f.OrderBy = def.OrderBy
	}
	if f.OrderDir == "" {
		f.OrderDir = def.OrderDir
	}
	return f
}

// Offset is the number of rows skipped before the current page
func (f Filter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// Paginated represents a paginated result
type Paginated[T any] struct {
	Items           []T    `json:"items"`
	Total           int64  `json:"total"`
	Page            int    `json:"page"`
	PageSize        int    `json:"page_size"`
	TotalPages      int    `json:"total_pages"`
	HasNextPage     bool   `json:"has_next_page"`
	HasPreviousPage bool   `json:"has_previous_page"`
	Search          string `json:"search,omitempty"`
}

// NewPaginated creates a new paginated result
func NewPaginated[T any](items []T, total int64, page, pageSize int) Paginated[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if pageSize > 0 {
		totalPages = int(total) / pageSize
		if int(total)%pageSize > 0 {
			totalPages++
		}
	}
	return Paginated[T]{
		Items:           items,
		Total:           total,
		Page:            page,
		PageSize:        pageSize,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}
