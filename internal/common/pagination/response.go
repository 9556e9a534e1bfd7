package pagination

// Metadata describes where a page sits in the full collection.
type Metadata struct {
	Total      int64 `json:"total"`       // Items across all pages
	Page       int   `json:"page"`        // Current page (1-based)
	Limit      int   `json:"limit"`       // Items per page
	TotalPages int   `json:"total_pages"` // ceil(total / limit), at least 1
}

// Response is the JSON envelope for one page of items.
type Response[T any] struct {
	Data       []T      `json:"data"`
	Pagination Metadata `json:"pagination"`
}

// NewResponse wraps a page of items with its metadata.
func NewResponse[T any](data []T, metadata Metadata) Response[T] {
	return Response[T]{
		Data:       data,
		Pagination: metadata,
	}
}
