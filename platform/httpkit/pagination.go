package httpkit

// PageEnvelope is the standard paginated list response shape.
type PageEnvelope[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// NewPage builds a PageEnvelope, deriving TotalPages from total and pageSize.
func NewPage[T any](items []T, total, page, pageSize int) PageEnvelope[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return PageEnvelope[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
