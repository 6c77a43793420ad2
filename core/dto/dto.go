package dto

// Pagination wraps a page of response DTOs.
type Pagination[T any] struct {
	Items      []T `json:"items"`
	TotalItems int `json:"total_items"`
	PageNumber int `json:"page_number"`
	PageSize   int `json:"page_size"`
}

func ToPagination[T any](items []T, totalItems, pageNumber, pageSize int) *Pagination[T] {
	return &Pagination[T]{
		Items:      items,
		TotalItems: totalItems,
		PageNumber: pageNumber,
		PageSize:   pageSize,
	}
}
