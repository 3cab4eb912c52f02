package models

// PaginatedResponse is one page of a listing. Data is never null in JSON.
type PaginatedResponse[T any] struct {
	Data     []T   `json:"data"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}

func NewPaginatedResponse[T any](data []T, total int64, page, pageSize int) PaginatedResponse[T] {
	if data == nil {
		data = []T{}
	}

	return PaginatedResponse[T]{Data: data, Total: total, Page: page, PageSize: pageSize}
}
