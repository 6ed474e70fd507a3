package dto

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ListQuery is the limit/offset pair accepted by every list endpoint.
type ListQuery struct {
	Limit  int `form:"limit" binding:"omitempty,min=0"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}

// Normalize applies the default page size and clamps oversized requests.
func (q ListQuery) Normalize() ListQuery {
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	return q
}

type PaginationMeta struct {
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

// Page is a list response with its pagination metadata.
type Page[T any] struct {
	Items []T            `json:"items"`
	Meta  PaginationMeta `json:"pagination"`
}

func NewPage[T any](items []T, total int64, q ListQuery) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items: items,
		Meta: PaginationMeta{
			Total:  total,
			Limit:  q.Limit,
			Offset: q.Offset,
		},
	}
}
