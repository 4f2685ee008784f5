package dto

const (
	DefaultValuePage  = 1
	DefaultValueLimit = 20
)

type QueryParams struct {
	Page  int `json:"page"  validate:"omitempty,gte=0"`
	Limit int `json:"limit" validate:"omitempty,gte=0"`
}

// WithDefaults fills an unset page or limit.
func (q QueryParams) WithDefaults() QueryParams {
	if q.Page <= 0 {
		q.Page = DefaultValuePage
	}

	if q.Limit <= 0 {
		q.Limit = DefaultValueLimit
	}

	return q
}

// Paginate returns the requested page of items. A zero QueryParams returns every item.
func Paginate[T any](items []T, q QueryParams) []T {
	if q.Page <= 0 && q.Limit <= 0 {
		return items
	}

	q = q.WithDefaults()

	start := (q.Page - 1) * q.Limit
	if start >= len(items) {
		return []T{}
	}

	end := min(start+q.Limit, len(items))

	return items[start:end]
}
