package dto

import (
	"cmp"
	"lendahand/internal/domains/catalog/model"
	"slices"
	"strings"
)

const (
	SortByPriceAsc  = "price_asc"
	SortByPriceDesc = "price_desc"
	SortByRating    = "rating"

	CategoryAll = "All"
)

type ServiceFilter struct {
	Category string `json:"category" validate:"omitempty,max=64"`
	Query    string `json:"query"    validate:"omitempty,max=128"`
	SortBy   string `json:"sort_by"  validate:"omitempty,oneof=price_asc price_desc rating"`
}

// Apply filters by category and by a case-insensitive match on title or category,
// then sorts. The input slice is not modified.
func (f ServiceFilter) Apply(services []model.Service) []model.Service {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	res := make([]model.Service, 0, len(services))

	for _, svc := range services {
		if f.Category != "" && f.Category != CategoryAll && svc.Category != f.Category {
			continue
		}

		if query != "" &&
			!strings.Contains(strings.ToLower(svc.Title), query) &&
			!strings.Contains(strings.ToLower(svc.Category), query) {
			continue
		}

		res = append(res, svc)
	}

	switch f.SortBy {
	case SortByPriceAsc:
		slices.SortStableFunc(res, func(a, b model.Service) int { return cmp.Compare(a.Price, b.Price) })
	case SortByPriceDesc:
		slices.SortStableFunc(res, func(a, b model.Service) int { return cmp.Compare(b.Price, a.Price) })
	case SortByRating:
		slices.SortStableFunc(res, func(a, b model.Service) int { return cmp.Compare(b.Rating, a.Rating) })
	}

	return res
}

type UpdatePriceRequest struct {
	ServiceID string  `json:"service_id" validate:"required"`
	Price     float64 `json:"price"      validate:"gt=0"`
}
