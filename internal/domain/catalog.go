package domain

import (
	"slices"
	"strings"
)

// AllCategories is the category selection that places no restriction.
const AllCategories = "All"

// Catalog page sizes.
const (
	DefaultPageSize = 6
	MaxPageSize     = 100
)

// PriceRange is an inclusive price interval.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether price lies within the range, bounds included.
func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && price <= r.Max
}

// FilterState is the set of catalog predicates held by the caller. The zero
// value matches every product.
type FilterState struct {
	Category string      `json:"category"`
	Sizes    []string    `json:"sizes"`
	Price    *PriceRange `json:"price,omitempty"`
	Search   string      `json:"search"`
}

// Matches reports whether p satisfies every active predicate.
func (f FilterState) Matches(p *Product) bool {
	if f.Category != "" && f.Category != AllCategories && p.Category != f.Category {
		return false
	}
	if len(f.Sizes) > 0 && !p.HasAnySize(f.Sizes) {
		return false
	}
	if f.Price != nil && !f.Price.Contains(p.Price) {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Search)) {
		return false
	}
	return true
}

// CatalogPage is one page of a filtered catalog.
type CatalogPage struct {
	Items        []Product `json:"items"`
	TotalMatched int       `json:"totalMatched"`
	TotalPages   int       `json:"totalPages"`
	Page         int       `json:"page"`
	PageSize     int       `json:"pageSize"`
}

// QueryCatalog filters products and returns the requested page. Items keep
// their input order. A page below 1 is treated as 1 and a page past the end is
// clamped to the last page, or to 1 when nothing matches. pageSize outside 1..MaxPageSize falls back to
// DefaultPageSize or MaxPageSize.
func QueryCatalog(products []Product, filter FilterState, page, pageSize int) CatalogPage {
	switch {
	case pageSize < 1:
		pageSize = DefaultPageSize
	case pageSize > MaxPageSize:
		pageSize = MaxPageSize
	}

	matched := make([]Product, 0, len(products))
	for i := range products {
		if filter.Matches(&products[i]) {
			matched = append(matched, products[i])
		}
	}

	totalPages := (len(matched) + pageSize - 1) / pageSize
	if page < 1 || totalPages == 0 {
		page = 1
	}
	if page > totalPages && totalPages > 0 {
		page = totalPages
	}

	start := min((page-1)*pageSize, len(matched))
	end := min(start+pageSize, len(matched))

	return CatalogPage{
		Items:        matched[start:end],
		TotalMatched: len(matched),
		TotalPages:   totalPages,
		Page:         page,
		PageSize:     pageSize,
	}
}

// PriceBounds returns the lowest and highest price in products. ok is false
// for an empty list.
func PriceBounds(products []Product) (bounds PriceRange, ok bool) {
	if len(products) == 0 {
		return PriceRange{}, false
	}
	bounds = PriceRange{Min: products[0].Price, Max: products[0].Price}
	for _, p := range products[1:] {
		bounds.Min = min(bounds.Min, p.Price)
		bounds.Max = max(bounds.Max, p.Price)
	}
	return bounds, true
}

// CatalogView holds a browsing session's filter state and current page.
// Every filter change sends the view back to page 1.
type CatalogView struct {
	filter   FilterState
	page     int
	pageSize int
}

// NewCatalogView returns a view with no active filters on page 1.
func NewCatalogView(pageSize int) *CatalogView {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &CatalogView{filter: FilterState{Category: AllCategories}, page: 1, pageSize: pageSize}
}

// Filter returns a copy of the current filter state.
func (v *CatalogView) Filter() FilterState {
	f := v.filter
	f.Sizes = slices.Clone(v.filter.Sizes)
	return f
}

// Page returns the requested page number.
func (v *CatalogView) Page() int { return v.page }

// SetPage moves to page n. Values below 1 are treated as 1.
func (v *CatalogView) SetPage(n int) {
	v.page = max(n, 1)
}

// SetCategory selects a category, or AllCategories to clear it.
func (v *CatalogView) SetCategory(category string) {
	if category == "" {
		category = AllCategories
	}
	v.filter.Category = category
	v.page = 1
}

// ToggleSize adds size to the selection, or removes it when already selected.
func (v *CatalogView) ToggleSize(size string) {
	if i := slices.Index(v.filter.Sizes, size); i >= 0 {
		v.filter.Sizes = slices.Delete(v.filter.Sizes, i, i+1)
	} else {
		v.filter.Sizes = append(v.filter.Sizes, size)
	}
	v.page = 1
}

// SetPriceRange restricts the price interval.
func (v *CatalogView) SetPriceRange(r PriceRange) {
	v.filter.Price = &r
	v.page = 1
}

// SetSearch sets the name search text.
func (v *CatalogView) SetSearch(q string) {
	v.filter.Search = q
	v.page = 1
}

// Reset clears every filter. The price range goes back to bounds when given.
func (v *CatalogView) Reset(bounds *PriceRange) {
	v.filter = FilterState{Category: AllCategories}
	if bounds != nil {
		b := *bounds
		v.filter.Price = &b
	}
	v.page = 1
}

// Query applies the view to a product snapshot.
func (v *CatalogView) Query(products []Product) CatalogPage {
	return QueryCatalog(products, v.filter, v.page, v.pageSize)
}
