package http

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/AngelsParadise/internal/domain"
	"github.com/utafrali/AngelsParadise/internal/service"
)

func catalogFixture() []domain.Product {
	return []domain.Product{
		{ID: "1", Name: "Pink Party Dress", Price: 30, Category: "Dresses", Sizes: []string{"S", "M"}},
		{ID: "2", Name: "Denim Jacket", Price: 60, Category: "Outerwear", Sizes: []string{"L"}},
		{ID: "3", Name: "Floral Dress", Price: 20, Category: "Dresses", Sizes: []string{"M"}},
		{ID: "4", Name: "Summer Dress", Price: 45, Category: "Dresses", Sizes: []string{"XS", "M"}},
	}
}

func TestCatalogQuery(t *testing.T) {
	env := newTestEnv(t)
	h := env.router(t)

	env.products.On("ListAll", mock.Anything).Return(catalogFixture(), nil)

	rec := doRequest(t, h, http.MethodGet,
		"/api/v1/catalog?category=Dresses&size=M&max_price=40&q=dress&page=1&page_size=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	result := decodeData[service.CatalogResult](t, rec)
	assert.Equal(t, 2, result.TotalMatched)
	assert.Equal(t, 2, result.TotalPages)
	assert.Equal(t, 1, result.Page)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "1", result.Items[0].ID)
	require.NotNil(t, result.PriceBounds)
	assert.Equal(t, domain.PriceRange{Min: 20, Max: 60}, *result.PriceBounds)
}

func TestCatalogQuery_EmptyCatalogReturnsFirstPage(t *testing.T) {
	env := newTestEnv(t)
	h := env.router(t)

	env.products.On("ListAll", mock.Anything).Return([]domain.Product{}, nil)

	rec := doRequest(t, h, http.MethodGet, "/api/v1/catalog?page=7", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	result := decodeData[service.CatalogResult](t, rec)
	assert.Equal(t, 1, result.Page)
	assert.Zero(t, result.TotalPages)
	assert.Empty(t, result.Items)
}

func TestCatalogQuery_CommaSeparatedSizes(t *testing.T) {
	env := newTestEnv(t)
	h := env.router(t)

	env.products.On("ListAll", mock.Anything).Return(catalogFixture(), nil)

	rec := doRequest(t, h, http.MethodGet, "/api/v1/catalog?size=L,XS", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	result := decodeData[service.CatalogResult](t, rec)
	ids := make([]string, 0, len(result.Items))
	for _, p := range result.Items {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"2", "4"}, ids)
}

func TestCatalogQuery_BadParams(t *testing.T) {
	for _, target := range []string{
		"/api/v1/catalog?min_price=cheap",
		"/api/v1/catalog?max_price=NaN",
		"/api/v1/catalog?page=two",
		"/api/v1/catalog?min_price=50&max_price=10",
	} {
		t.Run(target, func(t *testing.T) {
			env := newTestEnv(t)
			h := env.router(t)

			rec := doRequest(t, h, http.MethodGet, target, nil)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "INVALID_INPUT", decodeError(t, rec).Code)
			env.products.AssertNotCalled(t, "ListAll", mock.Anything)
		})
	}
}

func TestCatalogQuery_StoreFailure(t *testing.T) {
	env := newTestEnv(t)
	h := env.router(t)

	env.products.On("ListAll", mock.Anything).Return(nil, errors.New("timeout"))

	rec := doRequest(t, h, http.MethodGet, "/api/v1/catalog", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "failed to fetch catalog", decodeError(t, rec).Message)
}
