package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errMiss = errors.New("miss")

func ptr[T any](v T) *T { return &v }

func TestProductUsecase_ListProducts_DefaultsAndPagination(t *testing.T) {
	ctx := context.Background()
	products := new(ProductRepoMock)
	products.On("List", ctx, repo.ProductListQuery{
		Page: 3, Limit: 5, Name: "abc", Sort: repo.ProductSortPrice, Desc: false,
	}).Return([]model.Product{{ID: "11"}, {ID: "12"}}, int64(12), nil)

	out, err := NewProductUsecase(products, new(ProductCacheMock)).ListProducts(ctx, ListProductsInput{
		Page: 3, Limit: 5, Name: " abc ",
	})
	require.NoError(t, err)

	assert.True(t, out.Success)
	assert.Len(t, out.Data, 2)
	assert.Equal(t, Pagination{Page: 3, Limit: 5, Total: 12, TotalPages: 3}, out.Pagination)
}

func TestProductUsecase_ListProducts_SortDesc(t *testing.T) {
	ctx := context.Background()
	products := new(ProductRepoMock)
	products.On("List", ctx, repo.ProductListQuery{
		Page: 1, Limit: 10, Sort: repo.ProductSortCreatedAt, Desc: true,
	}).Return([]model.Product{}, int64(0), nil)

	out, err := NewProductUsecase(products, new(ProductCacheMock)).ListProducts(ctx, ListProductsInput{
		Page: 1, Limit: 10, Sort: "createdAt", Order: "DESC",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), out.Pagination.TotalPages)
	products.AssertExpectations(t)
}

func TestProductUsecase_ListProducts_Validation(t *testing.T) {
	cases := []struct {
		name string
		in   ListProductsInput
	}{
		{"page 0", ListProductsInput{Page: 0, Limit: 10}},
		{"limit 0", ListProductsInput{Page: 1, Limit: 0}},
		{"limit 101", ListProductsInput{Page: 1, Limit: 101}},
		{"unknown sort", ListProductsInput{Page: 1, Limit: 10, Sort: "stock"}},
		{"unknown order", ListProductsInput{Page: 1, Limit: 10, Order: "up"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			products := new(ProductRepoMock)
			_, err := NewProductUsecase(products, new(ProductCacheMock)).ListProducts(context.Background(), tc.in)

			assert.Equal(t, http.StatusBadRequest, statusOf(err))
			products.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
		})
	}
}

func TestProductUsecase_GetProduct_CacheHit(t *testing.T) {
	ctx := context.Background()
	products := new(ProductRepoMock)
	cache := new(ProductCacheMock)
	cache.On("Get", ctx, "p1").Return(model.Product{ID: "p1", Name: "cached"}, nil)

	p, err := NewProductUsecase(products, cache).GetProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "cached", p.Name)
	products.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestProductUsecase_GetProduct_CacheMissFillsCache(t *testing.T) {
	ctx := context.Background()
	p1 := model.Product{ID: "p1", Name: "Pen"}

	products := new(ProductRepoMock)
	products.On("FindByID", ctx, "p1").Return(p1, nil)
	cache := new(ProductCacheMock)
	cache.On("Get", ctx, "p1").Return(nil, errMiss)
	cache.On("Set", ctx, p1).Return(nil)

	p, err := NewProductUsecase(products, cache).GetProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, p1, p)
	cache.AssertExpectations(t)
}

func TestProductUsecase_GetProduct_Errors(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		repoErr error
		status  int
	}{
		{repo.ErrInvalidID, http.StatusBadRequest},
		{repo.ErrNotFound, http.StatusNotFound},
		{errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		products := new(ProductRepoMock)
		products.On("FindByID", ctx, "x").Return(nil, tc.repoErr)
		cache := new(ProductCacheMock)
		cache.On("Get", ctx, "x").Return(nil, errMiss)

		_, err := NewProductUsecase(products, cache).GetProduct(ctx, "x")
		assert.Equal(t, tc.status, statusOf(err), tc.repoErr.Error())
		cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
	}
}

func TestProductUsecase_CreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		products := new(ProductRepoMock)
		products.On("Create", ctx, model.Product{Name: "Pen", Price: 1.5, Image: "pen.png"}).
			Return(model.Product{ID: "p1", Name: "Pen", Price: 1.5, Image: "pen.png"}, nil)

		p, err := NewProductUsecase(products, new(ProductCacheMock)).CreateProduct(ctx, ProductInput{
			Name: ptr(" Pen "), Price: ptr(1.5), Image: ptr("pen.png"),
		})
		require.NoError(t, err)
		assert.Equal(t, "p1", p.ID)
	})

	t.Run("name required", func(t *testing.T) {
		_, err := NewProductUsecase(new(ProductRepoMock), new(ProductCacheMock)).CreateProduct(ctx, ProductInput{Price: ptr(1.0)})
		assert.Equal(t, http.StatusBadRequest, statusOf(err))
	})

	t.Run("negative price", func(t *testing.T) {
		_, err := NewProductUsecase(new(ProductRepoMock), new(ProductCacheMock)).CreateProduct(ctx, ProductInput{
			Name: ptr("Pen"), Price: ptr(-0.01),
		})
		assert.Equal(t, http.StatusBadRequest, statusOf(err))
	})
}

func TestProductUsecase_UpdateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("only given fields and cache evicted", func(t *testing.T) {
		products := new(ProductRepoMock)
		products.On("Update", ctx, "p1", repo.ProductPatch{Price: ptr(3.0)}).
			Return(model.Product{ID: "p1", Name: "Pen", Price: 3}, nil)
		cache := new(ProductCacheMock)
		cache.On("Delete", ctx, "p1").Return(nil)

		p, err := NewProductUsecase(products, cache).UpdateProduct(ctx, "p1", ProductInput{Price: ptr(3.0)})
		require.NoError(t, err)
		assert.Equal(t, 3.0, p.Price)
		cache.AssertExpectations(t)
	})

	t.Run("no data provided", func(t *testing.T) {
		_, err := NewProductUsecase(new(ProductRepoMock), new(ProductCacheMock)).UpdateProduct(ctx, "p1", ProductInput{})

		he, ok := AsHTTPError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, he.Status)
		assert.Equal(t, "no data provided", he.Message)
	})

	t.Run("not found", func(t *testing.T) {
		products := new(ProductRepoMock)
		products.On("Update", ctx, "p9", mock.Anything).Return(nil, repo.ErrNotFound)

		_, err := NewProductUsecase(products, new(ProductCacheMock)).UpdateProduct(ctx, "p9", ProductInput{Name: ptr("x")})
		assert.Equal(t, http.StatusNotFound, statusOf(err))
	})

	t.Run("cache error does not fail update", func(t *testing.T) {
		products := new(ProductRepoMock)
		products.On("Update", ctx, "p1", mock.Anything).Return(model.Product{ID: "p1"}, nil)
		cache := new(ProductCacheMock)
		cache.On("Delete", ctx, "p1").Return(errors.New("redis down"))

		_, err := NewProductUsecase(products, cache).UpdateProduct(ctx, "p1", ProductInput{Image: ptr("new.png")})
		assert.NoError(t, err)
	})
}

func TestProductUsecase_DeleteProduct(t *testing.T) {
	ctx := context.Background()

	products := new(ProductRepoMock)
	products.On("Delete", ctx, "p1").Return(nil)
	products.On("Delete", ctx, "p2").Return(repo.ErrNotFound)
	cache := new(ProductCacheMock)
	cache.On("Delete", ctx, "p1").Return(nil)

	uc := NewProductUsecase(products, cache)

	require.NoError(t, uc.DeleteProduct(ctx, "p1"))
	assert.Equal(t, http.StatusNotFound, statusOf(uc.DeleteProduct(ctx, "p2")))
	cache.AssertNotCalled(t, "Delete", ctx, "p2")
}
