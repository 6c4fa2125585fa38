package usecase

import (
	"context"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/stretchr/testify/mock"
)

// =====================
// Repository mocks
// =====================

type CartRepoMock struct{ mock.Mock }

func (m *CartRepoMock) FindByUserID(ctx context.Context, userID string) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) UpsertItem(ctx context.Context, userID string, item model.CartItem) (model.Cart, error) {
	args := m.Called(ctx, userID, item)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) SetItemQuantity(ctx context.Context, userID string, productID string, qty int64) (model.Cart, error) {
	args := m.Called(ctx, userID, productID, qty)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) RemoveItem(ctx context.Context, userID string, productID string) (model.Cart, error) {
	args := m.Called(ctx, userID, productID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

// PlaceFromCartはCartを渡すとbuildを実行して結果を返す
type OrderRepoMock struct {
	mock.Mock
	Cart *model.Cart
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID string) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	o, _ := args.Get(0).([]model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) FindByIdempotencyKey(ctx context.Context, userID string, key string) (model.Order, bool, error) {
	args := m.Called(ctx, userID, key)
	o, _ := args.Get(0).(model.Order)
	return o, args.Bool(1), args.Error(2)
}

func (m *OrderRepoMock) PlaceFromCart(ctx context.Context, userID string, build repo.BuildOrderFunc) (model.Order, error) {
	args := m.Called(ctx, userID)
	if err := args.Error(0); err != nil {
		return model.Order{}, err
	}
	o, err := build(*m.Cart)
	if err != nil {
		return model.Order{}, err
	}
	o.ID = "order-1"
	return o, nil
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	p, _ := args.Get(0).([]model.Product)
	return p, args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id string) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	out, _ := args.Get(0).(model.Product)
	return out, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, id string, patch repo.ProductPatch) (model.Product, error) {
	args := m.Called(ctx, id, patch)
	out, _ := args.Get(0).(model.Product)
	return out, args.Error(1)
}

func (m *ProductRepoMock) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type ProductCacheMock struct{ mock.Mock }

func (m *ProductCacheMock) Get(ctx context.Context, id string) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductCacheMock) Set(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductCacheMock) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// =====================
// Helper
// =====================

func statusOf(err error) int {
	he, ok := AsHTTPError(err)
	if !ok {
		return 0
	}
	return he.Status
}
