package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

const (
	maxIdempotencyKeyLen = 255

	// カートを先に取られたとき、勝った側の注文が見えるまで探し直す回数
	keyLookupAttempts = 5
)

type OrderUsecase struct {
	orders       repo.OrderRepository
	now          func() time.Time
	keyRetryWait time.Duration
}

func NewOrderUsecase(orders repo.OrderRepository) *OrderUsecase {
	return &OrderUsecase{
		orders:       orders,
		now:          func() time.Time { return time.Now().UTC() },
		keyRetryWait: 20 * time.Millisecond,
	}
}

// Idempotency-Keyは任意
type PlaceOrderInput struct {
	UserID         string
	IdempotencyKey string
}

// PlaceOrder はカートから注文を作り、カートを削除する。
// 同じ冪等キーで呼ばれたら作成済みの注文を返す。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, in PlaceOrderInput) (model.Order, error) {
	if strings.TrimSpace(in.UserID) == "" {
		return model.Order{}, validationError("userId is required")
	}
	key := strings.TrimSpace(in.IdempotencyKey)
	if len(key) > maxIdempotencyKeyLen {
		return model.Order{}, validationError("Idempotency-Key is too long")
	}

	if key != "" {
		existing, found, err := u.orders.FindByIdempotencyKey(ctx, in.UserID, key)
		if err != nil {
			return model.Order{}, internalError(err)
		}
		if found {
			return existing, nil
		}
	}

	order, err := u.orders.PlaceFromCart(ctx, in.UserID, func(cart model.Cart) (model.Order, error) {
		return u.buildOrder(cart, key), nil
	})
	if err == nil {
		return order, nil
	}

	// 同じキーで先に作られていた
	if key != "" && (errors.Is(err, repo.ErrDuplicate) || errors.Is(err, repo.ErrCartEmpty)) {
		attempts := 1
		if errors.Is(err, repo.ErrCartEmpty) {
			// 勝った側の注文がまだ書き込まれていないことがある
			attempts = keyLookupAttempts
		}
		existing, found, findErr := u.findByKey(ctx, in.UserID, key, attempts)
		if findErr != nil {
			return model.Order{}, internalError(findErr)
		}
		if found {
			return existing, nil
		}
	}

	if errors.Is(err, repo.ErrCartEmpty) {
		return model.Order{}, validationError("cart is empty")
	}
	return model.Order{}, internalError(err)
}

func (u *OrderUsecase) findByKey(ctx context.Context, userID, key string, attempts int) (model.Order, bool, error) {
	for i := 1; ; i++ {
		order, found, err := u.orders.FindByIdempotencyKey(ctx, userID, key)
		if err != nil || found || i >= attempts {
			return order, found, err
		}

		select {
		case <-ctx.Done():
			return model.Order{}, false, ctx.Err()
		case <-time.After(u.keyRetryWait):
		}
	}
}

// ListOrders はユーザーの注文一覧（userIDが空なら全件）。
func (u *OrderUsecase) ListOrders(ctx context.Context, userID string) ([]model.Order, error) {
	orders, err := u.orders.ListByUserID(ctx, strings.TrimSpace(userID))
	if err != nil {
		return nil, internalError(err)
	}
	return orders, nil
}

// 明細はコピーして持つ（カート側の変更に影響されない）
func (u *OrderUsecase) buildOrder(cart model.Cart, key string) model.Order {
	items := make([]model.OrderItem, 0, len(cart.Items))
	var total float64
	for _, it := range cart.Items {
		items = append(items, model.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
			Image:     it.Image,
		})
		total += it.Price * float64(it.Quantity)
	}

	order := model.Order{
		UserID:      cart.UserID,
		Items:       items,
		TotalAmount: total,
		Status:      model.OrderStatusPaid,
		CreatedAt:   u.now(),
	}
	if key != "" {
		order.IdempotencyKey = &key
	}
	return order
}
