package usecase

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// CartUsecase は /cart の業務ロジック。
type CartUsecase struct {
	carts repo.CartRepository
}

func NewCartUsecase(carts repo.CartRepository) *CartUsecase {
	return &CartUsecase{carts: carts}
}

// 追加する明細（追加時点の名前・価格・画像）
type CartItemInput struct {
	ProductID string
	Name      string
	Price     float64
	Quantity  int64
	Image     string
}

// GetCart はカート取得（無ければ空のカートを返す。作成はしない）。
func (u *CartUsecase) GetCart(ctx context.Context, userID string) (model.Cart, error) {
	if strings.TrimSpace(userID) == "" {
		return model.Cart{}, validationError("userId is required")
	}

	cart, err := u.carts.FindByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.EmptyCart(userID), nil
	}
	if err != nil {
		return model.Cart{}, internalError(err)
	}
	return cart, nil
}

// UpsertLineItem はカートに追加（同一商品は数量加算）。
// 負の数量は既存明細の数量を減らす。
func (u *CartUsecase) UpsertLineItem(ctx context.Context, userID string, in CartItemInput) (model.Cart, error) {
	if strings.TrimSpace(userID) == "" {
		return model.Cart{}, validationError("userId is required")
	}
	if strings.TrimSpace(in.ProductID) == "" {
		return model.Cart{}, validationError("productId is required")
	}
	if in.Quantity == 0 {
		return model.Cart{}, validationError("quantity must not be 0")
	}
	if in.Price < 0 {
		return model.Cart{}, validationError("price must not be negative")
	}

	cart, err := u.carts.UpsertItem(ctx, userID, model.CartItem{
		ProductID: in.ProductID,
		Name:      in.Name,
		Price:     in.Price,
		Quantity:  in.Quantity,
		Image:     in.Image,
	})
	if errors.Is(err, repo.ErrNotFound) {
		// 無い明細は減らせない
		return model.Cart{}, validationError("product is not in cart")
	}
	if err != nil {
		return model.Cart{}, internalError(err)
	}
	return cart, nil
}

// SetQuantity は明細の数量を指定値にする。
func (u *CartUsecase) SetQuantity(ctx context.Context, userID string, productID string, qty int64) (model.Cart, error) {
	if strings.TrimSpace(userID) == "" {
		return model.Cart{}, validationError("userId is required")
	}
	if strings.TrimSpace(productID) == "" {
		return model.Cart{}, validationError("productId is required")
	}
	if qty < 1 {
		return model.Cart{}, validationError("quantity must be at least 1")
	}

	cart, err := u.carts.SetItemQuantity(ctx, userID, productID, qty)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Cart{}, notFoundError("cart item not found")
	}
	if err != nil {
		return model.Cart{}, internalError(err)
	}
	return cart, nil
}

// RemoveLineItem は明細削除（カートに無い商品IDは何もしない）。
func (u *CartUsecase) RemoveLineItem(ctx context.Context, userID string, productID string) (model.Cart, error) {
	if strings.TrimSpace(userID) == "" {
		return model.Cart{}, validationError("userId is required")
	}
	if strings.TrimSpace(productID) == "" {
		return model.Cart{}, validationError("productId is required")
	}

	cart, err := u.carts.RemoveItem(ctx, userID, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Cart{}, notFoundError("cart not found")
	}
	if err != nil {
		return model.Cart{}, internalError(err)
	}
	return cart, nil
}
