package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type CartRepository interface {
	// カートが無ければErrNotFound
	FindByUserID(ctx context.Context, userID string) (model.Cart, error)
	// 同一商品は数量を加算し、名前・価格・画像は上書き。カートが無ければ作成。
	// 負の数量は既存明細への差分として扱い、1未満になった明細は削除する。
	UpsertItem(ctx context.Context, userID string, item model.CartItem) (model.Cart, error)
	// 明細の数量を指定値にする
	SetItemQuantity(ctx context.Context, userID string, productID string, qty int64) (model.Cart, error)
	// 商品IDに一致する明細を外す（無い商品IDはそのまま）
	RemoveItem(ctx context.Context, userID string, productID string) (model.Cart, error)
}
