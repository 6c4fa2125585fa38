package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// 確保したカートから注文を組み立てる
type BuildOrderFunc func(cart model.Cart) (model.Order, error)

type OrderRepository interface {
	// userIDが空なら全件。作成順。
	ListByUserID(ctx context.Context, userID string) ([]model.Order, error)

	//検索（同じキーなら同じ結果を返す）
	FindByIdempotencyKey(ctx context.Context, userID string, key string) (model.Order, bool, error)

	// カートの取得・注文作成・カート削除を1単位で行う。
	// 空 or 無いカートはErrCartEmpty、冪等キーの競合はErrDuplicate。
	PlaceFromCart(ctx context.Context, userID string, build BuildOrderFunc) (model.Order, error)
}
