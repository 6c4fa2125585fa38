package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) ListByUserID(ctx context.Context, userID string) ([]model.Order, error) {
	q := r.db.WithContext(ctx).Preload("Items", orderItemsByPosition)
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}

	orders := []model.Order{}
	if err := q.Order("created_at asc").Order("id asc").Find(&orders).Error; err != nil {
		return []model.Order{}, err
	}
	return orders, nil
}

func (r *OrderGormRepository) FindByIdempotencyKey(ctx context.Context, userID string, key string) (model.Order, bool, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Preload("Items", orderItemsByPosition).
		Where("user_id = ? AND idempotency_key = ?", userID, key).
		First(&o).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, false, nil
	}
	if err != nil {
		return model.Order{}, false, err
	}
	return o, true, nil
}

// 注文処理はトランザクション（カート行ロック → 注文作成 → カート削除）
func (r *OrderGormRepository) PlaceFromCart(ctx context.Context, userID string, build repo.BuildOrderFunc) (model.Order, error) {
	var created model.Order

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := findCart(tx, userID, true)
		if errors.Is(err, repo.ErrNotFound) {
			return repo.ErrCartEmpty
		}
		if err != nil {
			return err
		}
		if len(cart.Items) == 0 {
			return repo.ErrCartEmpty
		}

		order, err := build(cart)
		if err != nil {
			return err
		}

		order.ID = uuid.NewString()
		for i := range order.Items {
			order.Items[i].ID = uuid.NewString()
			order.Items[i].OrderID = order.ID
			order.Items[i].Position = int64(i + 1)
		}

		if err := tx.Create(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return repo.ErrDuplicate
			}
			return err
		}

		//カートは空にするのではなく削除
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&model.CartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id = ?", cart.ID).Delete(&model.Cart{}).Error; err != nil {
			return err
		}

		created = order
		return nil
	})
	if err != nil {
		return model.Order{}, err
	}

	return created, nil
}

func orderItemsByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position asc")
}
