package repository

import (
	"context"
	"errors"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

// ユーザーのカートを取得
func (r *CartGormRepository) FindByUserID(ctx context.Context, userID string) (model.Cart, error) {
	return findCart(r.db.WithContext(ctx), userID, false)
}

// 同一商品は数量加算
func (r *CartGormRepository) UpsertItem(ctx context.Context, userID string, item model.CartItem) (model.Cart, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if item.Quantity < 1 {
			return addToExistingItem(tx, userID, item)
		}

		cart, err := getOrCreateLocked(tx, userID)
		if err != nil {
			return err
		}

		//末尾に追加するための位置
		var maxPos int64
		if err := tx.Model(&model.CartItem{}).
			Where("cart_id = ?", cart.ID).
			Select("COALESCE(MAX(position), 0)").
			Scan(&maxPos).Error; err != nil {
			return err
		}

		newItem := model.CartItem{
			ID:        uuid.NewString(),
			CartID:    cart.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Image:     item.Image,
			Position:  maxPos + 1,
		}

		// 既存ありだったら数量を増やす（INSERT ... ON CONFLICT）
		upsert := clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoUpdates: append(
				clause.AssignmentColumns([]string{"name", "price", "image"}),
				clause.Assignment{
					Column: clause.Column{Name: "quantity"},
					Value:  gorm.Expr("cart_items.quantity + excluded.quantity"),
				},
			),
		}
		if err := tx.Clauses(upsert).Create(&newItem).Error; err != nil {
			return err
		}

		return touchCart(tx, cart.ID)
	})
	if err != nil {
		return model.Cart{}, err
	}

	return r.FindByUserID(ctx, userID)
}

// 明細の数量を更新
func (r *CartGormRepository) SetItemQuantity(ctx context.Context, userID string, productID string, qty int64) (model.Cart, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := findCart(tx, userID, true)
		if err != nil {
			return err
		}

		res := tx.Model(&model.CartItem{}).
			Where("cart_id = ? AND product_id = ?", cart.ID, productID).
			Update("quantity", qty)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}

		return touchCart(tx, cart.ID)
	})
	if err != nil {
		return model.Cart{}, err
	}

	return r.FindByUserID(ctx, userID)
}

// 明細を削除（無い商品IDはエラーにしない）
func (r *CartGormRepository) RemoveItem(ctx context.Context, userID string, productID string) (model.Cart, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := findCart(tx, userID, true)
		if err != nil {
			return err
		}

		if err := tx.Where("cart_id = ? AND product_id = ?", cart.ID, productID).
			Delete(&model.CartItem{}).Error; err != nil {
			return err
		}

		return touchCart(tx, cart.ID)
	})
	if err != nil {
		return model.Cart{}, err
	}

	return r.FindByUserID(ctx, userID)
}

// 差分（負の数量）を既存明細に足す。1未満になった明細は消す。
func addToExistingItem(tx *gorm.DB, userID string, item model.CartItem) error {
	cart, err := findCart(tx, userID, true)
	if err != nil {
		return err
	}

	res := tx.Model(&model.CartItem{}).
		Where("cart_id = ? AND product_id = ?", cart.ID, item.ProductID).
		Updates(map[string]interface{}{
			"quantity": gorm.Expr("quantity + ?", item.Quantity),
			"name":     item.Name,
			"price":    item.Price,
			"image":    item.Image,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}

	if err := tx.Where("cart_id = ? AND quantity < 1", cart.ID).
		Delete(&model.CartItem{}).Error; err != nil {
		return err
	}

	return touchCart(tx, cart.ID)
}

// ユーザーのカートを探し、無ければ作ってから行ロックを取る
func getOrCreateLocked(tx *gorm.DB, userID string) (model.Cart, error) {
	now := time.Now()
	newCart := model.Cart{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// 同時作成はuser_idの一意制約で1つに収束
	if err := tx.Omit(clause.Associations).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(&newCart).Error; err != nil {
		return model.Cart{}, err
	}

	return findCart(tx, userID, true)
}

// lock=trueなら SELECT ... FOR UPDATE
func findCart(tx *gorm.DB, userID string, lock bool) (model.Cart, error) {
	var cart model.Cart

	q := tx
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	err := q.Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Cart{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Cart{}, err
	}

	items := []model.CartItem{}
	if err := tx.Where("cart_id = ?", cart.ID).
		Order("position asc").
		Find(&items).Error; err != nil {
		return model.Cart{}, err
	}
	cart.Items = items

	return cart, nil
}

func touchCart(tx *gorm.DB, cartID string) error {
	return tx.Model(&model.Cart{}).
		Where("id = ?", cartID).
		Update("updated_at", time.Now()).Error
}
