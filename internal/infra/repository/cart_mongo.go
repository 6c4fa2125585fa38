package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// user_idの一意制約で作成競合が起きたときの再試行回数
const cartUpsertRetries = 3

type CartMongoRepository struct {
	carts *mongo.Collection
}

// DI
func NewCartMongoRepository(db *mongo.Database) *CartMongoRepository {
	return &CartMongoRepository{carts: db.Collection(CartsCollection)}
}

func (r *CartMongoRepository) FindByUserID(ctx context.Context, userID string) (model.Cart, error) {
	var cart model.Cart

	err := r.carts.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Cart{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Cart{}, fmt.Errorf("failed to find cart: %w", err)
	}
	if cart.Items == nil {
		cart.Items = []model.CartItem{}
	}
	return cart, nil
}

// 同一商品は数量加算。どちらの更新も1ドキュメントへの原子的な操作。
func (r *CartMongoRepository) UpsertItem(ctx context.Context, userID string, item model.CartItem) (model.Cart, error) {
	if item.Quantity < 1 {
		if err := r.addToExistingItem(ctx, userID, item); err != nil {
			return model.Cart{}, err
		}
		return r.FindByUserID(ctx, userID)
	}

	if err := r.mergeItem(ctx, userID, item); err != nil {
		return model.Cart{}, err
	}

	return r.FindByUserID(ctx, userID)
}

// 既存明細に加算、無ければ末尾に追加（カートが無ければ作る）
func (r *CartMongoRepository) mergeItem(ctx context.Context, userID string, item model.CartItem) error {
	for attempt := 0; ; attempt++ {
		merged, err := r.incExistingItem(ctx, userID, item)
		if err != nil {
			return err
		}
		if merged {
			return nil
		}

		err = r.pushNewItem(ctx, userID, item)
		if err == nil {
			return nil
		}
		// 同時作成に負けた or 同じ商品が先に入った → 加算からやり直す
		if mongo.IsDuplicateKeyError(err) && attempt < cartUpsertRetries {
			continue
		}
		return fmt.Errorf("failed to upsert cart item: %w", err)
	}
}

func (r *CartMongoRepository) SetItemQuantity(ctx context.Context, userID string, productID string, qty int64) (model.Cart, error) {
	res, err := r.carts.UpdateOne(ctx,
		bson.M{"user_id": userID, "items.product_id": productID},
		bson.M{"$set": bson.M{
			"items.$.quantity": qty,
			"updated_at":       time.Now().UTC(),
		}},
	)
	if err != nil {
		return model.Cart{}, fmt.Errorf("failed to set cart item quantity: %w", err)
	}
	if res.MatchedCount == 0 {
		return model.Cart{}, repo.ErrNotFound
	}

	return r.FindByUserID(ctx, userID)
}

// 無い商品IDはエラーにしない
func (r *CartMongoRepository) RemoveItem(ctx context.Context, userID string, productID string) (model.Cart, error) {
	res, err := r.carts.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$pull": bson.M{"items": bson.M{"product_id": productID}},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return model.Cart{}, fmt.Errorf("failed to remove cart item: %w", err)
	}
	if res.MatchedCount == 0 {
		return model.Cart{}, repo.ErrNotFound
	}

	return r.FindByUserID(ctx, userID)
}

// 既存明細の数量を加算し、名前・価格・画像を上書き
func (r *CartMongoRepository) incExistingItem(ctx context.Context, userID string, item model.CartItem) (bool, error) {
	res, err := r.carts.UpdateOne(ctx,
		bson.M{"user_id": userID, "items.product_id": item.ProductID},
		bson.M{
			"$inc": bson.M{"items.$.quantity": item.Quantity},
			"$set": bson.M{
				"items.$.name":  item.Name,
				"items.$.price": item.Price,
				"items.$.image": item.Image,
				"updated_at":    time.Now().UTC(),
			},
		},
	)
	if err != nil {
		return false, fmt.Errorf("failed to merge cart item: %w", err)
	}
	return res.MatchedCount > 0, nil
}

// 明細を末尾に追加。カートが無ければ作る。
func (r *CartMongoRepository) pushNewItem(ctx context.Context, userID string, item model.CartItem) error {
	now := time.Now().UTC()
	entry := model.CartItem{
		ProductID: item.ProductID,
		Name:      item.Name,
		Price:     item.Price,
		Quantity:  item.Quantity,
		Image:     item.Image,
	}

	_, err := r.carts.UpdateOne(ctx,
		bson.M{"user_id": userID, "items.product_id": bson.M{"$ne": item.ProductID}},
		bson.M{
			"$push":        bson.M{"items": entry},
			"$set":         bson.M{"updated_at": now},
			"$setOnInsert": bson.M{"_id": uuid.NewString(), "created_at": now},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

// 差分（負の数量）を既存明細に足す。1未満になった明細は外す。
func (r *CartMongoRepository) addToExistingItem(ctx context.Context, userID string, item model.CartItem) error {
	merged, err := r.incExistingItem(ctx, userID, item)
	if err != nil {
		return err
	}
	if !merged {
		return repo.ErrNotFound
	}

	_, err = r.carts.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$pull": bson.M{"items": bson.M{"quantity": bson.M{"$lt": 1}}}},
	)
	if err != nil {
		return fmt.Errorf("failed to prune cart items: %w", err)
	}
	return nil
}
