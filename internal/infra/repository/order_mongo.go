package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OrderMongoRepository struct {
	orders *mongo.Collection
	carts  *mongo.Collection
}

// DI
func NewOrderMongoRepository(db *mongo.Database) *OrderMongoRepository {
	return &OrderMongoRepository{
		orders: db.Collection(OrdersCollection),
		carts:  db.Collection(CartsCollection),
	}
}

func (r *OrderMongoRepository) ListByUserID(ctx context.Context, userID string) ([]model.Order, error) {
	filter := bson.M{}
	if userID != "" {
		filter["user_id"] = userID
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.orders.Find(ctx, filter, opts)
	if err != nil {
		return []model.Order{}, fmt.Errorf("failed to find orders: %w", err)
	}

	orders := []model.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return []model.Order{}, fmt.Errorf("failed to decode orders: %w", err)
	}
	for i := range orders {
		if orders[i].Items == nil {
			orders[i].Items = []model.OrderItem{}
		}
	}
	return orders, nil
}

func (r *OrderMongoRepository) FindByIdempotencyKey(ctx context.Context, userID string, key string) (model.Order, bool, error) {
	var o model.Order

	err := r.orders.FindOne(ctx, bson.M{"user_id": userID, "idempotency_key": key}).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Order{}, false, nil
	}
	if err != nil {
		return model.Order{}, false, fmt.Errorf("failed to find order: %w", err)
	}
	return o, true, nil
}

// カートの取り出しはFindOneAndDeleteで1回きり。
// 注文の保存に失敗したら取り出したカートを戻す。
func (r *OrderMongoRepository) PlaceFromCart(ctx context.Context, userID string, build repo.BuildOrderFunc) (model.Order, error) {
	var cart model.Cart

	err := r.carts.FindOneAndDelete(ctx, bson.M{
		"user_id": userID,
		"items.0": bson.M{"$exists": true},
	}).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Order{}, repo.ErrCartEmpty
	}
	if err != nil {
		return model.Order{}, fmt.Errorf("failed to take cart: %w", err)
	}

	order, err := build(cart)
	if err != nil {
		return model.Order{}, r.restoreCart(ctx, cart, err)
	}

	order.ID = uuid.NewString()

	if _, err := r.orders.InsertOne(ctx, order); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.Order{}, r.restoreCart(ctx, cart, repo.ErrDuplicate)
		}
		return model.Order{}, r.restoreCart(ctx, cart, fmt.Errorf("failed to insert order: %w", err))
	}

	return order, nil
}

// 取り出した明細をカートに戻す。その間に作られたカートがあれば数量を足し込む。
// 呼び出し元のキャンセルとは切り離して戻す
func (r *OrderMongoRepository) restoreCart(ctx context.Context, cart model.Cart, cause error) error {
	ctx = context.WithoutCancel(ctx)
	carts := &CartMongoRepository{carts: r.carts}

	var errs []error
	for _, it := range cart.Items {
		if err := carts.mergeItem(ctx, cart.UserID, it); err != nil {
			errs = append(errs, fmt.Errorf("product %s: %w", it.ProductID, err))
		}
	}
	if len(errs) > 0 {
		return errors.Join(cause, fmt.Errorf("failed to restore cart: %w", errors.Join(errs...)))
	}
	return cause
}
