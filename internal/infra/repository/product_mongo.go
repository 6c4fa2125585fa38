package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProductMongoRepository struct {
	products *mongo.Collection
}

// DI
func NewProductMongoRepository(db *mongo.Database) *ProductMongoRepository {
	return &ProductMongoRepository{products: db.Collection(ProductsCollection)}
}

var productSortFields = map[string]string{
	repo.ProductSortName:        "name",
	repo.ProductSortPrice:       "price",
	repo.ProductSortDescription: "description",
	repo.ProductSortCreatedAt:   "created_at",
}

func (r *ProductMongoRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	filter := bson.M{}
	if name := strings.TrimSpace(q.Name); name != "" {
		filter["name"] = bson.M{"$regex": regexp.QuoteMeta(name), "$options": "i"}
	}

	total, err := r.products.CountDocuments(ctx, filter)
	if err != nil {
		return []model.Product{}, 0, fmt.Errorf("failed to count products: %w", err)
	}

	field, ok := productSortFields[q.Sort]
	if !ok {
		field = "price"
	}
	dir := 1
	if q.Desc {
		dir = -1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: field, Value: dir}, {Key: "_id", Value: 1}}).
		SetSkip(int64((q.Page - 1) * q.Limit)).
		SetLimit(int64(q.Limit))

	cur, err := r.products.Find(ctx, filter, opts)
	if err != nil {
		return []model.Product{}, 0, fmt.Errorf("failed to find products: %w", err)
	}

	products := []model.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return []model.Product{}, 0, fmt.Errorf("failed to decode products: %w", err)
	}

	return products, total, nil
}

func (r *ProductMongoRepository) FindByID(ctx context.Context, id string) (model.Product, error) {
	if err := checkID(id); err != nil {
		return model.Product{}, err
	}

	var p model.Product
	err := r.products.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, fmt.Errorf("failed to find product: %w", err)
	}
	return p, nil
}

func (r *ProductMongoRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	p.ID = uuid.NewString()
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	if _, err := r.products.InsertOne(ctx, p); err != nil {
		return model.Product{}, fmt.Errorf("failed to insert product: %w", err)
	}
	return p, nil
}

func (r *ProductMongoRepository) Update(ctx context.Context, id string, patch repo.ProductPatch) (model.Product, error) {
	if err := checkID(id); err != nil {
		return model.Product{}, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.Image != nil {
		set["image"] = *patch.Image
	}

	var p model.Product
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.products.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, fmt.Errorf("failed to update product: %w", err)
	}
	return p, nil
}

func (r *ProductMongoRepository) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}

	res, err := r.products.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}
