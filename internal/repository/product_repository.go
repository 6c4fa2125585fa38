package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// 並び替えできる項目
const (
	ProductSortName        = "name"
	ProductSortPrice       = "price"
	ProductSortDescription = "description"
	ProductSortCreatedAt   = "createdAt"
)

// 一覧検索
type ProductListQuery struct {
	Page  int
	Limit int
	Name  string
	Sort  string
	Desc  bool
}

// 部分更新（nilは変更しない）
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *float64
	Image       *string
}

func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil && p.Image == nil
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id string) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, id string, patch ProductPatch) (model.Product, error)
	Delete(ctx context.Context, id string) error
}
