package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

var productSortColumns = map[string]string{
	repo.ProductSortName:        "name",
	repo.ProductSortPrice:       "price",
	repo.ProductSortDescription: "description",
	repo.ProductSortCreatedAt:   "created_at",
}

// 名前の部分一致/ソート/ページング付きで返す。
func (r *ProductGormRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	products := []model.Product{}
	var total int64

	// 件数と一覧で同じ条件を使う
	filtered := func() *gorm.DB {
		tx := r.db.WithContext(ctx).Model(&model.Product{})
		// nameを対象（大文字小文字は区別しない）
		if name := strings.TrimSpace(q.Name); name != "" {
			like := "%" + escapeLike(strings.ToLower(name)) + "%"
			tx = tx.Where(`LOWER(name) LIKE ? ESCAPE '\'`, like)
		}
		return tx
	}

	//total（件数）
	if err := filtered().Count(&total).Error; err != nil {
		return []model.Product{}, 0, err
	}

	//sort
	col, ok := productSortColumns[q.Sort]
	if !ok {
		col = "price"
	}

	offset := (q.Page - 1) * q.Limit
	err := filtered().
		Order(clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: q.Desc}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}}).
		Offset(offset).
		Limit(q.Limit).
		Find(&products).Error
	if err != nil {
		return []model.Product{}, 0, err
	}

	return products, total, nil
}

// IDで商品を取得
func (r *ProductGormRepository) FindByID(ctx context.Context, id string) (model.Product, error) {
	if err := checkID(id); err != nil {
		return model.Product{}, err
	}

	var p model.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 商品の作成
func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	p.ID = uuid.NewString()
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 渡された項目だけ更新
func (r *ProductGormRepository) Update(ctx context.Context, id string, patch repo.ProductPatch) (model.Product, error) {
	if err := checkID(id); err != nil {
		return model.Product{}, err
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Price != nil {
		updates["price"] = *patch.Price
	}
	if patch.Image != nil {
		updates["image"] = *patch.Image
	}

	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return model.Product{}, res.Error
	}
	if res.RowsAffected == 0 {
		return model.Product{}, repo.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

// 商品削除
func (r *ProductGormRepository) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
