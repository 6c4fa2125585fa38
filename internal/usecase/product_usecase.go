package usecase

import (
	"context"
	"errors"
	"math"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/rs/zerolog/log"
)

const (
	DefaultProductPage  = 1
	DefaultProductLimit = 10
	MaxProductLimit     = 100
	maxNameQueryLen     = 100
)

// 商品1件のキャッシュ（エラーは全てミス扱い）
type ProductCache interface {
	Get(ctx context.Context, id string) (model.Product, error)
	Set(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, id string) error
}

type ProductUsecase struct {
	productRepo repo.ProductRepository
	cache       ProductCache
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository, cache ProductCache) *ProductUsecase {
	return &ProductUsecase{
		productRepo: productRepo,
		cache:       cache,
	}
}

// GET /productsの入力DTO
type ListProductsInput struct {
	Page  int
	Limit int
	Name  string
	Sort  string // name/price/description/createdAt
	Order string // asc/desc
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

type ProductListOutput struct {
	Success    bool            `json:"success"`
	Data       []model.Product `json:"data"`
	Pagination Pagination      `json:"pagination"`
}

// 作成・更新の入力（nilは未指定）
type ProductInput struct {
	Name        *string
	Description *string
	Price       *float64
	Image       *string
}

func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page < 1 {
		return ProductListOutput{}, validationError("invalid page")
	}
	if in.Limit < 1 || in.Limit > MaxProductLimit {
		return ProductListOutput{}, validationError("invalid limit")
	}
	if len(in.Name) > maxNameQueryLen {
		return ProductListOutput{}, validationError("name too long")
	}

	sort := in.Sort
	switch sort {
	case "":
		sort = repo.ProductSortPrice
	case repo.ProductSortName, repo.ProductSortPrice, repo.ProductSortDescription, repo.ProductSortCreatedAt:
	default:
		return ProductListOutput{}, validationError("invalid sort")
	}

	var desc bool
	switch strings.ToLower(in.Order) {
	case "", "asc":
	case "desc":
		desc = true
	default:
		return ProductListOutput{}, validationError("invalid order")
	}

	items, total, err := u.productRepo.List(ctx, repo.ProductListQuery{
		Page:  in.Page,
		Limit: in.Limit,
		Name:  strings.TrimSpace(in.Name),
		Sort:  sort,
		Desc:  desc,
	})
	if err != nil {
		return ProductListOutput{}, internalError(err)
	}

	return ProductListOutput{
		Success: true,
		Data:    items,
		Pagination: Pagination{
			Page:       in.Page,
			Limit:      in.Limit,
			Total:      total,
			TotalPages: int64(math.Ceil(float64(total) / float64(in.Limit))),
		},
	}, nil
}

func (u *ProductUsecase) GetProduct(ctx context.Context, id string) (model.Product, error) {
	if p, err := u.cache.Get(ctx, id); err == nil {
		return p, nil
	}

	p, err := u.productRepo.FindByID(ctx, id)
	if err != nil {
		return model.Product{}, productError(err)
	}

	if err := u.cache.Set(ctx, p); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("product_id", id).Msg("product cache set failed")
	}
	return p, nil
}

func (u *ProductUsecase) CreateProduct(ctx context.Context, in ProductInput) (model.Product, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return model.Product{}, validationError("name required")
	}
	if in.Price != nil && *in.Price < 0 {
		return model.Product{}, validationError("price must be >= 0")
	}

	p := model.Product{Name: strings.TrimSpace(*in.Name)}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Image != nil {
		p.Image = *in.Image
	}

	created, err := u.productRepo.Create(ctx, p)
	if err != nil {
		return model.Product{}, internalError(err)
	}
	return created, nil
}

// 指定された項目だけ更新
func (u *ProductUsecase) UpdateProduct(ctx context.Context, id string, in ProductInput) (model.Product, error) {
	patch := repo.ProductPatch{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Image:       in.Image,
	}
	if patch.IsEmpty() {
		return model.Product{}, validationError("no data provided")
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return model.Product{}, validationError("name must not be empty")
		}
		patch.Name = &name
	}
	if in.Price != nil && *in.Price < 0 {
		return model.Product{}, validationError("price must be >= 0")
	}

	p, err := u.productRepo.Update(ctx, id, patch)
	if err != nil {
		return model.Product{}, productError(err)
	}

	u.evict(ctx, id)
	return p, nil
}

func (u *ProductUsecase) DeleteProduct(ctx context.Context, id string) error {
	if err := u.productRepo.Delete(ctx, id); err != nil {
		return productError(err)
	}

	u.evict(ctx, id)
	return nil
}

func (u *ProductUsecase) evict(ctx context.Context, id string) {
	if err := u.cache.Delete(ctx, id); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("product_id", id).Msg("product cache delete failed")
	}
}

func productError(err error) error {
	switch {
	case errors.Is(err, repo.ErrInvalidID):
		return validationError("invalid product id")
	case errors.Is(err, repo.ErrNotFound):
		return notFoundError("product not found")
	default:
		return internalError(err)
	}
}
