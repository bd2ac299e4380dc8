package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"storefront-backend/internal/dto"
	"storefront-backend/internal/model"
	"storefront-backend/internal/repository"
)

const defaultPageSize = 6

type ProductService interface {
	List(ctx context.Context, filter *repository.ProductFilter) (*dto.ProductListResponse, error)
	Get(ctx context.Context, productID uint) (*model.Product, error)
	Create(ctx context.Context, req *dto.ProductRequest) (*model.Product, error)
	Update(ctx context.Context, productID uint, req *dto.ProductRequest) (*model.Product, error)
	Delete(ctx context.Context, productID uint) error
}

type productServiceImpl struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productServiceImpl{
		productRepo: productRepo,
	}
}

func (s *productServiceImpl) List(ctx context.Context, filter *repository.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = defaultPageSize
	}

	products, total, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	totalPages := int((total + int64(filter.PageSize) - 1) / int64(filter.PageSize))

	return &dto.ProductListResponse{
		Products:      products,
		Page:          filter.Page,
		PageSize:      filter.PageSize,
		TotalPages:    totalPages,
		TotalProducts: total,
	}, nil
}

func (s *productServiceImpl) Get(ctx context.Context, productID uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	return product, nil
}

func (s *productServiceImpl) Create(ctx context.Context, req *dto.ProductRequest) (*model.Product, error) {
	product := &model.Product{
		Name:        req.Name,
		Price:       decimal.NewFromFloat(req.Price).Round(2),
		Description: req.Description,
		SKU:         req.SKU,
		Brand:       req.Brand,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	return product, nil
}

func (s *productServiceImpl) Update(ctx context.Context, productID uint, req *dto.ProductRequest) (*model.Product, error) {
	product := &model.Product{
		ID:          productID,
		Name:        req.Name,
		Price:       decimal.NewFromFloat(req.Price).Round(2),
		Description: req.Description,
		SKU:         req.SKU,
		Brand:       req.Brand,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("update product: %w", err)
	}

	return product, nil
}

func (s *productServiceImpl) Delete(ctx context.Context, productID uint) error {
	err := s.productRepo.Delete(ctx, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrProductNotFound
	}

	return err
}
