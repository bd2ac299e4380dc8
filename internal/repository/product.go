package repository

import (
	"context"

	"gorm.io/gorm"

	"storefront-backend/internal/model"
)

type ProductFilter struct {
	Name     string
	Brand    string
	Category string
	MinPrice *float64
	MaxPrice *float64
	Page     int
	PageSize int
}

type ProductRepository interface {
	List(ctx context.Context, filter *ProductFilter) ([]*model.Product, int64, error)
	FindByID(ctx context.Context, productID uint) (*model.Product, error)
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, productID uint) error
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func (r *productRepoImpl) List(ctx context.Context, filter *ProductFilter) ([]*model.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Product{})

	if filter.Name != "" {
		query = query.Where("name LIKE ?", "%"+filter.Name+"%")
	}
	if filter.Brand != "" {
		query = query.Where("brand LIKE ?", "%"+filter.Brand+"%")
	}
	if filter.Category != "" {
		query = query.Where("category LIKE ?", "%"+filter.Category+"%")
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []*model.Product
	offset := (filter.Page - 1) * filter.PageSize
	err := query.
		Offset(offset).
		Limit(filter.PageSize).
		Find(&products).Error

	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *productRepoImpl) FindByID(ctx context.Context, productID uint) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", productID).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepoImpl) Update(ctx context.Context, product *model.Product) error {
	result := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"name":        product.Name,
			"price":       product.Price,
			"description": product.Description,
			"sku":         product.SKU,
			"brand":       product.Brand,
			"category":    product.Category,
			"image_url":   product.ImageURL,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *productRepoImpl) Delete(ctx context.Context, productID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", productID).
		Delete(&model.Product{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
