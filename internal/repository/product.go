package repository

import (
	"context"
	"errors"

	"vitrin/internal/cache"
	"vitrin/internal/models"

	"gorm.io/gorm"
)

// ProductRepository defines persistence operations for catalog products.
type ProductRepository interface {
	List(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id uint, updates map[string]any) (*models.Product, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository returns a new ProductRepository implementation.
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// List returns all products. Anonymous catalog reads go through the
// cache-aside helper; no ordering is guaranteed.
func (r *productRepository) List(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	err := cache.Aside(ctx, cache.ProductsListKey, &products, cache.ProductsListTTL, func() error {
		if err := r.db.WithContext(ctx).Find(&products).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Product")
		}
		return nil, models.NewInternalError(err)
	}
	return &product, nil
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProducts(ctx)
	return nil
}

// Update applies only the provided columns and returns the updated row.
func (r *productRepository) Update(ctx context.Context, id uint, updates map[string]any) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Product")
		}
		return nil, models.NewInternalError(err)
	}

	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).Model(&product).Updates(updates).Error; err != nil {
			return nil, models.NewInternalError(err)
		}
		cache.InvalidateProducts(ctx)
	}
	return &product, nil
}

// Delete removes the row and reports whether anything was deleted.
func (r *productRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Product{}, id)
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	if result.RowsAffected > 0 {
		cache.InvalidateProducts(ctx)
	}
	return result.RowsAffected > 0, nil
}
