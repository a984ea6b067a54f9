package repository

import (
	"context"

	"vitrin/internal/cache"
	"vitrin/internal/models"

	"gorm.io/gorm"
)

// GalleryRepository defines persistence operations for gallery items.
type GalleryRepository interface {
	List(ctx context.Context) ([]models.GalleryItem, error)
	Create(ctx context.Context, item *models.GalleryItem) error
	Delete(ctx context.Context, id uint) (bool, error)
}

type galleryRepository struct {
	db *gorm.DB
}

// NewGalleryRepository returns a new GalleryRepository implementation.
func NewGalleryRepository(db *gorm.DB) GalleryRepository {
	return &galleryRepository{db: db}
}

func (r *galleryRepository) List(ctx context.Context) ([]models.GalleryItem, error) {
	items := []models.GalleryItem{}
	err := cache.Aside(ctx, cache.GalleryListKey, &items, cache.GalleryListTTL, func() error {
		if err := r.db.WithContext(ctx).Find(&items).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *galleryRepository) Create(ctx context.Context, item *models.GalleryItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateGallery(ctx)
	return nil
}

func (r *galleryRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.GalleryItem{}, id)
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	if result.RowsAffected > 0 {
		cache.InvalidateGallery(ctx)
	}
	return result.RowsAffected > 0, nil
}
