// Package seed provides database seeding for the admin account and optional
// demo catalog content.
package seed

import (
	"context"
	"fmt"

	"vitrin/internal/models"
	"vitrin/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	// DefaultAdminUsername is the seeded back-office account.
	DefaultAdminUsername = "admin"
	// DefaultAdminPassword must be rotated after first login in any real deployment.
	DefaultAdminPassword = "admin123"

	bcryptCost = 10
)

// Admin creates the admin user if it does not exist. Returns true when a new
// account was created.
func Admin(ctx context.Context, users repository.UserRepository) (bool, error) {
	existing, err := users.GetByUsername(ctx, DefaultAdminUsername)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultAdminPassword), bcryptCost)
	if err != nil {
		return false, err
	}

	user := &models.User{
		Username: DefaultAdminUsername,
		Password: string(hashed),
	}
	if err := users.Create(ctx, user); err != nil {
		return false, err
	}
	return true, nil
}

var productCategories = []string{"Signs", "Maps", "Plaques", "Keychains", "Stands"}

// Demo fills the catalog and gallery with generated content for local
// development. It never touches the users table.
func Demo(db *gorm.DB, numProducts, numGalleryItems int) error {
	for i := 0; i < numProducts; i++ {
		product := models.Product{
			Name:        gofakeit.ProductName(),
			Category:    productCategories[i%len(productCategories)],
			Description: gofakeit.Sentence(12),
			Image:       demoImageURL(),
		}
		if err := db.Create(&product).Error; err != nil {
			return fmt.Errorf("seed product: %w", err)
		}
	}

	for i := 0; i < numGalleryItems; i++ {
		item := models.GalleryItem{Image: demoImageURL()}
		if err := db.Create(&item).Error; err != nil {
			return fmt.Errorf("seed gallery item: %w", err)
		}
	}

	return nil
}

func demoImageURL() string {
	return fmt.Sprintf("https://res.cloudinary.com/demo/image/upload/%s.jpg", gofakeit.UUID())
}
