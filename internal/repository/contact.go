package repository

import (
	"context"

	"vitrin/internal/models"

	"gorm.io/gorm"
)

// ContactRepository defines persistence operations for contact submissions.
// Submissions are append-only: there is no update and no single-item read.
type ContactRepository interface {
	List(ctx context.Context) ([]models.ContactSubmission, error)
	Create(ctx context.Context, submission *models.ContactSubmission) error
}

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository returns a new ContactRepository implementation.
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) List(ctx context.Context) ([]models.ContactSubmission, error) {
	submissions := []models.ContactSubmission{}
	if err := r.db.WithContext(ctx).Find(&submissions).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return submissions, nil
}

func (r *contactRepository) Create(ctx context.Context, submission *models.ContactSubmission) error {
	if err := r.db.WithContext(ctx).Create(submission).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
