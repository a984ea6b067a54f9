package session

import (
	"context"
	"errors"
	"time"

	"vitrin/internal/models"

	"gorm.io/gorm"
)

// GormStore persists sessions in a database table. The table name is
// configurable so deployments can keep the session table apart from the
// application schema.
type GormStore struct {
	db    *gorm.DB
	table string
}

// NewGormStore creates the session table if missing and returns the store.
func NewGormStore(db *gorm.DB, table string) (*GormStore, error) {
	if table == "" {
		table = "sessions"
	}
	if err := db.Table(table).AutoMigrate(&models.Session{}); err != nil {
		return nil, err
	}
	return &GormStore{db: db, table: table}, nil
}

func (s *GormStore) Create(ctx context.Context, sess *models.Session) error {
	return s.db.WithContext(ctx).Table(s.table).Create(sess).Error
}

func (s *GormStore) Get(ctx context.Context, token string) (*models.Session, error) {
	var sess models.Session
	err := s.db.WithContext(ctx).Table(s.table).Where("token = ?", token).First(&sess).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if sess.Expired(time.Now()) {
		// Lazy cleanup; an expired row is as good as gone.
		_ = s.Delete(ctx, token)
		return nil, nil
	}
	return &sess, nil
}

func (s *GormStore) Delete(ctx context.Context, token string) error {
	return s.db.WithContext(ctx).Table(s.table).Where("token = ?", token).Delete(&models.Session{}).Error
}

// DeleteExpired removes all rows past their expiry. Called periodically from
// the server's janitor so the table does not accumulate dead sessions.
func (s *GormStore) DeleteExpired(ctx context.Context) error {
	return s.db.WithContext(ctx).Table(s.table).
		Where("expires_at <= ?", time.Now()).
		Delete(&models.Session{}).Error
}
