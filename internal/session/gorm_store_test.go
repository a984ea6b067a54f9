package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

func TestGormStore_CreateGetDelete(t *testing.T) {
	db := setupTestDB(t)
	store, err := NewGormStore(db, "sessions")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, newTestSession("tok-1", time.Hour)))

	sess, err := store.Get(ctx, "tok-1")
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "admin", sess.Username)

	require.NoError(t, store.Delete(ctx, "tok-1"))

	sess, err = store.Get(ctx, "tok-1")
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestGormStore_SurvivesRestart(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	store, err := NewGormStore(db, "sessions")
	require.NoError(t, err)
	require.NoError(t, store.Create(ctx, newTestSession("tok-durable", time.Hour)))

	// A fresh store over the same database stands in for a restarted or
	// scaled-out instance; the session must still be valid.
	restarted, err := NewGormStore(db, "sessions")
	require.NoError(t, err)

	sess, err := restarted.Get(ctx, "tok-durable")
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "user-1", sess.UserID)
}

func TestGormStore_ExpiredSessionInvalidOnRead(t *testing.T) {
	db := setupTestDB(t)
	store, err := NewGormStore(db, "sessions")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, newTestSession("tok-exp", -time.Minute)))

	sess, err := store.Get(ctx, "tok-exp")
	require.NoError(t, err)
	assert.Nil(t, sess)

	// The expired row was lazily removed.
	var count int64
	require.NoError(t, db.Table("sessions").Count(&count).Error)
	assert.Zero(t, count)
}

func TestGormStore_DeleteExpired(t *testing.T) {
	db := setupTestDB(t)
	store, err := NewGormStore(db, "sessions")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, newTestSession("tok-live", time.Hour)))
	require.NoError(t, store.Create(ctx, newTestSession("tok-dead", -time.Minute)))

	require.NoError(t, store.DeleteExpired(ctx))

	var count int64
	require.NoError(t, db.Table("sessions").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGormStore_CustomTableName(t *testing.T) {
	db := setupTestDB(t)
	store, err := NewGormStore(db, "admin_sessions")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, newTestSession("tok-1", time.Hour)))

	var count int64
	require.NoError(t, db.Table("admin_sessions").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGormStore_DeleteIdempotent(t *testing.T) {
	db := setupTestDB(t)
	store, err := NewGormStore(db, "sessions")
	require.NoError(t, err)

	assert.NoError(t, store.Delete(context.Background(), "never-existed"))
	assert.NoError(t, store.Delete(context.Background(), "never-existed"))
}
