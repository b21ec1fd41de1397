// Package dbtest opens throwaway migrated databases for tests.
package dbtest

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/inkwell-blog/inkwell-api/config"
	"github.com/inkwell-blog/inkwell-api/database"
	"github.com/inkwell-blog/inkwell-api/models"
)

// New returns a private in-memory SQLite database with the schema applied and
// foreign keys enforced. It is closed when the test ends.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Open(config.Config{
		DatabaseURL: "sqlite:file::memory:?_pragma=foreign_keys(1)",
		Env:         "test",
	})
	require.NoError(t, err)
	require.NoError(t, models.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// NewUser inserts a user whose name, username and email derive from handle.
func NewUser(t testing.TB, db *gorm.DB, handle string) *models.User {
	t.Helper()

	user := &models.User{
		ID:       "user-" + handle,
		Name:     "Test User",
		Username: handle,
		Email:    fmt.Sprintf("%s@example.com", handle),
	}
	require.NoError(t, database.NewUserRepo(db).Add(context.Background(), user))
	return user
}
