// Package testutil provides an in-memory SQLite database migrated with
// the production schema.
package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dbpkg "github.com/BruksfildServices01/barber-booking/internal/db"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection serializes transactions the way row locks do in postgres
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, dbpkg.Migrate(db))
	require.NoError(t, dbpkg.SeedPrices(db))
	return db
}

// CreateUser inserts a regular user with the given attendance.
func CreateUser(t *testing.T, db *gorm.DB, email string, attendance int) *models.User {
	t.Helper()

	u := &models.User{
		Firstname:    "Test",
		Lastname:     "User",
		Email:        email,
		PasswordHash: "x",
		Role:         models.RoleUser,
		Attendance:   attendance,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}
