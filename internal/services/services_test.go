// internal/services/services_test.go
package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/virajyadav4141/fake-product-detection-backend/internal/models"
	"github.com/virajyadav4141/fake-product-detection-backend/internal/utils"
)

// setupTestDB opens a fresh in-memory database per test. TranslateError is
// on so uniqueness violations surface as gorm.ErrDuplicatedKey, same as the
// postgres setup.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.ProductCode{},
		&models.ComplaintToken{},
	))

	return db
}

func testParams() utils.PaginationParams {
	return utils.PaginationParams{
		Page:  1,
		Limit: 50,
		Sort:  "created_at",
		Order: "desc",
	}
}
