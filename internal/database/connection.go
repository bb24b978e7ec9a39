// internal/database/connection.go
package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/virajyadav4141/fake-product-detection-backend/internal/config"
	"github.com/virajyadav4141/fake-product-detection-backend/internal/models"
)

var DB *gorm.DB

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var err error

	gormConfig := &gorm.Config{
		// Surfaces unique-constraint violations as gorm.ErrDuplicatedKey,
		// which the code issuer relies on to retry collisions.
		TranslateError: true,
	}
	if cfg.LogLevel == "silent" {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	} else {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}

	// Connect to database
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection established successfully")
	return DB, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.ProductCode{},
		&models.ComplaintToken{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_products_status_created ON products(status, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_product_codes_product ON product_codes(product_id)",
		"CREATE INDEX IF NOT EXISTS idx_complaint_tokens_created ON complaint_tokens(created_at DESC)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			log.Printf("Warning: Failed to create index: %s, Error: %v", index, err)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// SeedInitialData provisions the three fixed accounts. Roles are not
// self-service; there is no registration endpoint.
func SeedInitialData(db *gorm.DB, cfg config.SeedConfig) error {
	log.Println("Seeding initial data...")

	seeds := []struct {
		username string
		password string
		role     models.Role
	}{
		{"admin", cfg.AdminPassword, models.RoleAdmin},
		{"worker", cfg.WorkerPassword, models.RoleWorker},
		{"client", cfg.ClientPassword, models.RoleClient},
	}

	for _, seed := range seeds {
		var count int64
		db.Model(&models.User{}).Where("username = ?", seed.username).Count(&count)
		if count > 0 {
			continue
		}

		user := &models.User{
			Username: seed.username,
			Role:     seed.role,
		}
		if err := user.SetPassword(seed.password); err != nil {
			return fmt.Errorf("failed to set password for %s: %w", seed.username, err)
		}
		if err := db.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", seed.username, err)
		}
	}

	log.Println("Initial data seeding completed")
	return nil
}
