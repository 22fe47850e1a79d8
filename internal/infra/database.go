package infra

import (
	"fmt"

	"github.com/HanreDelport/Inventory-Manager/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs
// AutoMigrate to create / update all tables. TranslateError lets services
// detect unique violations via gorm.ErrDuplicatedKey instead of matching
// driver error strings.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	return db, nil
}

// RunMigrations applies the schema. Also used by integration tests.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Component{},
		&model.Product{},
		&model.BillOfMaterials{},
		&model.ProductBOM{},
		&model.Order{},
		&model.OrderAllocation{},
		&model.User{},
	)
}
