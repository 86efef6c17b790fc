// Package migrations applies the PostgreSQL schema owned by every persistence adapter.
package migrations

import (
	"gorm.io/gorm"

	catalogpg "github.com/Apurer/shop-backoffice/internal/domains/catalog/adapters/persistence/postgres"
	discountpg "github.com/Apurer/shop-backoffice/internal/domains/discounts/adapters/persistence/postgres"
	orderpg "github.com/Apurer/shop-backoffice/internal/domains/orders/adapters/persistence/postgres"
	userpg "github.com/Apurer/shop-backoffice/internal/domains/users/adapters/persistence/postgres"
)

// Models returns the records of all bounded contexts in migration order.
func Models() []any {
	var models []any
	models = append(models, userpg.Models()...)
	models = append(models, catalogpg.Models()...)
	models = append(models, discountpg.Models()...)
	models = append(models, orderpg.Models()...)
	return models
}

// Run applies the schema for the bounded contexts.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(Models()...)
}
