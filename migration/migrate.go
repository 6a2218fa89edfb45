package migration

import (
	"gudang-app/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.LoginLog{},
		&models.StockMovement{},
		&models.ImportLog{},
	)
}
