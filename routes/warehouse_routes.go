package routes

import (
	"gudang-app/config"
	"gudang-app/controllers"
	"gudang-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupWarehouseRoutes(app *fiber.App, db *gorm.DB) {
	warehouseController := controllers.NewWarehouseController(db)

	api := app.Group(config.MAIN_ROUTES+"/warehouse", middleware.AuthMiddleware)
	api.Get("/:whs_code", warehouseController.GetWarehouseStock)
}
