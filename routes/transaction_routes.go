package routes

import (
	"gudang-app/config"
	"gudang-app/controllers"
	"gudang-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupTransactionRoutes(app *fiber.App, db *gorm.DB) {
	transactionController := controllers.NewTransactionController(db)

	api := app.Group(config.MAIN_ROUTES+"/transactions", middleware.AuthMiddleware)

	// Mutasi hanya untuk admin, baca cukup login
	api.Post("/", middleware.AdminOnly, transactionController.CreateTransaction)
	api.Get("/", transactionController.ListTransactions)
	api.Post("/search", transactionController.SearchOpenLots)
	api.Get("/excel", transactionController.ExportExcel)
}
