package main

import (
	"gudang-app/config"
	"gudang-app/controllers/idgen"
	"gudang-app/database"
	"gudang-app/migration"
	"gudang-app/pkg/logger"
	"gudang-app/routes"

	"github.com/gofiber/fiber/v2"
)

func main() {
	config.LoadConfig()
	logger.Init("gudang-app", config.APP_ENV == "development")

	app := fiber.New()

	// Connect to database
	db, err := database.OpenDatabaseConnection()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.CloseDatabaseConnection(db)

	// Auto migrate models
	if err := migration.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("Failed to auto migrate")
	}

	if err := database.SeedAdminUser(db); err != nil {
		logger.Fatal().Err(err).Msg("Failed to seed admin user")
	}

	idgen.Init()

	// Setup CORS middleware
	config.SetupCORS(app)

	// Setup routes
	routes.SetupAuthRoutes(app, db)
	routes.SetupTransactionRoutes(app, db)
	routes.SetupWarehouseRoutes(app, db)

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := database.Ping(db); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status": "unhealthy",
				"error":  err.Error(),
			})
		}
		return c.JSON(fiber.Map{"status": "healthy", "database": "connected"})
	})

	logger.Info().Str("port", config.APP_PORT).Msg("Server berjalan")

	if err := app.Listen(":" + config.APP_PORT); err != nil {
		logger.Fatal().Err(err).Msg("Server stopped")
	}
}
