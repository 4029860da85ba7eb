package main

import (
	"log"

	"edhub/config"
	adminController "edhub/controllers/admin"
	authController "edhub/controllers/auth"
	courseController "edhub/controllers/course"
	"edhub/database"
	"edhub/middleware"
	"edhub/payments"
	adminRoutes "edhub/routers/adminRoutes"
	authRoutes "edhub/routers/authRoutes"
	courseRoutes "edhub/routers/courseRoutes"
	"edhub/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}

	tokens := middleware.NewTokenService(cfg)
	auth := middleware.NewAuth(db, tokens)
	mailer := utils.NewMailer(cfg)
	gateway := payments.NewGateway(cfg)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.Setup(app, authController.New(db, cfg, tokens, mailer), auth)
	courseRoutes.Setup(app, courseController.New(db, cfg, gateway, mailer), auth)
	adminRoutes.Setup(app, adminController.New(db), auth)

	// Keep denormalized course counters honest
	scheduler := utils.StartStatsScheduler(db)
	defer scheduler.Stop()

	log.Printf("Server is running on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
