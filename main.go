package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"upskill/config"
	paymentController "upskill/controllers/payment"
	"upskill/database"
	"upskill/routers/courseRoutes"
	"upskill/routers/paymentRoutes"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	payment := paymentController.NewPaymentController(config.AppConfig)

	// Resume settlements interrupted by a crash or a failed notification
	reconciler := paymentController.StartSettlementReconciler(payment.Notify)
	defer reconciler.Stop()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	courseRoutes.SetupCourseRoutes(app)
	paymentRoutes.SetupPaymentRoutes(app, payment)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
