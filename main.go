package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ponewine/config"
	"ponewine/database"
	"ponewine/routes"
	"ponewine/services"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("No .env file loaded")
	}

	config.SetupLogger()
	cfg := config.Load()

	database.Connect(cfg.DB)

	app := fiber.New()
	reporter := services.NewReportClient(cfg.Callback)
	routes.Setup(app, reporter)

	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	logrus.Info("Server running at ", addr)

	go func() {
		if err := app.Listen(addr); err != nil {
			logrus.Panicf("Failed to start server: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	logrus.Info("Gracefully shutting down...")
	if err := app.Shutdown(); err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}
	logrus.Info("Server exited cleanly")
}
