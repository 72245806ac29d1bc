package main

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"payment_simulator/checkout"
	"payment_simulator/config"
	"payment_simulator/handler"
	"payment_simulator/helper"
	"payment_simulator/logging"
	"payment_simulator/router"
	"payment_simulator/store"
)

func main() {
	logger := logging.GetSugaredLogger()
	defer logger.Sync()

	cfg := config.GetConfig()

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Authorization, Accept",
	}))

	orders := store.NewOrderStore()
	payments := store.NewPaymentStore()
	svc := checkout.NewService(orders, payments, checkout.DefaultSampler(), cfg.FailureRate, cfg.ValidPassword, logger)

	hub := handler.NewEventHub(logger)
	go hub.Run()
	svc.OnEvent(hub.Publish)

	h := &handler.Handler{
		Checkout: svc,
		Logger:   logger,
	}

	helper.StartStatsScheduler(svc, time.Duration(cfg.StatsIntervalSeconds)*time.Second, logger)
	defer helper.StopStatsScheduler()

	app.Static("/", cfg.StaticDir)
	router.SetupRoutes(app, h, hub)

	logger.Infow("payment simulator listening", "port", cfg.Port, "failureRate", cfg.FailureRate)
	logger.Fatal(app.Listen(fmt.Sprintf(":%d", cfg.Port)))
}
