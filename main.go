package main

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"warung/internal/config"
	"warung/internal/handlers"
	"warung/internal/middleware"
	"warung/internal/models"
	"warung/internal/repositories"
	"warung/internal/services"
	"warung/pkg/mailer"
	"warung/pkg/rabbitmq"
	"warung/pkg/storage"
)

func main() {
	cfg := config.Load()

	// --- Database ---
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- RabbitMQ ---
	mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
	if err != nil {
		log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
	}
	defer mqClient.Close()

	// --- Asset store ---
	assets, err := storage.NewLocalStore(cfg.ImageDir)
	if err != nil {
		log.Fatalf("Failed to initialize asset store: %v", err)
	}

	// --- Background workers ---
	// Email delivery and image cleanup never run on a request path: handlers
	// publish events, these consumers do the slow work.
	smtpMailer := mailer.NewSMTPMailer(cfg.SMTPAddr, cfg.SMTPHost, cfg.SMTPUser, cfg.SMTPPass, cfg.FromMail)
	if err := startWorkers(mqClient, smtpMailer, assets); err != nil {
		log.Fatalf("Failed to start background workers: %v", err)
	}

	app := NewApp(cfg, db, mqClient, assets)

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// NewApp wires repositories, services and handlers into a Fiber app. The MQ
// client may be nil (events are then skipped with a log line), which keeps
// the wiring usable in tests.
func NewApp(cfg config.Config, db *gorm.DB, mqClient *rabbitmq.Client, assets handlers.AssetStore) *fiber.App {
	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	// --- Services ---
	var publisher services.EventPublisher
	if mqClient != nil {
		publisher = mqClient
	}
	authService := services.NewAuthService(userRepo, publisher, cfg.JWTSecret, cfg.BaseURL)
	productService := services.NewProductService(productRepo, publisher)
	cartService := services.NewCartService(cartRepo, productRepo)
	orderService := services.NewOrderService(orderRepo, cartRepo, productRepo, publisher)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService, assets)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)

	app := fiber.New(fiber.Config{
		// Single global handler for technical errors: log, answer generic.
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				return c.Status(fiberErr.Code).JSON(fiber.Map{"message": fiberErr.Message})
			}
			log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Something went wrong",
			})
		},
	})

	app.Use(logger.New())
	app.Static("/images", cfg.ImageDir)

	apiV1 := app.Group("/api/v1")

	// Public surface: auth flow and catalog browsing.
	authHandler.RegisterRoutes(apiV1)
	productHandler.RegisterPublicRoutes(apiV1)

	// Everything else sits behind the identity gate.
	protectedRoutes := apiV1.Group("", middleware.AuthRequired(authService, userRepo))
	productHandler.RegisterAdminRoutes(protectedRoutes)
	cartHandler.RegisterRoutes(protectedRoutes)
	orderHandler.RegisterRoutes(protectedRoutes)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
		})
	})

	return app
}

// startWorkers attaches the queue consumers. Failures while handling a
// message are logged and the message is requeued; nothing ever propagates
// back to a request.
func startWorkers(mqClient *rabbitmq.Client, m mailer.Mailer, assets *storage.LocalStore) error {
	err := mqClient.Consume(rabbitmq.EmailQueue, func(msg amqp.Delivery) error {
		var event services.EmailEvent
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			log.Printf("Dropping malformed email event: %v", err)
			return nil
		}
		if err := m.Send(event.To, event.Subject, event.Body); err != nil {
			return err
		}
		log.Printf("Sent email %q to %s", event.Subject, event.To)
		return nil
	})
	if err != nil {
		return err
	}

	return mqClient.Consume(rabbitmq.AssetCleanupQueue, func(msg amqp.Delivery) error {
		var event services.AssetCleanupEvent
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			log.Printf("Dropping malformed asset cleanup event: %v", err)
			return nil
		}
		if err := assets.Delete(event.Path); err != nil {
			// An orphaned file is better than a poison message looping
			// through the queue forever.
			log.Printf("Asset cleanup failed for %s: %v", event.Path, err)
		}
		return nil
	})
}
