package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	amqp "github.com/streadway/amqp"

	"molove/internal/cartstore"
	"molove/internal/checkout"
	"molove/internal/handlers"
	"molove/internal/middleware"
	"molove/internal/services"
	"molove/internal/store"
	"molove/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DSN", "")
	viper.SetDefault("SQLITE_PATH", "molove.db")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("JWT_SECRET", "molove-dev-secret")
	viper.SetDefault("TELEGRAM_USERNAME", "molove_shop")
	viper.SetDefault("WHATSAPP_PHONE", "79000000000")
	viper.SetDefault("ADMIN_USERNAME", "admin")
	viper.SetDefault("ADMIN_PASSWORD", "admin")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")

	// --- Database Connector ---
	// The connector settles into postgres, sqlite or the fallback repository
	// set; the server waits for it before wiring anything on top.
	connector := store.NewConnector(store.Config{
		PostgresDSN: viper.GetString("DATABASE_DSN"),
		SQLitePath:  viper.GetString("SQLITE_PATH"),
	})
	go connector.Connect()

	awaitCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := connector.Await(awaitCtx); err != nil {
		// A present database with missing relations is a deployment bug, not
		// an outage to degrade through.
		log.Fatalf("Store initialization failed: %v", err)
	}
	log.Printf("Store ready in %s mode", connector.Mode())

	// --- Cart Store ---
	var deviceStore cartstore.Store
	if redisAddr := viper.GetString("REDIS_ADDR"); redisAddr != "" {
		deviceStore = cartstore.NewRedisStore(redis.NewClient(&redis.Options{Addr: redisAddr}))
		log.Printf("Using redis cart store at %s", redisAddr)
	} else {
		deviceStore = cartstore.NewMemoryStore()
		log.Println("REDIS_ADDR not set, using in-memory cart store")
	}

	// --- RabbitMQ Client (optional) ---
	var events services.EventPublisher
	var mqClient *rabbitmq.Client
	if mqURL := viper.GetString("RABBITMQ_URL"); mqURL != "" {
		client, err := rabbitmq.NewClient(rabbitmq.Config{URL: mqURL})
		if err != nil {
			log.Printf("RabbitMQ unavailable, order events disabled: %v", err)
		} else {
			mqClient = client
			events = client
			defer mqClient.Close()
		}
	}

	// --- Services ---
	checkoutCfg := checkout.Config{
		TelegramUsername: viper.GetString("TELEGRAM_USERNAME"),
		WhatsAppPhone:    viper.GetString("WHATSAPP_PHONE"),
	}

	authService := services.NewAuthService(connector.Users(), viper.GetString("JWT_SECRET"))
	if err := authService.EnsureAdmin(viper.GetString("ADMIN_USERNAME"), viper.GetString("ADMIN_PASSWORD")); err != nil {
		log.Printf("Admin account seeding failed: %v", err)
	}

	cartService := services.NewCartService(deviceStore)
	catalogService := services.NewCatalogService(connector.Products(), connector.Promo(), connector.Lookbook())
	checkoutService := services.NewCheckoutService(
		cartService,
		connector.Orders(),
		connector.Promo(),
		deviceStore,
		checkoutCfg,
		events,
	)
	adminService := services.NewAdminService(connector.Products())

	// --- Handlers ---
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService, connector.Products())
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	adminHandler := handlers.NewAdminHandler(adminService, connector.Orders(), connector.Promo(), connector.Lookbook())
	authHandler := handlers.NewAuthHandler(authService)

	// --- Fiber App ---
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"message": e.Message})
			}
			log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
			return c.Status(code).JSON(fiber.Map{
				"message": "Что-то пошло не так",
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")
	catalogHandler.RegisterRoutes(apiV1)
	cartHandler.RegisterRoutes(apiV1)
	checkoutHandler.RegisterRoutes(apiV1)
	authHandler.RegisterRoutes(apiV1)

	adminRoutes := apiV1.Group("/admin", middleware.AuthRequired(authService))
	adminHandler.RegisterRoutes(adminRoutes)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"store":  string(connector.Mode()),
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Order Event Consumer ---
	if mqClient != nil {
		go func() {
			log.Println("Starting order event consumer...")
			handler := func(msg amqp.Delivery) error {
				log.Printf("Order event (tag %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil
			}
			if err := mqClient.ConsumeOrderEvents(handler); err != nil {
				log.Printf("Failed to start order event consumer: %v", err)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
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
