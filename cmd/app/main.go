package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/storewise/storefront-backend/internal/address"
	"github.com/storewise/storefront-backend/internal/basket"
	"github.com/storewise/storefront-backend/internal/category"
	"github.com/storewise/storefront-backend/internal/config"
	"github.com/storewise/storefront-backend/internal/customer"
	"github.com/storewise/storefront-backend/internal/media"
	"github.com/storewise/storefront-backend/internal/notification"
	"github.com/storewise/storefront-backend/internal/order"
	"github.com/storewise/storefront-backend/internal/product"
	"github.com/storewise/storefront-backend/internal/storage"
	"github.com/storewise/storefront-backend/pkg/logging"
	"github.com/storewise/storefront-backend/pkg/shutdown"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logging.New(cfg.LogLevel)

	if cfg.JWTSecret == "" {
		log.Error("JWT_SECRET is not set")
		os.Exit(1)
	}

	db := mustOpenDB(log, cfg.DatabaseURL)
	defer db.Close()

	if err := storage.EnsureSchema(db); err != nil {
		log.Error("schema setup failed", "err", err)
		os.Exit(1)
	}

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	app := fiber.New()
	setupCORS(app)

	// object storage is optional: without S3_BUCKET image upload/serving 404s
	var images product.ImageStore
	if cfg.S3Bucket != "" {
		store, err := media.NewStore(ctx, media.StoreConfig{
			Bucket:   cfg.S3Bucket,
			Region:   cfg.S3Region,
			Endpoint: cfg.S3Endpoint,
			Prefix:   cfg.S3Prefix,
		})
		if err != nil {
			log.Error("object storage setup failed", "err", err)
			os.Exit(1)
		}
		images = store
	}

	// the email queue is optional too: without brokers orders simply send no mail
	var notifier order.Notifier
	if len(cfg.KafkaBrokers) > 0 {
		producer := notification.NewProducer(cfg.KafkaBrokers, cfg.EmailTopic)
		defer producer.Close()
		notifier = producer
	}

	productRepo := product.NewPostgresRepository(db)
	productService := product.NewService(productRepo)
	productHandler := product.NewHandler(log, productService, images)

	categoryHandler := category.NewHandler(category.NewService(category.NewPostgresRepository(db)))

	customerRepo := customer.NewPostgresRepository(db)
	customerService := customer.NewService(customerRepo)
	customerHandler := customer.NewHandler(log, customerService, cfg.JWTSecret)

	basketHandler := basket.NewHandler(log, basket.NewService(basket.NewPostgresRepository(db)))

	addressHandler := address.NewHandler(address.NewService(address.NewPostgresRepository(db)))

	orderService := order.NewService(log, storage.NewFactory(db), notifier)
	orderHandler := order.NewHandler(orderService)

	customerHandler.RegisterPublicRoutes(app)
	categoryHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)
	basketHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	customerHandler.RegisterProtectedRoutes(app)
	categoryHandler.RegisterProtectedRoutes(app)
	productHandler.RegisterProtectedRoutes(app)
	basketHandler.RegisterProtectedRoutes(app)
	addressHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", "addr", cfg.Addr)
		return app.Listen(cfg.Addr)
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		return app.Shutdown()
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func mustOpenDB(log *slog.Logger, url string) *sql.DB {
	if url == "" {
		log.Error("DATABASE_URL is not set")
		os.Exit(1)
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		log.Error("database open failed", "err", err)
		os.Exit(1)
	}
	if err := db.Ping(); err != nil {
		log.Error("database ping failed", "err", err)
		os.Exit(1)
	}
	return db
}
