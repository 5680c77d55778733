// The mailer consumes order events from Kafka and emails customers.
// It runs separately from the API server so mail delivery never slows
// down order handling.
package main

import (
	"context"
	"database/sql"
	"errors"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/storewise/storefront-backend/internal/config"
	"github.com/storewise/storefront-backend/internal/customer"
	"github.com/storewise/storefront-backend/internal/notification"
	"github.com/storewise/storefront-backend/pkg/logging"
	"github.com/storewise/storefront-backend/pkg/shutdown"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logging.New(cfg.LogLevel)

	if len(cfg.KafkaBrokers) == 0 {
		log.Error("KAFKA_BROKERS is not set")
		os.Exit(1)
	}
	if cfg.DatabaseURL == "" {
		log.Error("DATABASE_URL is not set")
		os.Exit(1)
	}

	db, err := openDB(cfg.DatabaseURL)
	if err != nil {
		log.Error("database setup failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	consumer := notification.NewConsumer(
		log,
		cfg.KafkaBrokers,
		cfg.EmailTopic,
		cfg.MailerGroup,
		customer.NewPostgresRepository(db),
		&notification.SMTPSender{Addr: cfg.SMTPAddr, From: cfg.SMTPFrom},
	)

	log.Info("mailer running", "topic", cfg.EmailTopic, "group", cfg.MailerGroup)
	if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("consumer stopped", "err", err)
		os.Exit(1)
	}
	log.Info("mailer stopped")
}

func openDB(url string) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}
