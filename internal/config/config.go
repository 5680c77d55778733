package config

import (
	"os"
	"strings"
)

// Config collects everything the binaries read from the environment.
type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string
	LogLevel    string

	// email notification queue
	KafkaBrokers []string
	EmailTopic   string
	MailerGroup  string

	// object storage for product images
	S3Bucket   string
	S3Region   string
	S3Endpoint string
	S3Prefix   string

	// outgoing mail (used by cmd/mailer only)
	SMTPAddr string
	SMTPFrom string
}

func Load() Config {
	return Config{
		Addr:         getEnv("STOREFRONT_ADDR", ":8080"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),
		EmailTopic:   getEnv("EMAIL_TOPIC", "order-emails"),
		MailerGroup:  getEnv("MAILER_GROUP", "storefront-mailer"),
		S3Bucket:     os.Getenv("S3_BUCKET"),
		S3Region:     getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:   os.Getenv("S3_ENDPOINT"),
		S3Prefix:     getEnv("S3_PREFIX", "products/"),
		SMTPAddr:     getEnv("SMTP_ADDR", "localhost:25"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@storefront.local"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
