package routes

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"mithai-mahal/config"
	"mithai-mahal/libs"
	"mithai-mahal/migrations"
	"mithai-mahal/repositories"
	"mithai-mahal/services"
	"mithai-mahal/utils"
)

// Bootstrap connects the stores selected by config.AppConfig and returns the
// router dependencies along with a func that releases them.
func Bootstrap(ctx context.Context, appLog *slog.Logger) (Dependencies, func(), error) {
	cfg := config.AppConfig

	deps := Dependencies{
		Tokens:            utils.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiry),
		LowStockThreshold: cfg.LowStockThreshold,
		OriginURL:         cfg.OriginURL,
		Logger:            appLog,
	}

	switch cfg.StoreDriver {
	case "memory":
		log.Println("Using in-memory store, data will not survive a restart")
		deps.Sweets = repositories.NewMemorySweetRepository()
		deps.Users = repositories.NewMemoryUserRepository()
	default:
		if err := config.ConnectDB(ctx); err != nil {
			return Dependencies{}, nil, fmt.Errorf("connect database: %w", err)
		}
		if err := migrations.Up(cfg.DSN()); err != nil {
			config.CloseDB()
			return Dependencies{}, nil, fmt.Errorf("run migrations: %w", err)
		}
		deps.Sweets = repositories.NewSweetRepository(config.DB)
		deps.Users = repositories.NewUserRepository(config.DB)
	}

	config.ConnectRedis(ctx)
	if config.RedisClient != nil {
		deps.Revoker = repositories.NewRedisRevocationStore(config.RedisClient)
	} else {
		deps.Revoker = repositories.NewMemoryRevocationStore()
	}

	deps.Notifier = newStockNotifier(cfg)

	cleanup := func() {
		config.CloseRedis()
		config.CloseDB()
	}
	return deps, cleanup, nil
}

// newStockNotifier returns nil when SMTP or the admin address is missing, which turns alerts off.
func newStockNotifier(cfg *config.Config) services.StockNotifier {
	mailer, err := libs.NewMailer(libs.MailerConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPass,
		From:     cfg.SMTPFrom,
		AdminTo:  cfg.AdminEmail,
	})
	if err != nil {
		log.Printf("Low stock alerts disabled: %v", err)
		return nil
	}
	return mailer
}
