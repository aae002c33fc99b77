package config

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

// ConnectRedis leaves RedisClient nil when Redis is not configured or unreachable.
func ConnectRedis(ctx context.Context) {
	var opt *redis.Options
	switch {
	case AppConfig.RedisURL != "":
		parsed, err := redis.ParseURL(AppConfig.RedisURL)
		if err != nil {
			log.Println("Failed to parse Redis URL:", err)
			log.Println("Running without shared token revocation")
			return
		}
		opt = parsed
	case AppConfig.RedisAddr != "":
		opt = &redis.Options{
			Addr:     AppConfig.RedisAddr,
			Password: AppConfig.RedisPassword,
			DB:       0,
		}
	default:
		log.Println("Redis not configured, running without shared token revocation")
		return
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Println("Redis connection failed:", err)
		log.Println("Running without shared token revocation")
		_ = client.Close()
		return
	}

	RedisClient = client
	log.Println("Redis connected")
}

func CloseRedis() {
	if RedisClient != nil {
		RedisClient.Close()
	}
}
