package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Hnibbo/hup-backend/internal/config"
	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client

// ConnectRedis initialise le client Redis (compteurs de présence, rate limiting)
func ConnectRedis(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("unable to ping redis: %w", err)
	}

	log.Println("✅ Connected to Redis successfully")

	Redis = client

	return client, nil
}
