// Package cache stores raw normalized flight collections keyed by the search
// snapshot, so repeated identical searches skip the provider round trip.
// Filtering and sorting always run on the cached collection afresh.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/skyfare/skyfare/internal/models"
)

type Cache interface {
	Get(ctx context.Context, params models.SearchParams) ([]models.FlightOffer, bool)
	Set(ctx context.Context, params models.SearchParams, flights []models.FlightOffer) error
	Close() error
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Host: "localhost",
		Port: "6379",
		TTL:  5 * time.Minute,
	}
}

func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{
		client: client,
		ttl:    cfg.TTL,
	}, nil
}

func (c *RedisCache) Get(ctx context.Context, params models.SearchParams) ([]models.FlightOffer, bool) {
	data, err := c.client.Get(ctx, generateKey(params)).Bytes()
	if err != nil {
		return nil, false
	}

	var flights []models.FlightOffer
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, false
	}

	return flights, true
}

func (c *RedisCache) Set(ctx context.Context, params models.SearchParams, flights []models.FlightOffer) error {
	data, err := json.Marshal(flights)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, generateKey(params), data, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) Get(ctx context.Context, params models.SearchParams) ([]models.FlightOffer, bool) {
	return nil, false
}

func (c *NoOpCache) Set(ctx context.Context, params models.SearchParams, flights []models.FlightOffer) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}

func generateKey(params models.SearchParams) string {
	keyData := struct {
		Origin        string
		Destination   string
		DepartureDate string
		ReturnDate    string
		Passengers    int
		Class         string
	}{
		Origin:        params.Origin,
		Destination:   params.Destination,
		DepartureDate: params.DepartureDate,
		ReturnDate:    params.ReturnDate,
		Passengers:    params.Passengers,
		Class:         params.Class,
	}

	data, _ := json.Marshal(keyData)
	hash := sha256.Sum256(data)
	return "skyfare:search:" + hex.EncodeToString(hash[:])
}
