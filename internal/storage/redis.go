package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spigell/ats-questionnaire/internal/questionnaire"
)

const defaultKeyPrefix = "responses:"

type RedisConfig struct {
	Address   string `mapstructure:"address"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key-prefix"`
}

// RedisStore keeps the responses of a candidate under <prefix><id> without expiry.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(cfg *RedisConfig) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	return NewRedisStoreFromClient(rdb, cfg.KeyPrefix)
}

func NewRedisStoreFromClient(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}

	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Key(candidateID int) string {
	return s.prefix + strconv.Itoa(candidateID)
}

func (s *RedisStore) Save(ctx context.Context, candidateID int, responses questionnaire.Responses) error {
	data, err := json.Marshal(responses)
	if err != nil {
		return fmt.Errorf("marshal responses: %w", err)
	}

	if err := s.client.Set(ctx, s.Key(candidateID), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.Key(candidateID), err)
	}

	return nil
}

// Ping checks the connection to redis.
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
