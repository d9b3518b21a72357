package store

import (
	"context"
	"encoding/json"

	"github.com/fakhrymubarak/weather-chatbot/internal/model"
	redisv9 "github.com/redis/go-redis/v9"
)

// redisStoreKey holds the whole user store as one JSON value, mirroring
// the file backend's full-rewrite contract.
const redisStoreKey = "weatherbot:users"

// RedisWriter persists the user store in redis.
type RedisWriter struct {
	client *redisv9.Client
}

func NewRedisWriter(addr string) *RedisWriter {
	return &RedisWriter{
		client: redisv9.NewClient(&redisv9.Options{Addr: addr}),
	}
}

func (w *RedisWriter) Load() (map[int64]*model.UserRecord, error) {
	val, err := w.client.Get(context.Background(), redisStoreKey).Result()
	if err != nil {
		if err == redisv9.Nil {
			return map[int64]*model.UserRecord{}, nil
		}
		return nil, err
	}
	var users map[int64]*model.UserRecord
	if err := json.Unmarshal([]byte(val), &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (w *RedisWriter) Save(users map[int64]*model.UserRecord) error {
	b, err := json.Marshal(users)
	if err != nil {
		return err
	}
	return w.client.Set(context.Background(), redisStoreKey, b, 0).Err()
}
