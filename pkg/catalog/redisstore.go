package catalog

import (
	"context"

	"github.com/eko/gocache/lib/v4/cache"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/travigo/coruna-bus/pkg/ctdf"
)

const RedisKey = "coruna-bus:catalog"

type RedisStore struct {
	Cache *cache.Cache[string]
	Key   string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		Cache: cache.New[string](redisstore.NewRedis(client)),
		Key:   RedisKey,
	}
}

func (s *RedisStore) Describe() string {
	return "redis:" + s.Key
}

func (s *RedisStore) Load(ctx context.Context) (*ctdf.Catalog, error) {
	value, err := s.Cache.Get(ctx, s.Key)
	if err != nil {
		log.Debug().Err(err).Str("key", s.Key).Msg("No catalog snapshot in redis")
		return nil, nil
	}

	catalog, err := Decode([]byte(value))
	if err != nil {
		log.Warn().Err(err).Str("key", s.Key).Msg("Ignoring invalid catalog snapshot")
		return nil, nil
	}

	return catalog, nil
}

func (s *RedisStore) Save(ctx context.Context, catalog *ctdf.Catalog) error {
	data, err := Encode(catalog)
	if err != nil {
		return err
	}

	return s.Cache.Set(ctx, s.Key, string(data))
}
