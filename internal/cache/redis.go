package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisPrefix = "crew:cache:"

// Redis — общий кэш для всех экземпляров сервиса.
// Ключи таблицы дополнительно записываются в множество, чтобы их можно было сбросить разом.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

// ConnectRedis подключается и проверяет соединение.
func ConnectRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func tableSetKey(table string) string { return redisPrefix + table }

func genKey(table string) string { return redisPrefix + "gen:" + table }

func entryKey(table string, gen uint64, key string) string {
	return redisPrefix + table + ":" + strconv.FormatUint(gen, 10) + ":" + key
}

func (r *Redis) Generation(ctx context.Context, table string) (uint64, error) {
	gen, err := r.client.Get(ctx, genKey(table)).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get %s: %w", genKey(table), err)
	}
	return gen, nil
}

func (r *Redis) Get(ctx context.Context, table string, gen uint64, key string) ([]byte, bool, error) {
	data, err := r.client.Get(ctx, entryKey(table, gen, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set пишет под ключом поколения gen. Запоздавшая запись после INCR
// попадает в ключ, который уже никто не читает, и истекает по TTL.
func (r *Redis) Set(ctx context.Context, table string, gen uint64, key string, data []byte) error {
	k := entryKey(table, gen, key)
	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, k, data, r.ttl)
		p.SAdd(ctx, tableSetKey(table), k)
		return nil
	})
	return err
}

// Invalidate сначала сдвигает поколение (это и есть сброс), затем
// подчищает старые ключи. Ошибка подчистки на видимость данных не влияет.
func (r *Redis) Invalidate(ctx context.Context, tables ...string) error {
	for _, t := range tables {
		if err := r.client.Incr(ctx, genKey(t)).Err(); err != nil {
			return fmt.Errorf("redis incr %s: %w", genKey(t), err)
		}

		set := tableSetKey(t)
		keys, err := r.client.SMembers(ctx, set).Result()
		if err != nil {
			continue
		}
		keys = append(keys, set)
		_ = r.client.Del(ctx, keys...).Err()
	}
	return nil
}
