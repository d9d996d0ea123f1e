package rdx

import (
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"mestero/globals"
)

var Conn *redis.Client

func init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	if err := Conn.Ping(globals.Ctx).Err(); err != nil {
		log.Println("redis unreachable:", err)
	}
}

// SetWithExpiry stores a value under key for the given TTL.
func SetWithExpiry(key, value string, ttl time.Duration) error {
	return Conn.Set(globals.Ctx, key, value, ttl).Err()
}

// Get returns the value for key, or "" when the key is absent.
func Get(key string) (string, error) {
	val, err := Conn.Get(globals.Ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

func Del(keys ...string) error {
	return Conn.Del(globals.Ctx, keys...).Err()
}

func Exists(key string) (bool, error) {
	n, err := Conn.Exists(globals.Ctx, key).Result()
	return n > 0, err
}
