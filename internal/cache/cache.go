// Package cache stores rendered explanations in Redis, keyed by a hash of the
// normalized SQL and the rendering options.
package cache

import (
	"context"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dchest/siphash"
	"github.com/klauspost/compress/zstd"
	"github.com/redis/go-redis/v9"

	"github.com/sqlc-dev/caseprose/internal/normalize"
)

const keyPrefix = "caseprose:explanation:"

// fixed keys so that hashes are stable across processes
const (
	k0 = 0x6a09e667f3bcc908
	k1 = 0xbb67ae8584caa73b
)

// KeyOptions are the rendering settings that change the cached bytes.
type KeyOptions struct {
	Format   string
	Indent   string
	MaxDepth int
	All      bool
}

// Key derives the cache key for sql rendered with opts.
func Key(sql string, opts KeyOptions) string {
	buf := []byte(normalize.ForCacheKey(sql))
	buf = append(buf, 0)
	buf = append(buf, opts.Format...)
	buf = append(buf, 0)
	buf = append(buf, opts.Indent...)
	buf = append(buf, 0)
	buf = strconv.AppendInt(buf, int64(opts.MaxDepth), 10)
	buf = strconv.AppendBool(buf, opts.All)

	lo, hi := siphash.Hash128(k0, k1, buf)
	mem := make([]byte, 0, 16)
	mem = binary.LittleEndian.AppendUint64(mem, lo)
	mem = binary.LittleEndian.AppendUint64(mem, hi)
	return keyPrefix + base64.RawURLEncoding.EncodeToString(mem)
}

// Cache is a zstd-compressed byte cache on top of Redis. It is safe for
// concurrent use.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	enc    *zstd.Encoder
	dec    *zstd.Decoder
}

// New wraps an existing client. A zero ttl keeps entries forever.
func New(client *redis.Client, ttl time.Duration) (*Cache, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}
	return &Cache{client: client, ttl: ttl, enc: enc, dec: dec}, nil
}

// Open connects to the Redis server at url and checks it is reachable.
func Open(ctx context.Context, url string, ttl time.Duration) (*Cache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	c, err := New(client, ttl)
	if err != nil {
		client.Close()
		return nil, err
	}
	return c, nil
}

// Get returns the cached value for key. A miss is reported as ok == false
// with a nil error.
func (c *Cache) Get(ctx context.Context, key string) (value []byte, ok bool, err error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	value, err = c.dec.DecodeAll(raw, nil)
	if err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key.
func (c *Cache) Set(ctx context.Context, key string, value []byte) error {
	return c.client.Set(ctx, key, c.enc.EncodeAll(value, nil), c.ttl).Err()
}

// Close releases the codecs and the Redis client.
func (c *Cache) Close() error {
	c.dec.Close()
	if err := c.enc.Close(); err != nil {
		return err
	}
	return c.client.Close()
}
