package cache

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(mr.Close)
	return mr, client
}

func TestKey(t *testing.T) {
	opts := KeyOptions{Format: "text", Indent: "\t", MaxDepth: 256}

	a := Key("CASE WHEN a THEN 1 END", opts)
	assert.True(t, strings.HasPrefix(a, keyPrefix))
	assert.Equal(t, a, Key("CASE  WHEN a -- note\n THEN 1 END;", opts))

	assert.NotEqual(t, a, Key("CASE WHEN b THEN 1 END", opts))
	assert.NotEqual(t, a, Key("CASE WHEN a THEN 1 END", KeyOptions{Format: "json", Indent: "\t", MaxDepth: 256}))
	assert.NotEqual(t, a, Key("CASE WHEN a THEN 1 END", KeyOptions{Format: "text", Indent: "  ", MaxDepth: 256}))
	assert.NotEqual(t, a, Key("CASE WHEN a THEN 1 END", KeyOptions{Format: "text", Indent: "\t", MaxDepth: 256, All: true}))
}

func TestGetSet(t *testing.T) {
	mr, client := setupTestRedis(t)
	c, err := New(client, time.Minute)
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	key := Key("CASE WHEN a THEN 1 END", KeyOptions{Format: "text"})

	_, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	value := []byte(strings.Repeat("Condition 1: IF\n\tTHEN return 1\n", 50))
	require.NoError(t, c.Set(ctx, key, value))

	stored, err := mr.Get(key)
	require.NoError(t, err)
	assert.Less(t, len(stored), len(value), "payload should be compressed")

	got, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, bytes.Equal(value, got))

	mr.FastForward(2 * time.Minute)
	_, ok, err = c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetCorruptEntry(t *testing.T) {
	mr, client := setupTestRedis(t)
	c, err := New(client, 0)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, mr.Set("caseprose:explanation:bad", "not zstd"))
	_, ok, err := c.Get(context.Background(), "caseprose:explanation:bad")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestOpen(t *testing.T) {
	mr, _ := setupTestRedis(t)

	c, err := Open(context.Background(), "redis://"+mr.Addr()+"/0", time.Hour)
	require.NoError(t, err)
	require.NoError(t, c.Close())

	_, err = Open(context.Background(), "not a url", time.Hour)
	assert.Error(t, err)
}
