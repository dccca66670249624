package db_test

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exercisetracker/internal/tracker/adapters/cache"
	"exercisetracker/internal/tracker/adapters/memory"
	"exercisetracker/internal/tracker/config"
	"exercisetracker/internal/tracker/db"
	"exercisetracker/internal/tracker/domain/entities"
)

func TestOpenMemory(t *testing.T) {
	ctx := context.Background()

	store, err := db.Open(ctx, &config.Config{Store: config.StoreConfig{Driver: config.DriverMemory}})

	require.NoError(t, err)
	assert.IsType(t, &memory.UserRepository{}, store.Users)
	assert.NoError(t, store.Close(ctx))
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := db.Open(context.Background(), &config.Config{Store: config.StoreConfig{Driver: "cassandra"}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), db.ErrUnknownDriver)
}

func TestOpenMongoWithoutURI(t *testing.T) {
	cfg := &config.Config{
		Store: config.StoreConfig{Driver: config.DriverMongo, ConnectRetries: 1},
	}

	_, err := db.Open(context.Background(), cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), db.ErrMongoConnection)
}

func redisConfig(t *testing.T, addr string) config.RedisConfig {
	t.Helper()
	host, portStr, _ := strings.Cut(addr, ":")
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)
	return config.RedisConfig{Enabled: true, Host: host, Port: port}
}

func TestOpenWithCache(t *testing.T) {
	ctx := context.Background()
	s := miniredis.RunT(t)

	store, err := db.Open(ctx, &config.Config{
		Store: config.StoreConfig{Driver: config.DriverMemory},
		Redis: redisConfig(t, s.Addr()),
	})
	require.NoError(t, err)
	assert.IsType(t, &cache.UserRepository{}, store.Users)

	created, err := store.Users.Create(ctx, &entities.User{Username: "alice"})
	require.NoError(t, err)
	assert.True(t, s.Exists(cache.Key(created.ID)))

	assert.NoError(t, store.Close(ctx))
}

func TestOpenWithUnreachableCache(t *testing.T) {
	ctx := context.Background()
	s := miniredis.RunT(t)
	cfg := redisConfig(t, s.Addr())
	s.Close()

	store, err := db.Open(ctx, &config.Config{
		Store: config.StoreConfig{Driver: config.DriverMemory},
		Redis: cfg,
	})

	require.NoError(t, err)
	assert.IsType(t, &memory.UserRepository{}, store.Users)
}
