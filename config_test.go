package lru_test

import (
	"testing"

	"github.com/mcheviron/lru"
	gometrics "github.com/rcrowley/go-metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigBuildDefaults(t *testing.T) {
	cfg, err := lru.Config[string, int, uint]{Capacity: 8}.Build()
	require.NoError(t, err)

	assert.Equal(t, uint(8), cfg.Capacity)
	assert.Equal(t, uint(1), cfg.DefaultWeight)
	assert.Equal(t, 64, cfg.FreeListSize)
	assert.Equal(t, "lru", cfg.Name)
	assert.NotNil(t, cfg.Logger)
	assert.NotNil(t, cfg.Registry)
}

func TestConfigBuildKeepsExplicitValues(t *testing.T) {
	registry := gometrics.NewRegistry()
	cfg, err := lru.Config[string, int, uint]{
		Capacity:      8,
		DefaultWeight: 2,
		FreeListSize:  -1,
		Name:          "sessions",
		Registry:      registry,
	}.Build()
	require.NoError(t, err)

	assert.Equal(t, uint(2), cfg.DefaultWeight)
	assert.Equal(t, 0, cfg.FreeListSize)
	assert.Equal(t, "sessions", cfg.Name)
	assert.Same(t, registry, cfg.Registry)
}

func TestConfigBuildRejectsZeroCapacity(t *testing.T) {
	_, err := lru.Config[string, int, uint]{}.Build()

	assert.ErrorIs(t, err, lru.ErrInvalidCapacity)
}

func TestInstrumentsArePublishedToRegistry(t *testing.T) {
	registry := gometrics.NewRegistry()
	c, err := lru.New(lru.Config[string, int, uint]{Capacity: 1, Name: "users", Registry: registry})
	require.NoError(t, err)

	require.NoError(t, c.Add("a", 1))
	require.NoError(t, c.Add("b", 2))
	c.Get("b")
	c.Get("a")

	assert.Equal(t, int64(1), registry.Get("users.hits").(gometrics.Counter).Count())
	assert.Equal(t, int64(1), registry.Get("users.misses").(gometrics.Counter).Count())
	assert.Equal(t, int64(1), registry.Get("users.evictions").(gometrics.Counter).Count())
	assert.Equal(t, int64(1), registry.Get("users.weight").(gometrics.Gauge).Value())
	assert.Equal(t, int64(1), registry.Get("users.len").(gometrics.Gauge).Value())

	c.Reset()
	assert.Equal(t, int64(0), registry.Get("users.weight").(gometrics.Gauge).Value())
}

func TestCachesWithSameNameShareCounters(t *testing.T) {
	registry := gometrics.NewRegistry()
	cfg := lru.Config[string, int, uint]{Capacity: 4, Name: "shared", Registry: registry}
	first, err := lru.New(cfg)
	require.NoError(t, err)
	second, err := lru.New(cfg)
	require.NoError(t, err)

	first.Get("x")
	second.Get("y")

	assert.Equal(t, int64(2), first.Stats().Misses)
	assert.Equal(t, int64(2), second.Stats().Misses)
}
