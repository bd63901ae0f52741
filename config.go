package lru

import (
	"errors"

	gometrics "github.com/rcrowley/go-metrics"
	"github.com/sirupsen/logrus"
)

// ErrInvalidCapacity is returned by Config.Build when the capacity is zero.
var ErrInvalidCapacity = errors.New("lru: capacity must be positive")

const (
	defaultFreeListSize = 64
	defaultName         = "lru"
)

// Config holds the construction parameters of a Cache.
//
// Config is a plain struct. Set the fields you care about and pass it to New,
// which calls Build to validate it and fill in defaults.
type Config[K comparable, V any, W Weight] struct {
	// Capacity is the upper bound on the total weight held by the cache.
	// It is fixed for the lifetime of the cache.
	Capacity W

	// DefaultWeight is the weight Add assigns when no Weigher is set.
	// Zero means 1.
	DefaultWeight W

	// Weigher, if set, computes the weight of every item passed to Add.
	// AddWeight ignores it.
	Weigher func(key K, value V) W

	// OnEvict is called for every entry evicted to make room for another.
	// It is not called for Remove or Reset. The callback must not use the cache.
	OnEvict func(key K, value V)

	// FreeListSize bounds the number of released items kept for reuse.
	// Zero means 64, a negative value disables pooling.
	FreeListSize int

	// Logger receives eviction and consistency messages. Defaults to the
	// logrus standard logger.
	Logger *logrus.Entry

	// Registry receives the cache instruments. Defaults to a private registry.
	Registry gometrics.Registry

	// Name prefixes the instrument names. Defaults to "lru".
	Name string
}

// Build validates the config and returns a copy with defaults applied.
func (c Config[K, V, W]) Build() (Config[K, V, W], error) {
	if c.DefaultWeight == 0 {
		c.DefaultWeight = 1
	}
	if c.Capacity == 0 {
		return c, ErrInvalidCapacity
	}

	switch {
	case c.FreeListSize == 0:
		c.FreeListSize = defaultFreeListSize
	case c.FreeListSize < 0:
		c.FreeListSize = 0
	}

	if c.Name == "" {
		c.Name = defaultName
	}
	if c.Logger == nil {
		c.Logger = logrus.WithField("pkg", c.Name)
	}
	if c.Registry == nil {
		// Keep these metrics separate from others in the app.
		c.Registry = gometrics.NewRegistry()
	}
	return c, nil
}
