package lru

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

var (
	// ErrItemTooLarge is returned by Add when a single item weighs more than
	// the whole cache. Such an item can never be admitted.
	ErrItemTooLarge = errors.New("lru: item weight exceeds cache capacity")

	// ErrCacheTooSmall is returned by Add when evicting every other entry
	// would still not make room. It means the weight accounting is broken.
	ErrCacheTooSmall = errors.New("lru: nothing left to evict")
)

// Cache is a size-aware LRU cache.
//
// Every entry has a weight, one unit unless configured otherwise, and the
// total weight never exceeds the capacity. Add evicts least recently used
// entries until the new one fits.
//
// Concurrency:
//
// Cache is not safe for concurrent use. Guard it with a mutex if it is shared
// between goroutines.
//
// Returned values:
//
// Get and Peek return copies of the stored values. No handle to an entry
// outlives the call that produced it.
type Cache[K comparable, V any, W Weight] struct {
	cfg      Config[K, V, W]
	capacity W

	store *store[K, V, W]
	order *queue[*item[K, V, W]]
	free  freeList[K, V, W]

	metrics *instruments
	log     *logrus.Entry
}

// New constructs a cache from the provided config.
//
// New calls config.Build() internally.
func New[K comparable, V any, W Weight](config Config[K, V, W]) (*Cache[K, V, W], error) {
	cfg, err := config.Build()
	if err != nil {
		return nil, err
	}

	return &Cache[K, V, W]{
		cfg:      cfg,
		capacity: cfg.Capacity,
		store:    newStore[K, V, W](),
		order:    newQueue[*item[K, V, W]](),
		free:     newFreeList[K, V, W](cfg.FreeListSize),
		metrics:  newInstruments(cfg.Registry, cfg.Name),
		log:      cfg.Logger,
	}, nil
}

// NewWithCapacity constructs a cache holding at most capacity units of weight,
// where every item added with Add weighs one unit.
func NewWithCapacity[K comparable, V any, W Weight](capacity W) (*Cache[K, V, W], error) {
	return New(Config[K, V, W]{Capacity: capacity})
}

// Add inserts or replaces key, weighing the value with Config.Weigher or,
// if none is set, Config.DefaultWeight.
func (c *Cache[K, V, W]) Add(key K, value V) error {
	weight := c.cfg.DefaultWeight
	if c.cfg.Weigher != nil {
		weight = c.cfg.Weigher(key, value)
	}
	return c.AddWeight(key, value, weight)
}

// AddWeight inserts or replaces key with an explicit weight and marks it as
// the most recently used entry.
//
// Replacing a resident key releases its old weight first, so only the new
// weight has to fit. On error the cache is left untouched.
func (c *Cache[K, V, W]) AddWeight(key K, value V, weight W) error {
	if weight > c.capacity {
		return fmt.Errorf("%w: key %v weighs %d, capacity is %d", ErrItemTooLarge, key, weight, c.capacity)
	}

	existing, resident := c.store.get(key)
	used := c.store.totalWeight()
	if resident {
		used -= existing.weight
	}

	victims, err := c.planEviction(existing, used, c.capacity-weight)
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"key":      key,
			"weight":   weight,
			"size":     c.store.totalWeight(),
			"capacity": c.capacity,
			"entries":  c.order.len(),
		}).Warn("Weight accounting left nothing to evict")
		return fmt.Errorf("%w: key %v weighs %d with %d of %d in use", ErrCacheTooSmall, key, weight, used, c.capacity)
	}

	for ; victims > 0; victims-- {
		n := c.order.front()
		if n.value == existing {
			n = n.next
		}
		c.evict(n.value)
	}

	if resident {
		c.store.replace(existing, value, weight)
		c.order.touch(existing.node)
	} else {
		i := c.free.get()
		if i == nil {
			i = newItem(key, value, weight)
		} else {
			i.set(key, value, weight)
		}
		c.store.put(i)
		c.order.touch(i.node)
	}

	c.metrics.update(uint64(c.store.totalWeight()), c.store.len())
	return nil
}

// planEviction counts how many entries, taken from the least recently used
// end and skipping keep, must go before used drops to limit. Nothing is
// mutated, so a failed plan leaves the cache as it was.
func (c *Cache[K, V, W]) planEviction(keep *item[K, V, W], used, limit W) (int, error) {
	victims := 0
	for n := c.order.front(); used > limit; n = n.next {
		if n == nil {
			return 0, ErrCacheTooSmall
		}
		if n.value == keep {
			continue
		}
		used -= n.value.weight
		victims++
	}
	return victims, nil
}

func (c *Cache[K, V, W]) evict(i *item[K, V, W]) {
	key, value, weight := i.key, i.value, i.weight
	c.removeItem(i)
	c.metrics.evictions.Inc(1)

	if c.log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		c.log.WithFields(logrus.Fields{
			"key":    key,
			"weight": weight,
		}).Debug("Evicted entry")
	}
	if c.cfg.OnEvict != nil {
		c.cfg.OnEvict(key, value)
	}
}

// removeItem unlinks i from both the store and the recency queue.
// It is the only place an entry leaves the cache.
func (c *Cache[K, V, W]) removeItem(i *item[K, V, W]) {
	c.store.remove(i.key)
	c.order.remove(i.node)
	c.free.put(i)
}

// Get returns the value for key and marks it as the most recently used entry.
//
// A miss returns the zero value and false, and does not change the order.
func (c *Cache[K, V, W]) Get(key K) (V, bool) {
	i, ok := c.store.get(key)
	if !ok {
		c.metrics.misses.Inc(1)
		var zero V
		return zero, false
	}

	c.order.touch(i.node)
	c.metrics.hits.Inc(1)
	return i.value, true
}

// Peek returns the value for key without updating its recency.
func (c *Cache[K, V, W]) Peek(key K) (V, bool) {
	i, ok := c.store.get(key)
	if !ok {
		var zero V
		return zero, false
	}
	return i.value, true
}

// Touch marks key as the most recently used entry. It reports whether key
// was present; touching an absent key does nothing.
func (c *Cache[K, V, W]) Touch(key K) bool {
	i, ok := c.store.get(key)
	if !ok {
		return false
	}
	c.order.touch(i.node)
	return true
}

// Contains reports whether key is present without updating its recency.
func (c *Cache[K, V, W]) Contains(key K) bool {
	_, ok := c.store.get(key)
	return ok
}

// Remove deletes key if present and reports whether it was.
func (c *Cache[K, V, W]) Remove(key K) bool {
	i, ok := c.store.get(key)
	if !ok {
		return false
	}
	c.removeItem(i)
	c.metrics.update(uint64(c.store.totalWeight()), c.store.len())
	return true
}

// Reset removes every entry. OnEvict is not called.
func (c *Cache[K, V, W]) Reset() {
	c.order.clear()
	c.store.clear()
	c.metrics.update(0, 0)
}

// Size returns the total weight of the entries in the cache.
func (c *Cache[K, V, W]) Size() W {
	return c.store.totalWeight()
}

// Len returns the number of entries in the cache.
func (c *Cache[K, V, W]) Len() int {
	return c.store.len()
}

// Capacity returns the maximum total weight.
func (c *Cache[K, V, W]) Capacity() W {
	return c.capacity
}

// Keys returns the keys from least to most recently used.
func (c *Cache[K, V, W]) Keys() []K {
	keys := make([]K, 0, c.order.len())
	c.order.each(func(i *item[K, V, W]) bool {
		keys = append(keys, i.key)
		return true
	})
	return keys
}

// Oldest returns the least recently used entry without touching it.
func (c *Cache[K, V, W]) Oldest() (K, V, bool) {
	n := c.order.front()
	if n == nil {
		var (
			zeroK K
			zeroV V
		)
		return zeroK, zeroV, false
	}
	return n.value.key, n.value.value, true
}

// Stats returns the current counters. Caches sharing a registry and a name
// share their hit, miss and eviction counts.
func (c *Cache[K, V, W]) Stats() Stats[W] {
	return Stats[W]{
		Hits:      c.metrics.hits.Count(),
		Misses:    c.metrics.misses.Count(),
		Evictions: c.metrics.evictions.Count(),
		Weight:    c.store.totalWeight(),
		Len:       c.store.len(),
	}
}
