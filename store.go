package lru

// store maps keys to items and keeps a running total of their weights.
// Capacity is not checked here; the cache does that before calling put.
type store[K comparable, V any, W Weight] struct {
	items  map[K]*item[K, V, W]
	weight W
}

func newStore[K comparable, V any, W Weight]() *store[K, V, W] {
	return &store[K, V, W]{items: make(map[K]*item[K, V, W])}
}

func (s *store[K, V, W]) len() int {
	return len(s.items)
}

func (s *store[K, V, W]) get(key K) (*item[K, V, W], bool) {
	i, ok := s.items[key]
	return i, ok
}

// put stores i under its key and returns the item it replaced, if any.
func (s *store[K, V, W]) put(i *item[K, V, W]) *item[K, V, W] {
	old := s.items[i.key]
	if old != nil {
		s.weight -= old.weight
	}
	s.items[i.key] = i
	s.weight += i.weight
	return old
}

func (s *store[K, V, W]) remove(key K) *item[K, V, W] {
	i, ok := s.items[key]
	if !ok {
		return nil
	}
	delete(s.items, key)
	s.weight -= i.weight
	return i
}

func (s *store[K, V, W]) totalWeight() W {
	return s.weight
}

func (s *store[K, V, W]) clear() {
	s.items = make(map[K]*item[K, V, W])
	s.weight = 0
}

// replace swaps the value and weight of a resident item in place.
// The old weight is released before the new one is counted.
func (s *store[K, V, W]) replace(i *item[K, V, W], value V, weight W) {
	s.weight -= i.weight
	i.value = value
	i.weight = weight
	s.weight += weight
}
