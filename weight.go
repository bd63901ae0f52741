package lru

// Weight is the set of types usable as item weights and cache capacity.
type Weight interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}
