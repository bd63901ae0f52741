package lru

// item is a cache entry. The item and its node have a cyclic relationship:
// the node is linked into the recency queue and points back at the item.
type item[K comparable, V any, W Weight] struct {
	value  V
	key    K
	node   *node[*item[K, V, W]]
	weight W
}

func newItem[K comparable, V any, W Weight](key K, value V, weight W) *item[K, V, W] {
	i := &item[K, V, W]{}
	i.node = newNode(i)
	i.set(key, value, weight)
	return i
}

func (i *item[K, V, W]) set(key K, value V, weight W) {
	i.key = key
	i.value = value
	i.weight = weight
}

// reset drops the key and value so a pooled item holds no references.
func (i *item[K, V, W]) reset() {
	var (
		zeroK K
		zeroV V
	)
	i.key = zeroK
	i.value = zeroV
	i.weight = 0
	i.node.next = nil
	i.node.prev = nil
}
