package lru

// freeList pools items released by eviction and removal so Add can reuse
// them. Items are reset before they are pooled.
type freeList[K comparable, V any, W Weight] struct {
	items []*item[K, V, W]
}

func newFreeList[K comparable, V any, W Weight](size int) freeList[K, V, W] {
	return freeList[K, V, W]{
		items: make([]*item[K, V, W], 0, size),
	}
}

func (f *freeList[K, V, W]) get() *item[K, V, W] {
	if len(f.items) == 0 {
		return nil
	}

	i := f.items[len(f.items)-1]
	f.items[len(f.items)-1] = nil
	f.items = f.items[:len(f.items)-1]
	return i
}

// put pools i unless the list is already full.
func (f *freeList[K, V, W]) put(i *item[K, V, W]) bool {
	if len(f.items) == cap(f.items) {
		return false
	}
	i.reset()
	f.items = append(f.items, i)
	return true
}

func (f *freeList[K, V, W]) len() int {
	return len(f.items)
}

func (f *freeList[K, V, W]) cap() int {
	return cap(f.items)
}
