package lru_test

import (
	"math/rand/v2"
	"testing"

	hlru "github.com/hashicorp/golang-lru"
	"github.com/mcheviron/lru"
	"github.com/stretchr/testify/require"
)

func hashicorpKeys(c *hlru.Cache) []int {
	keys := make([]int, 0, c.Len())
	for _, k := range c.Keys() {
		keys = append(keys, k.(int))
	}
	return keys
}

// With unit weights the cache must behave exactly like a count-bounded LRU.
func TestUnitWeightsMatchHashicorpLRU(t *testing.T) {
	const size = 16

	ours, err := lru.NewWithCapacity[int, int, uint](size)
	require.NoError(t, err)
	theirs, err := hlru.New(size)
	require.NoError(t, err)

	rng := rand.New(rand.NewPCG(3, 5))
	for n := 0; n < 10000; n++ {
		key := rng.IntN(3 * size)
		switch op := rng.IntN(10); {
		case op < 4:
			require.NoError(t, ours.Add(key, n))
			theirs.Add(key, n)
		case op < 7:
			got, gotOK := ours.Get(key)
			want, wantOK := theirs.Get(key)
			require.Equal(t, wantOK, gotOK, "get %d", key)
			if wantOK {
				require.Equal(t, want.(int), got, "get %d", key)
			}
		case op < 8:
			require.Equal(t, theirs.Contains(key), ours.Contains(key), "contains %d", key)
		default:
			require.Equal(t, theirs.Remove(key), ours.Remove(key), "remove %d", key)
		}

		require.Equal(t, hashicorpKeys(theirs), ours.Keys())
		require.Equal(t, uint(theirs.Len()), ours.Size())
	}
}
