package lru_test

import (
	"testing"

	"github.com/eluv-io/errors-go"
	"github.com/stretchr/testify/require"

	"github.com/arcap-io/replay-go/util/lru"
)

func TestCacheBasics(t *testing.T) {
	c := lru.New[string, int](2)

	require.False(t, c.Add("a", 1))
	require.False(t, c.Add("b", 2))
	require.Equal(t, 2, c.Len())

	v, ok := c.Get("a")
	require.True(t, ok)
	require.Equal(t, 1, v)

	// "b" is now the least recently used and gets evicted
	require.True(t, c.Add("c", 3))
	require.False(t, c.Contains("b"))
	require.True(t, c.Contains("a"))
	require.True(t, c.Contains("c"))

	_, ok = c.Get("b")
	require.False(t, ok)

	v, ok = c.Peek("c")
	require.True(t, ok)
	require.Equal(t, 3, v)

	c.Remove("a")
	require.Equal(t, 1, c.Len())

	c.Purge()
	require.Equal(t, 0, c.Len())
}

func TestCacheEvictCallback(t *testing.T) {
	var evicted []string
	c := lru.NewWithEvict[string, int](1, func(key string, value int) {
		evicted = append(evicted, key)
	})
	c.Add("a", 1)
	c.Add("b", 2)
	require.Equal(t, []string{"a"}, evicted)
}

func TestCacheGetOrCreate(t *testing.T) {
	c := lru.New[string, []byte](2)

	created := 0
	constructor := func() ([]byte, error) {
		created++
		return []byte("value"), nil
	}

	v, evicted, err := c.GetOrCreate("k", constructor)
	require.NoError(t, err)
	require.False(t, evicted)
	require.Equal(t, []byte("value"), v)
	require.Equal(t, 1, created)

	// second call is served from the cache
	v, _, err = c.GetOrCreate("k", constructor)
	require.NoError(t, err)
	require.Equal(t, []byte("value"), v)
	require.Equal(t, 1, created)

	// constructor failures are not cached
	_, _, err = c.GetOrCreate("fail", func() ([]byte, error) {
		return nil, errors.E("construct", errors.K.IO)
	})
	require.Error(t, err)
	require.False(t, c.Contains("fail"))
}

func TestNilCache(t *testing.T) {
	c := lru.Nil[string, int]()

	require.False(t, c.Add("a", 1))
	_, ok := c.Get("a")
	require.False(t, ok)
	require.Equal(t, 0, c.Len())
	require.False(t, c.Contains("a"))
	c.Remove("a")
	c.Purge()

	// a nil cache simply invokes the constructor on every call
	calls := 0
	v, evicted, err := c.GetOrCreate("a", func() (int, error) {
		calls++
		return 42, nil
	})
	require.NoError(t, err)
	require.False(t, evicted)
	require.Equal(t, 42, v)
	_, _, _ = c.GetOrCreate("a", func() (int, error) {
		calls++
		return 42, nil
	})
	require.Equal(t, 2, calls)
}

func TestCacheSizeClamped(t *testing.T) {
	c := lru.New[int, int](0)
	c.Add(1, 1)
	c.Add(2, 2)
	require.Equal(t, 1, c.Len())
}
