package dashboard

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChartCacheStoresEntry(t *testing.T) {
	cache := NewChartCache(10 * time.Millisecond)
	calls := 0
	render := func() (string, error) {
		calls++
		return "html", nil
	}

	val1, err := cache.ChartHTML("key", render)
	require.NoError(t, err)
	val2, err := cache.ChartHTML("key", render)
	require.NoError(t, err)

	assert.Equal(t, "html", val1)
	assert.Equal(t, val1, val2)
	assert.Equal(t, 1, calls)
}

func TestChartCacheExpires(t *testing.T) {
	cache := NewChartCache(2 * time.Millisecond)
	calls := 0
	render := func() (string, error) {
		calls++
		return "fresh", nil
	}

	_, err := cache.ChartHTML("key", render)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = cache.ChartHTML("key", render)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
}

func TestChartCacheRenderErrorNotCached(t *testing.T) {
	cache := NewChartCache(time.Minute)
	calls := 0
	failing := func() (string, error) {
		calls++
		return "", errors.New("render failed")
	}

	_, err := cache.ChartHTML("key", failing)
	require.Error(t, err)
	_, err = cache.ChartHTML("key", failing)
	require.Error(t, err)
	assert.Equal(t, 2, calls)
}

func TestChartCacheZeroTTLDisablesCaching(t *testing.T) {
	cache := NewChartCache(0)
	calls := 0
	render := func() (string, error) {
		calls++
		return "html", nil
	}

	_, err := cache.ChartHTML("key", render)
	require.NoError(t, err)
	_, err = cache.ChartHTML("key", render)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestChartKeyDeterministic(t *testing.T) {
	a := chartKey(map[string]any{"user": "u1", "days": 30})
	b := chartKey(map[string]any{"days": 30, "user": "u1"})
	c := chartKey(map[string]any{"user": "u2", "days": 30})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, "empty", chartKey(nil))
}
