package dashboard

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"
)

// RenderCache returns chart HTML for a history window, rendering on a miss.
// Keys cover every input that changes the drawing: user, day span, series.
type RenderCache interface {
	ChartHTML(key string, render func() (string, error)) (string, error)
}

// ChartCache memoizes rendered portfolio charts for a TTL so repeated
// dashboard loads inside the window skip the echarts renderer. A zero or
// negative TTL disables caching and every call renders.
type ChartCache struct {
	ttl time.Duration

	mu     sync.RWMutex
	charts map[string]chartEntry
}

type chartEntry struct {
	html    string
	staleAt time.Time
}

// NewChartCache builds a cache whose entries expire after ttl.
func NewChartCache(ttl time.Duration) *ChartCache {
	return &ChartCache{
		ttl:    ttl,
		charts: make(map[string]chartEntry),
	}
}

// ChartHTML serves a fresh cached chart or renders and stores a new one.
// Render failures are never cached.
func (c *ChartCache) ChartHTML(key string, render func() (string, error)) (string, error) {
	if c != nil && c.ttl > 0 {
		c.mu.RLock()
		entry, ok := c.charts[key]
		c.mu.RUnlock()
		if ok {
			if time.Now().Before(entry.staleAt) {
				return entry.html, nil
			}
			c.mu.Lock()
			delete(c.charts, key)
			c.mu.Unlock()
		}
	}
	html, err := render()
	if err != nil {
		return "", err
	}
	if c != nil && c.ttl > 0 {
		c.mu.Lock()
		c.charts[key] = chartEntry{html: html, staleAt: time.Now().Add(c.ttl)}
		c.mu.Unlock()
	}
	return html, nil
}

// chartKey folds the render inputs into a stable cache key. Marshaling a map
// sorts its keys, so equal inputs hash equally regardless of insertion order.
func chartKey(parts map[string]any) string {
	if len(parts) == 0 {
		return "empty"
	}
	b, err := json.Marshal(parts)
	if err != nil {
		return "invalid"
	}
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:])
}
