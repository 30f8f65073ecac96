// Package pricing resolves and memoizes per-item drink prices.
package pricing

import (
	"math/rand"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// Source synthesizes a unit price for an item that has not been priced
// before. It is called with the cache lock held, at most once per item.
type Source func(item string, addition bool) float64

// RandomSource prices additions anywhere in [0, 5) and base drinks at a
// whole amount in [2, 9] minus one cent.
func RandomSource() Source {
	return func(item string, addition bool) float64 {
		if addition {
			return rand.Float64() * 5
		}
		return float64(rand.Intn(8)+2) - 0.01
	}
}

// Cache memoizes item prices for the lifetime of the process. Once an item
// has been priced, every later lookup returns the same value.
type Cache struct {
	mu     sync.Mutex
	prices map[string]float64
	source Source
}

// NewCache creates a cache that consults src for unseen items.
func NewCache(src Source) *Cache {
	return &Cache{prices: make(map[string]float64), source: src}
}

// Price returns the unit price for item, synthesizing and storing one on
// first access. The lookup-or-insert runs under a single lock so concurrent
// first accesses of the same item converge on one stored value.
func (c *Cache) Price(item string, addition bool) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if price, ok := c.prices[item]; ok {
		return price
	}
	price := c.source(item, addition)
	c.prices[item] = price
	return price
}

// Calculator derives order costs from cached item prices.
type Calculator struct {
	cache *Cache
}

// NewCalculator creates a calculator backed by the given cache.
func NewCalculator(cache *Cache) *Calculator {
	return &Calculator{cache: cache}
}

// Cost returns the price of the base drink plus every whitespace-separated
// addition, rounded to two decimal places.
func (c *Calculator) Cost(drinkName, additions string) float64 {
	total := decimal.NewFromFloat(c.cache.Price(drinkName, false))
	for _, item := range strings.Fields(additions) {
		total = total.Add(decimal.NewFromFloat(c.cache.Price(item, true)))
	}
	cost, _ := total.Round(2).Float64()
	return cost
}
