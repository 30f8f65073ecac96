package pricing

import (
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// countingSource returns a distinct value on every invocation so any
// second synthesis for the same item becomes visible.
func countingSource(calls *int) Source {
	return func(item string, addition bool) float64 {
		*calls++
		return float64(*calls)
	}
}

func TestCachePriceMemoized(t *testing.T) {
	calls := 0
	c := NewCache(countingSource(&calls))

	first := c.Price("latte", false)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, c.Price("latte", false))
	}
	assert.Equal(t, 1, calls)

	other := c.Price("sugar", true)
	assert.NotEqual(t, first, other)
	assert.Equal(t, 2, calls)
}

func TestCachePriceConcurrentSingleWinner(t *testing.T) {
	calls := 0
	c := NewCache(countingSource(&calls))

	const n = 64
	prices := make([]float64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			prices[i] = c.Price("mocha", false)
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		assert.Equal(t, prices[0], prices[i])
	}
	assert.Equal(t, 1, calls)
}

func TestCalculatorCost(t *testing.T) {
	c := NewCalculator(NewCache(func(item string, addition bool) float64 {
		if addition {
			return 1.25
		}
		return 2.5
	}))

	assert.Equal(t, 2.5, c.Cost("latte", ""))
	assert.Equal(t, 3.75, c.Cost("latte", "sugar"))
	assert.Equal(t, 5.0, c.Cost("latte", "sugar milk"))
	// Extra whitespace yields no phantom addition tokens.
	assert.Equal(t, 5.0, c.Cost("latte", "  sugar   milk "))
}

func TestCalculatorRoundsToTwoDecimals(t *testing.T) {
	c := NewCalculator(NewCache(func(item string, addition bool) float64 {
		return 1.111
	}))

	assert.Equal(t, 3.33, c.Cost("latte", "sugar milk"))

	up := NewCalculator(NewCache(func(item string, addition bool) float64 {
		return 1.115
	}))
	assert.Equal(t, 2.23, up.Cost("latte", "sugar"))
}

func TestCalculatorDeterministicPerCache(t *testing.T) {
	c := NewCalculator(NewCache(RandomSource()))
	first := c.Cost("latte", "sugar milk")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, c.Cost("latte", "sugar milk"))
	}
}

func TestRandomSourceDistribution(t *testing.T) {
	src := RandomSource()
	for i := 0; i < 100; i++ {
		item := fmt.Sprintf("item-%d", i)

		drink := src(item, false)
		assert.GreaterOrEqual(t, drink, 2.0-0.01)
		assert.LessOrEqual(t, drink, 9.0-0.01)
		whole := drink + 0.01
		assert.InDelta(t, math.Round(whole), whole, 1e-9, "drink price must be a whole amount minus one cent")

		add := src(item, true)
		assert.GreaterOrEqual(t, add, 0.0)
		assert.Less(t, add, 5.0)
	}
}
