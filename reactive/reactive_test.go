package reactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueIgnoresEqualWrites(t *testing.T) {
	s := NewValue(3)
	v := s.Version()
	assert.False(t, s.Set(3))
	assert.Equal(t, v, s.Version())
	assert.True(t, s.Set(4))
	assert.Greater(t, s.Version(), v)
}

func TestSignalCountsEveryWrite(t *testing.T) {
	s := NewSignal([]int{1})
	v := s.Version()
	assert.True(t, s.Set([]int{1}))
	assert.Greater(t, s.Version(), v)
}

func TestComputedIsLazyAndMemoised(t *testing.T) {
	a := NewValue(2)
	b := NewValue(5)
	sum := NewComputed(func() int { return a.Get() + b.Get() }, a, b)

	assert.Equal(t, 0, sum.Runs())
	assert.Equal(t, 7, sum.Get())
	assert.Equal(t, 7, sum.Get())
	assert.Equal(t, 1, sum.Runs())

	a.Set(10)
	assert.Equal(t, 1, sum.Runs(), "recompute happens on read, not on write")
	assert.Equal(t, 15, sum.Get())
	assert.Equal(t, 2, sum.Runs())
}

func TestComputedChains(t *testing.T) {
	n := NewValue(1)
	double := NewComputed(func() int { return n.Get() * 2 }, n)
	plusOne := NewComputed(func() int { return double.Get() + 1 }, double)

	assert.Equal(t, 3, plusOne.Get())
	n.Set(4)
	assert.Equal(t, 9, plusOne.Get())
}

func TestTriggerForcesRerun(t *testing.T) {
	height := NewValue(100)
	trigger := NewValue(0)
	calls := 0
	c := NewComputed(func() int { calls++; return height.Get() }, height, trigger)

	c.Get()
	height.Set(100)
	c.Get()
	assert.Equal(t, 1, calls)

	trigger.Update(func(v int) int { return v + 1 })
	c.Get()
	assert.Equal(t, 2, calls)
}
