package generics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeysSlice(t *testing.T) {
	m := map[string]int{"leg": 1, "max_turn": 5, "bfs": 0}
	// Map iteration is deliberately non-deterministic, so repeat a few times.
	for range 50 {
		assert.Equal(t, []string{"bfs", "leg", "max_turn"}, KeysSlice(m))
	}
}

func TestSortedKeysAndValues(t *testing.T) {
	m := map[int]string{1: "1", 5: "5", 3: "3"}
	var keys []int
	var values []string
	for k, v := range SortedKeysAndValues(m) {
		keys = append(keys, k)
		values = append(values, v)
	}
	assert.Equal(t, []int{1, 3, 5}, keys)
	assert.Equal(t, []string{"1", "3", "5"}, values)
}

func TestSliceMap(t *testing.T) {
	got := SliceMap([]int32{1, -2, 3}, func(e int32) float32 { return float32(e) / 2 })
	assert.Equal(t, []float32{0.5, -1, 1.5}, got)
}

func TestAbsAndClamp(t *testing.T) {
	assert.Equal(t, int32(7), Abs(int32(-7)))
	assert.Equal(t, float32(0.25), Abs(float32(-0.25)))
	assert.Equal(t, int64(0), Abs(int64(0)))

	assert.Equal(t, 255.0, Clamp(300.0, 0, 255))
	assert.Equal(t, 0.0, Clamp(-3.0, 0, 255))
	assert.Equal(t, 12, Clamp(12, 0, 255))
}

func TestSet(t *testing.T) {
	s := MakeSet[int](10)
	assert.Len(t, s, 0)

	s.Insert(3, 7)
	assert.Len(t, s, 2)
	assert.True(t, s.Has(3))
	assert.True(t, s.Has(7))
	assert.False(t, s.Has(5))

	s2 := SetWith(5, 7)
	assert.Len(t, s2, 2)
	assert.True(t, s2.Has(5))
	assert.False(t, s2.Has(3))
}
