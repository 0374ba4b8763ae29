package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSource_CoversRange(t *testing.T) {
	src := NewSource()

	seen := make(map[uint8]bool)
	for i := 0; i < 20000; i++ {
		v := src.Uint8()
		assert.GreaterOrEqual(t, int(v), 0)
		assert.LessOrEqual(t, int(v), 255)
		seen[v] = true
	}

	// 20k draws over 256 values leave a negligible chance of missing the ends
	assert.True(t, seen[0], "expected 0 to be drawn")
	assert.True(t, seen[255], "expected 255 to be drawn")
}

func TestFixed(t *testing.T) {
	src := Fixed(7, 0, 255)

	got := []uint8{src.Uint8(), src.Uint8(), src.Uint8(), src.Uint8()}
	assert.Equal(t, []uint8{7, 0, 255, 7}, got)
}

func TestFixed_Empty(t *testing.T) {
	src := Fixed()
	assert.Equal(t, uint8(0), src.Uint8())
	assert.Equal(t, uint8(0), src.Uint8())
}
