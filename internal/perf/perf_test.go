package perf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestElapsedNonNegative(t *testing.T) {
	s := New()
	assert.GreaterOrEqual(t, s.Elapsed(), 0.0, "Elapsed() should never be negative")
}
