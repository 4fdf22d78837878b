package pkg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEndOfDay(t *testing.T) {
	in := time.Date(2024, 1, 10, 9, 30, 15, 0, time.UTC)
	got := EndOfDay(in)

	assert.Equal(t, time.Date(2024, 1, 10, 23, 59, 59, 0, time.UTC), got)

	// An event at 23:59:59 is inside the window, midnight of the next day
	// is not.
	last := time.Date(2024, 1, 10, 23, 59, 59, 0, time.UTC)
	next := time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)
	assert.False(t, last.After(got))
	assert.True(t, next.After(got))
}

func TestStartOfDay(t *testing.T) {
	in := time.Date(2024, 3, 5, 18, 45, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), StartOfDay(in))
}
