package progress_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fileorg/pkg/progress"
)

func TestEmit(t *testing.T) {
	t.Parallel()

	var gotProcessed, gotTotal int
	cb := func(processed, total int) {
		gotProcessed = processed
		gotTotal = total
	}

	progress.Emit(cb, 3, 10)
	assert.Equal(t, 3, gotProcessed)
	assert.Equal(t, 10, gotTotal)

	// Out-of-range values are clamped.
	progress.Emit(cb, -1, 10)
	assert.Equal(t, 0, gotProcessed)

	progress.Emit(cb, 15, 10)
	assert.Equal(t, 10, gotProcessed)
}

func TestEmit_NoOpCases(t *testing.T) {
	t.Parallel()

	// Nil callback and non-positive totals must not panic.
	progress.Emit(nil, 1, 10)

	called := false
	progress.Emit(func(int, int) { called = true }, 1, 0)
	assert.False(t, called)
}
