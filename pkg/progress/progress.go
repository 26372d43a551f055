// Package progress reports batch execution progress through an optional
// callback.
package progress

// Emit invokes cb once with processed clamped into [0, total]. A nil cb or
// a non-positive total does nothing, so the orchestrator can emit after
// every operation without checking whether anyone is listening.
func Emit(cb func(processed, total int), processed, total int) {
	if cb == nil || total <= 0 {
		return
	}

	if processed < 0 {
		processed = 0
	}
	if processed > total {
		processed = total
	}

	cb(processed, total)
}
