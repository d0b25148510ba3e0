package monitor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGate_ResetIfNewDay(t *testing.T) {
	store := newFakeStore()
	store.notified["^TWII|panic_sell"] = struct{}{}
	store.lastResetDay = "2026-08-25"

	gate := NewGate(store, testLogger())
	gate.ResetIfNewDay(context.Background(), "2026-08-26")

	assert.Empty(t, store.notified, "dedup set must be cleared")
	assert.Equal(t, "2026-08-26", store.lastResetDay)
	assert.Equal(t, 1, store.clearCalls)
}

func TestGate_ResetFiresOnlyOncePerDay(t *testing.T) {
	store := newFakeStore()
	gate := NewGate(store, testLogger())

	gate.ResetIfNewDay(context.Background(), "2026-08-26")
	writesAfterFirst := store.writeCalls

	// a second idle-period invocation on the same day must not mutate
	gate.ResetIfNewDay(context.Background(), "2026-08-26")

	assert.Equal(t, 1, store.clearCalls)
	assert.Equal(t, writesAfterFirst, store.writeCalls, "no writes on the second call")
}

func TestGate_FailedClearDoesNotAdvanceGuard(t *testing.T) {
	store := newFakeStore()
	store.failClear = true
	store.clearErr = errors.New("store unavailable")
	store.lastResetDay = "2026-08-25"

	gate := NewGate(store, testLogger())
	gate.ResetIfNewDay(context.Background(), "2026-08-26")

	// guard stays on the old day so the clear is retried next invocation
	assert.Equal(t, "2026-08-25", store.lastResetDay)

	store.failClear = false
	gate.ResetIfNewDay(context.Background(), "2026-08-26")
	assert.Equal(t, "2026-08-26", store.lastResetDay)
	assert.Equal(t, 1, store.clearCalls)
}
