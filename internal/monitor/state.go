package monitor

import "context"

// StateStore is the persisted state consumed and mutated by the gate and
// the evaluator. Reads return safe defaults on failure; writes return an
// error so date-scoped guards can refuse to advance on a failed mutation.
type StateStore interface {
	CumulativeDrop(ctx context.Context) float64
	SetCumulativeDrop(ctx context.Context, value float64) error

	LastBleedDay(ctx context.Context) string
	SetLastBleedDay(ctx context.Context, day string) error

	NotifiedToday(ctx context.Context) map[string]struct{}
	SetNotifiedToday(ctx context.Context, notified map[string]struct{}) error
	ClearNotifiedToday(ctx context.Context) error

	LastResetDay(ctx context.Context) string
	SetLastResetDay(ctx context.Context, day string) error
}
