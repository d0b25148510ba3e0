package monitor

import (
	"context"
	"sync"

	"github.com/linyc/twmonitor/pkg/config"
	"github.com/linyc/twmonitor/pkg/logger"
)

// fakeStore is an in-memory StateStore that counts mutations so tests
// can observe single-fire guard behavior.
type fakeStore struct {
	mu sync.Mutex

	cumulativeDrop float64
	lastBleedDay   string
	notified       map[string]struct{}
	lastResetDay   string

	clearCalls int
	writeCalls int

	failClear bool
	clearErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{notified: make(map[string]struct{})}
}

func (f *fakeStore) CumulativeDrop(ctx context.Context) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cumulativeDrop
}

func (f *fakeStore) SetCumulativeDrop(ctx context.Context, value float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cumulativeDrop = value
	f.writeCalls++
	return nil
}

func (f *fakeStore) LastBleedDay(ctx context.Context) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastBleedDay
}

func (f *fakeStore) SetLastBleedDay(ctx context.Context, day string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastBleedDay = day
	f.writeCalls++
	return nil
}

func (f *fakeStore) NotifiedToday(ctx context.Context) map[string]struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make(map[string]struct{}, len(f.notified))
	for k := range f.notified {
		out[k] = struct{}{}
	}
	return out
}

func (f *fakeStore) SetNotifiedToday(ctx context.Context, notified map[string]struct{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.notified = make(map[string]struct{}, len(notified))
	for k := range notified {
		f.notified[k] = struct{}{}
	}
	f.writeCalls++
	return nil
}

func (f *fakeStore) ClearNotifiedToday(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failClear {
		return f.clearErr
	}
	f.notified = make(map[string]struct{})
	f.clearCalls++
	f.writeCalls++
	return nil
}

func (f *fakeStore) LastResetDay(ctx context.Context) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastResetDay
}

func (f *fakeStore) SetLastResetDay(ctx context.Context, day string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastResetDay = day
	f.writeCalls++
	return nil
}

// testLogger returns a quiet logger for tests.
func testLogger() *logger.Logger {
	return logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"})
}
