// Package store is the typed adapter over the external key-value store.
// It is the sole access point for the monitor's persisted state; the
// evaluator and gate mutate state only through it.
//
// Read failures are treated as "absent" and return safe defaults (zero
// counter, empty set). That favors availability on store hiccups over
// strict correctness, at worst re-arming an already-sent alert.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strconv"

	goredis "github.com/redis/go-redis/v9"

	"github.com/linyc/twmonitor/pkg/logger"
	"github.com/linyc/twmonitor/pkg/redis"
)

// Persisted key names. Stable: they are the cross-invocation contract.
const (
	keyCumulativeDrop = "cumulativeTwiiDrop"
	keyLastBleedDay   = "lastProcessedDayForBleed"
	keyNotifiedToday  = "notifiedToday"
	keyLastResetDay   = "lastResetDay"
	keyLineToken      = "lineNotifyToken"
)

// Store provides typed access to the persisted monitor state.
type Store struct {
	client *redis.Client
	logger *logger.Logger
}

// New creates a Store over the given Redis client.
func New(client *redis.Client, log *logger.Logger) *Store {
	return &Store{
		client: client,
		logger: log.WithField("module", "store"),
	}
}

// CumulativeDrop returns the running multi-day benchmark loss counter.
func (s *Store) CumulativeDrop(ctx context.Context) float64 {
	raw, ok := s.get(ctx, keyCumulativeDrop)
	if !ok {
		return 0
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		s.logger.WithError(err).WithField("key", keyCumulativeDrop).Warn("Malformed value, using default")
		return 0
	}
	return value
}

// SetCumulativeDrop persists the loss counter.
func (s *Store) SetCumulativeDrop(ctx context.Context, value float64) error {
	return s.set(ctx, keyCumulativeDrop, strconv.FormatFloat(value, 'f', -1, 64))
}

// LastBleedDay returns the last day the bleed accumulation step ran,
// or "" when it has never run.
func (s *Store) LastBleedDay(ctx context.Context) string {
	raw, _ := s.get(ctx, keyLastBleedDay)
	return raw
}

// SetLastBleedDay persists the bleed accumulation guard date.
func (s *Store) SetLastBleedDay(ctx context.Context, day string) error {
	return s.set(ctx, keyLastBleedDay, day)
}

// NotifiedToday returns today's dedup set of symbol|condition keys.
func (s *Store) NotifiedToday(ctx context.Context) map[string]struct{} {
	notified := make(map[string]struct{})

	raw, ok := s.get(ctx, keyNotifiedToday)
	if !ok {
		return notified
	}

	var keys []string
	if err := json.Unmarshal([]byte(raw), &keys); err != nil {
		s.logger.WithError(err).WithField("key", keyNotifiedToday).Warn("Malformed value, using default")
		return notified
	}

	for _, k := range keys {
		notified[k] = struct{}{}
	}
	return notified
}

// SetNotifiedToday persists the dedup set.
func (s *Store) SetNotifiedToday(ctx context.Context, notified map[string]struct{}) error {
	keys := make([]string, 0, len(notified))
	for k := range notified {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	data, err := json.Marshal(keys)
	if err != nil {
		return err
	}
	return s.set(ctx, keyNotifiedToday, string(data))
}

// ClearNotifiedToday deletes the dedup set.
func (s *Store) ClearNotifiedToday(ctx context.Context) error {
	if !s.client.Enabled() {
		return nil
	}
	return s.client.Redis().Del(ctx, keyNotifiedToday).Err()
}

// LastResetDay returns the last day the dedup set was cleared,
// or "" when it never has been.
func (s *Store) LastResetDay(ctx context.Context) string {
	raw, _ := s.get(ctx, keyLastResetDay)
	return raw
}

// SetLastResetDay persists the dedup reset guard date.
func (s *Store) SetLastResetDay(ctx context.Context, day string) error {
	return s.set(ctx, keyLastResetDay, day)
}

// LineToken returns the LINE Notify token saved via the API, or "".
func (s *Store) LineToken(ctx context.Context) string {
	raw, _ := s.get(ctx, keyLineToken)
	return raw
}

// SetLineToken persists the LINE Notify token.
func (s *Store) SetLineToken(ctx context.Context, token string) error {
	return s.set(ctx, keyLineToken, token)
}

// get reads a key. The second return is false when the key is absent,
// the store is disabled, or the read failed.
func (s *Store) get(ctx context.Context, key string) (string, bool) {
	if !s.client.Enabled() {
		return "", false
	}

	raw, err := s.client.Redis().Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			s.logger.WithError(err).WithField("key", key).Warn("Store read failed, using default")
		}
		return "", false
	}
	return raw, true
}

func (s *Store) set(ctx context.Context, key, value string) error {
	if !s.client.Enabled() {
		return nil
	}
	// No TTL: values persist until explicitly overwritten.
	return s.client.Redis().Set(ctx, key, value, 0).Err()
}
