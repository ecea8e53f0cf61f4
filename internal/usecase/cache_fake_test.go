package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type fakeEntry struct {
	data      []byte
	expiresAt time.Time
}

// fakeCache is an in-memory Cache with real per-key expiry, driven by an
// injectable clock so TTL behavior is testable without sleeping.
type fakeCache struct {
	mu      sync.Mutex
	entries map[string]fakeEntry
	now     func() time.Time
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]fakeEntry), now: time.Now}
}

func (f *fakeCache) expired(e fakeEntry) bool {
	return !e.expiresAt.IsZero() && !f.now().Before(e.expiresAt)
}

func (f *fakeCache) setRaw(key string, data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[key] = fakeEntry{data: data}
}

func (f *fakeCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[key]
	if !ok || f.expired(e) {
		delete(f.entries, key)
		return false, nil
	}
	if err := json.Unmarshal(e.data, out); err != nil {
		return false, err
	}
	return true, nil
}

func (f *fakeCache) SetJSON(_ context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	e := fakeEntry{data: b}
	if ttl > 0 {
		e.expiresAt = f.now().Add(ttl)
	}
	f.entries[key] = e
	return nil
}

func (f *fakeCache) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, key)
	return nil
}

func (f *fakeCache) SetIfNotExists(_ context.Context, key string, value string, ttl time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e, ok := f.entries[key]; ok && !f.expired(e) {
		return false, nil
	}
	b, _ := json.Marshal(value)
	e := fakeEntry{data: b}
	if ttl > 0 {
		e.expiresAt = f.now().Add(ttl)
	}
	f.entries[key] = e
	return true, nil
}

func (f *fakeCache) Increment(_ context.Context, key string, expiry time.Duration) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	if e, ok := f.entries[key]; ok && !f.expired(e) {
		if err := json.Unmarshal(e.data, &n); err != nil {
			return 0, err
		}
		n++
		b, _ := json.Marshal(n)
		f.entries[key] = fakeEntry{data: b, expiresAt: e.expiresAt}
		return n, nil
	}
	n = 1
	b, _ := json.Marshal(n)
	e := fakeEntry{data: b}
	if expiry > 0 {
		e.expiresAt = f.now().Add(expiry)
	}
	f.entries[key] = e
	return n, nil
}
