package testutil

import (
	"context"
	"sync"

	"taskpad/internal/kv"
)

// FaultyKV wraps a kv.Store and injects errors.
type FaultyKV struct {
	kv.Store

	mu     sync.Mutex
	getErr error
	setErr error
	sets   int
}

// NewFaultyKV wraps an empty in-memory store.
func NewFaultyKV() *FaultyKV {
	return &FaultyKV{Store: kv.NewMemory()}
}

// FailGet makes Get return err. nil restores normal behavior.
func (f *FaultyKV) FailGet(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getErr = err
}

// FailSet makes Set return err. nil restores normal behavior.
func (f *FaultyKV) FailSet(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setErr = err
}

// Sets returns the number of Set calls, failed ones included.
func (f *FaultyKV) Sets() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sets
}

// Get implements kv.Store.
func (f *FaultyKV) Get(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	err := f.getErr
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return f.Store.Get(ctx, key)
}

// Set implements kv.Store.
func (f *FaultyKV) Set(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	f.sets++
	err := f.setErr
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.Store.Set(ctx, key, value)
}
