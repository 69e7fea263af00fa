package lock

import (
	"context"
	"sync"
)

// KeyedMutex serializes callers that share a key. Idle keys are dropped.
type KeyedMutex struct {
	mu    sync.Mutex
	slots map[string]*slot
}

type slot struct {
	ch      chan struct{}
	waiters int
}

// Lock blocks until the key is free or ctx is done. The returned func releases it.
func (k *KeyedMutex) Lock(ctx context.Context, key string) (func(), error) {
	k.mu.Lock()
	if k.slots == nil {
		k.slots = make(map[string]*slot)
	}
	s, ok := k.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		k.slots[key] = s
	}
	s.waiters++
	k.mu.Unlock()

	select {
	case s.ch <- struct{}{}:
	case <-ctx.Done():
		k.release(key, s, false)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() { k.release(key, s, true) })
	}, nil
}

func (k *KeyedMutex) release(key string, s *slot, held bool) {
	if held {
		<-s.ch
	}

	k.mu.Lock()
	s.waiters--
	if s.waiters == 0 {
		delete(k.slots, key)
	}
	k.mu.Unlock()
}
