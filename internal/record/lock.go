package record

import "context"

// chanMutex is a mutex whose Lock gives up when the caller's context is done.
// A one-slot channel holds the token; whoever holds the token owns the lock.
type chanMutex struct {
	token chan struct{}
}

func newChanMutex() chanMutex {
	m := chanMutex{token: make(chan struct{}, 1)}
	m.token <- struct{}{}
	return m
}

// Lock waits for the token or for ctx to be done, whichever comes first.
// A nil error means the caller owns the lock and must call Unlock.
func (m chanMutex) Lock(ctx context.Context) error {
	select {
	case <-m.token:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Unlock returns the token. Unlocking an unlocked chanMutex blocks forever,
// the same misuse sync.Mutex reports as a fatal error.
func (m chanMutex) Unlock() {
	m.token <- struct{}{}
}
