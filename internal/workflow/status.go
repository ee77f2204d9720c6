package workflow

import (
	"sync"
	"time"
)

const defaultClearDelay = 3 * time.Second

// StatusBoard holds the transient banners a view renders. Success messages
// auto-clear after the configured delay; error messages stay until the
// next action resets them.
type StatusBoard struct {
	mu         sync.Mutex
	success    string
	failure    string
	clearDelay time.Duration
	timer      *time.Timer
}

func NewStatusBoard(clearDelay time.Duration) *StatusBoard {
	if clearDelay <= 0 {
		clearDelay = defaultClearDelay
	}
	return &StatusBoard{clearDelay: clearDelay}
}

func (b *StatusBoard) Success(msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.success = msg
	b.failure = ""
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.clearDelay, func() {
		b.mu.Lock()
		b.success = ""
		b.mu.Unlock()
	})
}

func (b *StatusBoard) Error(msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failure = msg
	b.success = ""
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}

// Reset clears both banners; every new action starts from a clean board.
func (b *StatusBoard) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.success = ""
	b.failure = ""
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}

// Messages returns the current banners: at most one is non-empty.
func (b *StatusBoard) Messages() (success, failure string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.success, b.failure
}
