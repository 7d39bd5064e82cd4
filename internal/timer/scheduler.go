package timer

import (
	"sync"
	"time"
)

// Scheduler runs a single repeating task until the returned cancel func is called.
// Cancel must not block waiting for an in-flight task, since tasks may cancel themselves.
type Scheduler interface {
	Every(interval time.Duration, task func()) (cancel func())
}

// TickerScheduler drives tasks from a time.Ticker goroutine.
type TickerScheduler struct{}

func (TickerScheduler) Every(interval time.Duration, task func()) func() {
	if interval <= 0 {
		interval = time.Second
	}
	stopCh := make(chan struct{})
	var once sync.Once

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				task()
			}
		}
	}()

	return func() {
		once.Do(func() {
			close(stopCh)
		})
	}
}
