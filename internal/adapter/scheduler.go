package adapter

import (
	"time"

	"github.com/mmcdole/dojo/internal/domain"
)

// TimerScheduler runs tasks on their own timer goroutine
type TimerScheduler struct{}

// NewTimerScheduler creates a scheduler backed by time.AfterFunc
func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{}
}

// Schedule runs fn once after delay
func (TimerScheduler) Schedule(delay time.Duration, fn func()) domain.Task {
	return timerTask{time.AfterFunc(delay, fn)}
}

type timerTask struct {
	timer *time.Timer
}

// Cancel stops the timer; false if it already fired or was stopped
func (t timerTask) Cancel() bool {
	return t.timer.Stop()
}
