package mocks

import (
	"github.com/yahengsu/bullpen/interfaces"
	"sync"
	"time"
)

// SchedulerMock records AfterFunc calls instead of waiting on the wall clock
type SchedulerMock struct {
	mutex  sync.Mutex
	timers []*TimerMock
}

type TimerMock struct {
	Delay time.Duration

	mutex   sync.Mutex
	f       func()
	stopped bool
	fired   bool
}

func (schedulerMock *SchedulerMock) AfterFunc(d time.Duration, f func()) interfaces.Timer {
	schedulerMock.mutex.Lock()
	defer schedulerMock.mutex.Unlock()
	timer := &TimerMock{Delay: d, f: f}
	schedulerMock.timers = append(schedulerMock.timers, timer)
	return timer
}

func (schedulerMock *SchedulerMock) Timers() []*TimerMock {
	schedulerMock.mutex.Lock()
	defer schedulerMock.mutex.Unlock()
	timers := make([]*TimerMock, len(schedulerMock.timers))
	copy(timers, schedulerMock.timers)
	return timers
}

// Pending returns the timers that are neither stopped nor fired
func (schedulerMock *SchedulerMock) Pending() []*TimerMock {
	var pending []*TimerMock
	for _, timer := range schedulerMock.Timers() {
		if timer.IsPending() {
			pending = append(pending, timer)
		}
	}
	return pending
}

func (timerMock *TimerMock) Stop() bool {
	timerMock.mutex.Lock()
	defer timerMock.mutex.Unlock()
	wasPending := !timerMock.stopped && !timerMock.fired
	timerMock.stopped = true
	return wasPending
}

// Fire runs the callback unless the timer was stopped or already fired
func (timerMock *TimerMock) Fire() bool {
	timerMock.mutex.Lock()
	if timerMock.stopped || timerMock.fired {
		timerMock.mutex.Unlock()
		return false
	}
	timerMock.fired = true
	timerMock.mutex.Unlock()
	timerMock.f()
	return true
}

// Callback exposes the scheduled function to simulate a timer racing a Stop
func (timerMock *TimerMock) Callback() func() {
	return timerMock.f
}

func (timerMock *TimerMock) IsPending() bool {
	timerMock.mutex.Lock()
	defer timerMock.mutex.Unlock()
	return !timerMock.stopped && !timerMock.fired
}
