package model

import (
	"fmt"
	"time"
)

// Countdown is a remaining wait decomposed into calendar units for display.
type Countdown struct {
	Days    int64
	Hours   int64
	Minutes int64
	Seconds int64
}

// NewCountdown decomposes a duration from its raw millisecond count.
func NewCountdown(d time.Duration) Countdown {
	ms := d.Milliseconds()
	if ms < 0 {
		ms = 0
	}
	return Countdown{
		Days:    ms / 86400000,
		Hours:   (ms % 86400000) / 3600000,
		Minutes: (ms % 3600000) / 60000,
		Seconds: (ms % 60000) / 1000,
	}
}

// String renders the countdown as "Xh Yj Zm Wd" (hari, jam, menit, detik).
func (c Countdown) String() string {
	return fmt.Sprintf("%dh %dj %dm %dd", c.Days, c.Hours, c.Minutes, c.Seconds)
}
