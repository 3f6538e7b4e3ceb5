package model

import (
	"testing"
	"time"
)

func TestCountdownDecomposition(t *testing.T) {
	// 1 day, 2 hours, 3 minutes, 4 seconds
	c := NewCountdown(93784000 * time.Millisecond)

	if c.Days != 1 {
		t.Errorf("Expected 1 day, got %d", c.Days)
	}
	if c.Hours != 2 {
		t.Errorf("Expected 2 hours, got %d", c.Hours)
	}
	if c.Minutes != 3 {
		t.Errorf("Expected 3 minutes, got %d", c.Minutes)
	}
	if c.Seconds != 4 {
		t.Errorf("Expected 4 seconds, got %d", c.Seconds)
	}
}

func TestCountdownString(t *testing.T) {
	c := NewCountdown(93784000 * time.Millisecond)
	if got := c.String(); got != "1h 2j 3m 4d" {
		t.Errorf("Expected '1h 2j 3m 4d', got %q", got)
	}
}

func TestCountdownNegativeClampsToZero(t *testing.T) {
	c := NewCountdown(-5 * time.Second)
	if c.Days != 0 || c.Hours != 0 || c.Minutes != 0 || c.Seconds != 0 {
		t.Errorf("Expected zero countdown for negative duration, got %+v", c)
	}
}

func TestCountdownSubMillisecondTruncation(t *testing.T) {
	c := NewCountdown(999 * time.Millisecond)
	if c.Seconds != 0 {
		t.Errorf("Expected 0 seconds for 999ms, got %d", c.Seconds)
	}
}
