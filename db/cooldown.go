package db

import (
	"database/sql"
	"time"

	"jadwalbot/config"
)

// CooldownWindow is the minimum elapsed time between a user's approved uploads.
const CooldownWindow = 7 * 24 * time.Hour

// lastApprovedAt returns the stored approval timestamp for a user in epoch
// milliseconds. The second return value is false if the user has no record.
func lastApprovedAt(userID string) (int64, bool, error) {
	var ms int64
	err := DB.QueryRow("SELECT last_approved_at FROM cooldowns WHERE user_id = ?", userID).Scan(&ms)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, false, nil
		}
		return 0, false, err
	}
	return ms, true, nil
}

// IsEligible reports whether a user may submit a new upload at the given time.
// Users with no approval record are always eligible, and the configured
// administrator is exempt from the cooldown entirely.
func IsEligible(userID string, now time.Time) (bool, error) {
	if userID == config.Cfg.Commands.Auth.AdminID {
		return true, nil
	}

	last, found, err := lastApprovedAt(userID)
	if err != nil {
		return false, err
	}
	if !found {
		return true, nil
	}

	return now.UnixMilli()-last >= CooldownWindow.Milliseconds(), nil
}

// RecordApproval upserts the user's last approval timestamp. The write is
// committed before this returns, so callers may report the approval as
// complete once the error is nil.
func RecordApproval(userID string, now time.Time) error {
	_, err := DB.Exec(
		"INSERT INTO cooldowns (user_id, last_approved_at) VALUES (?, ?) ON CONFLICT(user_id) DO UPDATE SET last_approved_at = excluded.last_approved_at",
		userID, now.UnixMilli(),
	)
	return err
}

// TimeRemaining returns how long an ineligible user still has to wait.
// Returns zero for users who are already eligible.
func TimeRemaining(userID string, now time.Time) (time.Duration, error) {
	last, found, err := lastApprovedAt(userID)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, nil
	}

	remaining := CooldownWindow.Milliseconds() - (now.UnixMilli() - last)
	if remaining < 0 {
		remaining = 0
	}
	return time.Duration(remaining) * time.Millisecond, nil
}
