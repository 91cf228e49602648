package otp

import "time"

// Step is the TOTP time step in seconds. It is fixed for every credential.
const Step = 30

// Counter returns the TOTP counter for a Unix timestamp in milliseconds.
func Counter(unixMillis uint64) uint64 {
	return unixMillis / 1000 / Step
}

// TOTP derives the code for the time window containing unixMillis.
func TOTP(secret []byte, unixMillis uint64) uint32 {
	return HOTP(secret, Counter(unixMillis))
}

// RemainingFraction is the share of the current window still left. It is
// exactly 1.0 when a window starts and stays above 0 until the next one.
func RemainingFraction(unixMillis uint64) float64 {
	elapsed := (unixMillis / 1000) % Step
	return 1.0 - float64(elapsed)/float64(Step)
}

// RemainingSeconds is the whole number of seconds left in the current
// window, in [1, Step].
func RemainingSeconds(unixMillis uint64) int {
	return Step - int((unixMillis/1000)%Step)
}

// UnixMillis converts t for use with TOTP. Times before the epoch clamp to 0.
func UnixMillis(t time.Time) uint64 {
	ms := t.UnixMilli()
	if ms < 0 {
		return 0
	}
	return uint64(ms)
}
