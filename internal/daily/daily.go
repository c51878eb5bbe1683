// internal/daily/daily.go
//
// Date arithmetic for the riddle rotation.
// Every date is handled as a UTC calendar day.

package daily

import "time"

// Epoch is day 0 of the rotation.
var Epoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// ParseDateKey is the inverse of DateKey.
func ParseDateKey(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.UTC)
}

// Midnight truncates t to the start of its UTC day.
func Midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysSinceEpoch may be negative for dates before the epoch.
func DaysSinceEpoch(date time.Time) int {
	return int(Midnight(date).Sub(Epoch) / (24 * time.Hour))
}

// DayNumber maps date onto a rotation of n riddles. n must be positive.
func DayNumber(date time.Time, n int) int {
	return ((DaysSinceEpoch(date) % n) + n) % n
}

// EffectiveDate is today's UTC date, or Epoch+offset days when an offset is given.
func EffectiveDate(now time.Time, offset *int) time.Time {
	if offset != nil {
		return Epoch.AddDate(0, 0, *offset)
	}
	return Midnight(now)
}

// NextReset is the UTC midnight that ends date.
func NextReset(date time.Time) time.Time {
	return Midnight(date).AddDate(0, 0, 1)
}
