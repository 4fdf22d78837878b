package pkg

import "time"

// EndOfDay extends t to the last second of its calendar day, making a
// to-date filter inclusive of the whole day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()).
		AddDate(0, 0, 1).Add(-time.Second)
}

// StartOfDay truncates t to midnight of its calendar day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysAgo returns the instant n whole days before now.
func DaysAgo(n int) time.Time {
	return time.Now().AddDate(0, 0, -n)
}
