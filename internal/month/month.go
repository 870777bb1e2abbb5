// Package month implements the YYYY-MM partition key used for expenses and balances.
package month

import (
	"fmt"
	"time"
)

const (
	KeyLayout  = "2006-01"
	DateLayout = "2006-01-02"
)

// Key is a month partition identifier of the form YYYY-MM.
type Key string

// Of returns the key of the month containing t.
func Of(t time.Time) Key {
	return Key(t.Format(KeyLayout))
}

// Parse validates s as a YYYY-MM key.
func Parse(s string) (Key, error) {
	t, err := time.Parse(KeyLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid month %q: expected YYYY-MM", s)
	}
	return Of(t), nil
}

// FromDate derives the key of a YYYY-MM-DD date string.
func FromDate(date string) (Key, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}
	return Of(t), nil
}

// Start returns midnight on the first day of t's month, in t's location.
func Start(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// Add moves t by n calendar months, ignoring the day component.
func Add(t time.Time, n int) time.Time {
	return Start(t).AddDate(0, n, 0)
}

func (k Key) String() string {
	return string(k)
}

// Time returns the first day of the month named by k.
func (k Key) Time() (time.Time, error) {
	return time.Parse(KeyLayout, string(k))
}

// Prev returns the key of the month before k.
func (k Key) Prev() Key {
	t, err := k.Time()
	if err != nil {
		return ""
	}
	return Of(Add(t, -1))
}

// Next returns the key of the month after k.
func (k Key) Next() Key {
	t, err := k.Time()
	if err != nil {
		return ""
	}
	return Of(Add(t, 1))
}

// Label renders k as "January 2024".
func (k Key) Label() string {
	t, err := k.Time()
	if err != nil {
		return string(k)
	}
	return t.Format("January 2006")
}
