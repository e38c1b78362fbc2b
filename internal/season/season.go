package season

import (
	"strings"
	"time"
)

const (
	Winter = "winter"
	Spring = "spring"
	Summer = "summer"
	Autumn = "autumn"
)

var all = []string{Winter, Spring, Summer, Autumn}

// ForMonth maps a month to its northern-hemisphere season, which is what
// the Tunisian agricultural calendar uses.
func ForMonth(m time.Month) string {
	switch m {
	case time.December, time.January, time.February:
		return Winter
	case time.March, time.April, time.May:
		return Spring
	case time.June, time.July, time.August:
		return Summer
	default:
		return Autumn
	}
}

func ForDate(t time.Time) string {
	return ForMonth(t.Month())
}

func IsValid(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, known := range all {
		if s == known {
			return true
		}
	}
	return false
}

func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
