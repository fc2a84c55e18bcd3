package service

import (
	"fmt"
	"strings"
	"time"
)

// weekdayLabels maps canonical weekday names to their Portuguese
// display labels.
var weekdayLabels = map[string]string{
	"Monday":    "Segunda-feira",
	"Tuesday":   "Terça-feira",
	"Wednesday": "Quarta-feira",
	"Thursday":  "Quinta-feira",
	"Friday":    "Sexta-feira",
	"Saturday":  "Sábado",
	"Sunday":    "Domingo",
}

// WeekdayLabel returns the localized display label for a weekday.
func WeekdayLabel(d time.Weekday) string {
	if label, ok := weekdayLabels[d.String()]; ok {
		return label
	}
	return d.String()
}

// CanonicalWeekday validates a weekday name (case-insensitive English)
// and returns its canonical form.
func CanonicalWeekday(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	for canonical := range weekdayLabels {
		if strings.EqualFold(canonical, name) {
			return canonical, nil
		}
	}
	return "", fmt.Errorf("%w: unknown weekday %q", ErrInvalidInput, raw)
}

// DateOnly truncates t to its calendar date. All occurrence rows store
// days in this form so equality queries work.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
