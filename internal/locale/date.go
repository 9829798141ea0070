package locale

import (
	"errors"
	"regexp"
	"strconv"
	"time"
)

var ErrInvalidDate = errors.New("invalid date")

// dateRe matches DD/MM/YYYY and DD-MM-YYYY.
var dateRe = regexp.MustCompile(`^(\d{2})[/-](\d{2})[/-](\d{4})$`)

// ParseDate parses a Brazilian-formatted date into local midnight.
// Dates that would roll over (31/02/2024, 00/01/2024) are rejected.
func ParseDate(s string) (time.Time, error) {
	m := dateRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, ErrInvalidDate
	}

	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, ErrInvalidDate
	}

	return t, nil
}

// FormatISO renders t as an ISO-8601 instant in UTC with millisecond precision.
func FormatISO(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
