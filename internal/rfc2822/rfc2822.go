// internal/rfc2822/rfc2822.go

// Package rfc2822 parses and renders the RFC 2822 date-time format used in
// email headers, e.g. "Mon, 02 Jan 2006 15:04:05 +0000".
package rfc2822

import (
	"errors"
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"time"
)

// Layout is the canonical rendering used for every formatted timestamp.
const Layout = time.RFC1123Z

const (
	minYear = 0
	maxYear = 9999
)

var (
	// ErrMalformed is returned when a string is not a valid RFC 2822 date-time.
	ErrMalformed = errors.New("malformed RFC 2822 date-time")
	// ErrYearRange is returned when a year cannot be written with four digits.
	ErrYearRange = errors.New("year outside RFC 2822 range 0000-9999")
)

// obsZones maps the obsolete zone names of RFC 2822 section 4.3 to numeric
// offsets. Military single-letter zones carry no reliable information and are
// treated as "-0000".
var obsZones = map[string]string{
	"UT":  "+0000",
	"GMT": "+0000",
	"Z":   "+0000",
	"EST": "-0500",
	"EDT": "-0400",
	"CST": "-0600",
	"CDT": "-0500",
	"MST": "-0700",
	"MDT": "-0600",
	"PST": "-0800",
	"PDT": "-0700",
}

var weekdays = map[string]bool{
	"mon": true, "tue": true, "wed": true, "thu": true, "fri": true, "sat": true, "sun": true,
}

var months = map[string]bool{
	"jan": true, "feb": true, "mar": true, "apr": true, "may": true, "jun": true,
	"jul": true, "aug": true, "sep": true, "oct": true, "nov": true, "dec": true,
}

// Parse reads an RFC 2822 date-time. The UTC offset of the input is kept on
// the returned time. Obsolete two- and three-digit years and named zones are
// normalized before parsing. A day-of-week, when present, must match the date.
func Parse(s string) (time.Time, error) {
	normalized, weekday, err := normalize(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrMalformed, s, err)
	}
	t, err := mail.ParseDate(normalized)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	if weekday != "" && !strings.EqualFold(weekday, t.Weekday().String()[:3]) {
		return time.Time{}, fmt.Errorf("%w: %q: %s is not a %s", ErrMalformed, s, t.Format("02 Jan 2006"), weekday)
	}
	if err := checkYear(t); err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// Format renders t in RFC 2822 form, keeping its location's offset.
func Format(t time.Time) (string, error) {
	if err := checkYear(t); err != nil {
		return "", err
	}
	return t.Format(Layout), nil
}

func checkYear(t time.Time) error {
	if y := t.Year(); y < minYear || y > maxYear {
		return fmt.Errorf("%w: %d", ErrYearRange, y)
	}
	return nil
}

// normalize checks the token layout "[dow,] day month year time zone" and
// rewrites obsolete syntax that net/mail would otherwise reject or interpret
// differently. The day-of-week is split off and returned for the caller to
// check against the parsed date.
func normalize(s string) (string, string, error) {
	s = strings.ReplaceAll(s, "\r\n", " ")
	// Trailing comment, e.g. "-0500 (EST)".
	if j := strings.IndexByte(s, '('); j > 0 && strings.HasSuffix(strings.TrimSpace(s), ")") {
		s = s[:j]
	}

	var weekday string
	if i := strings.IndexByte(s, ','); i >= 0 {
		weekday = strings.TrimSpace(s[:i])
		if !weekdays[strings.ToLower(weekday)] {
			return "", "", fmt.Errorf("unknown day-of-week %q", weekday)
		}
		s = s[i+1:]
	}

	fields := strings.Fields(s)
	if len(fields) != 5 {
		return "", "", fmt.Errorf("want day month year time zone, got %d fields", len(fields))
	}
	if !months[strings.ToLower(fields[1])] {
		return "", "", fmt.Errorf("unknown month %q", fields[1])
	}
	fields[2] = expandYear(fields[2])

	zone, err := checkZone(expandZone(fields[4]))
	if err != nil {
		return "", "", err
	}
	fields[4] = zone
	return strings.Join(fields, " "), weekday, nil
}

// checkZone accepts only "+hhmm"/"-hhmm" with hh below 24 and mm below 60.
func checkZone(zone string) (string, error) {
	if len(zone) != 5 || (zone[0] != '+' && zone[0] != '-') {
		return "", fmt.Errorf("invalid zone %q", zone)
	}
	for _, c := range zone[1:] {
		if c < '0' || c > '9' {
			return "", fmt.Errorf("invalid zone %q", zone)
		}
	}
	hh, _ := strconv.Atoi(zone[1:3])
	mm, _ := strconv.Atoi(zone[3:5])
	if hh > 23 || mm > 59 {
		return "", fmt.Errorf("zone %q out of range", zone)
	}
	return zone, nil
}

// expandYear applies the obs-year rule: two-digit years below 50 are in the
// 2000s, others and three-digit years are offset from 1900.
func expandYear(field string) string {
	if len(field) != 2 && len(field) != 3 {
		return field
	}
	n, err := strconv.Atoi(field)
	if err != nil || n < 0 {
		return field
	}
	switch {
	case len(field) == 2 && n < 50:
		n += 2000
	default:
		n += 1900
	}
	return strconv.Itoa(n)
}

func expandZone(field string) string {
	upper := strings.ToUpper(field)
	if off, ok := obsZones[upper]; ok {
		return off
	}
	if len(upper) == 1 && upper[0] >= 'A' && upper[0] <= 'Z' && upper != "J" {
		return "-0000"
	}
	return field
}
