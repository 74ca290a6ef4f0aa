package utils

import (
	"regexp"
	"strings"
	"time"
)

// FieldErrors maps a field name to a human readable message. An empty map
// means the field set passed validation.
type FieldErrors map[string]string

// Any reports whether at least one field failed.
func (f FieldErrors) Any() bool {
	return len(f) > 0
}

var (
	emailRe  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe  = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
	digitsRe = regexp.MustCompile(`^[0-9]+$`)
	expiryRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/([0-9]{2})$`)
	cvvRe    = regexp.MustCompile(`^[0-9]{3,4}$`)
	dateFmt  = "2006-01-02"
	timeRe   = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
)

// IsValidEmail reports whether s looks like an email address.
func IsValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// IsValidPhone accepts 10-15 digits with an optional leading +.
func IsValidPhone(s string) bool {
	return phoneRe.MatchString(s)
}

// IsValidCardNumber accepts exactly 16 digits, ignoring whitespace.
func IsValidCardNumber(s string) bool {
	digits := strings.Join(strings.Fields(s), "")
	return len(digits) == 16 && digitsRe.MatchString(digits)
}

// IsValidCVV accepts 3 or 4 digits.
func IsValidCVV(s string) bool {
	return cvvRe.MatchString(s)
}

// IsValidExpiry accepts MM/YY for a month that has not yet ended.
func IsValidExpiry(s string, now time.Time) bool {
	m := expiryRe.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	month := int(m[1][0]-'0')*10 + int(m[1][1]-'0')
	year := 2000 + int(m[2][0]-'0')*10 + int(m[2][1]-'0')
	// The card is usable through the last instant of its expiry month.
	endOfMonth := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return endOfMonth.After(now)
}

// ParseDate parses a calendar date in YYYY-MM-DD form.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse(dateFmt, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// IsValidTimeOfDay accepts HH:MM in 24-hour form.
func IsValidTimeOfDay(s string) bool {
	return timeRe.MatchString(s)
}

// IsAdult reports whether someone born on dob is at least 18 years old on
// the reference date. The comparison is date-only: a person turns 18 on
// their birthday, not the day before.
func IsAdult(dob, today time.Time) bool {
	dob = time.Date(dob.Year(), dob.Month(), dob.Day(), 0, 0, 0, 0, time.UTC)
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	cutoff := dob.AddDate(18, 0, 0)
	return !cutoff.After(today)
}

// PasswordsMatch reports whether a password and its confirmation are equal
// and non-empty.
func PasswordsMatch(password, confirmation string) bool {
	return password != "" && password == confirmation
}

// Require adds a required-field error for every named field whose value is
// blank, returning the same map for chaining.
func Require(errs FieldErrors, fields map[string]string) FieldErrors {
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			errs[name] = name + " is required"
		}
	}
	return errs
}
