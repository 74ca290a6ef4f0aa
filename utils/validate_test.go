package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsValidCardNumber(t *testing.T) {
	assert.True(t, IsValidCardNumber("4111111111111111"))
	assert.True(t, IsValidCardNumber("4111 1111 1111 1111"), "whitespace is ignored")
	assert.True(t, IsValidCardNumber(" 4111\t1111 1111 1111 "))

	assert.False(t, IsValidCardNumber("411111111111111"), "15 digits")
	assert.False(t, IsValidCardNumber("41111111111111112"), "17 digits")
	assert.False(t, IsValidCardNumber("4111-1111-1111-1111"), "separators are not whitespace")
	assert.False(t, IsValidCardNumber("411111111111111a"))
	assert.False(t, IsValidCardNumber(""))
}

func TestIsValidCVV(t *testing.T) {
	assert.True(t, IsValidCVV("123"))
	assert.True(t, IsValidCVV("1234"))
	assert.False(t, IsValidCVV("12"))
	assert.False(t, IsValidCVV("12345"))
	assert.False(t, IsValidCVV("12a"))
}

func TestIsValidExpiry(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

	assert.True(t, IsValidExpiry("04/26", now))
	assert.True(t, IsValidExpiry("03/26", now), "card works through the end of its expiry month")
	assert.True(t, IsValidExpiry("12/30", now))

	assert.False(t, IsValidExpiry("02/26", now))
	assert.False(t, IsValidExpiry("12/25", now))
	assert.False(t, IsValidExpiry("13/26", now), "month out of range")
	assert.False(t, IsValidExpiry("00/26", now))
	assert.False(t, IsValidExpiry("3/26", now), "single-digit month")
	assert.False(t, IsValidExpiry("03-26", now))
	assert.False(t, IsValidExpiry("03/2026", now))
}

func TestIsValidPhone(t *testing.T) {
	assert.True(t, IsValidPhone("+94771234567"))
	assert.True(t, IsValidPhone("0771234567"))
	assert.False(t, IsValidPhone("12345"))
	assert.False(t, IsValidPhone("+94 77 123 4567"), "no spaces")
	assert.False(t, IsValidPhone("telephone"))
}

func TestIsAdultBoundary(t *testing.T) {
	today := time.Date(2026, time.August, 30, 23, 59, 0, 0, time.UTC)

	eighteenToday := time.Date(2008, time.August, 30, 4, 30, 0, 0, time.UTC)
	assert.True(t, IsAdult(eighteenToday, today), "turns 18 today, time of day ignored")

	eighteenTomorrow := time.Date(2008, time.August, 31, 0, 0, 0, 0, time.UTC)
	assert.False(t, IsAdult(eighteenTomorrow, today))

	overEighteen := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.True(t, IsAdult(overEighteen, today))
}

func TestIsValidTimeOfDay(t *testing.T) {
	assert.True(t, IsValidTimeOfDay("09:30"))
	assert.True(t, IsValidTimeOfDay("23:59"))
	assert.True(t, IsValidTimeOfDay("00:00"))
	assert.False(t, IsValidTimeOfDay("24:00"))
	assert.False(t, IsValidTimeOfDay("9:30"))
	assert.False(t, IsValidTimeOfDay("09:60"))
}

func TestPasswordsMatch(t *testing.T) {
	assert.True(t, PasswordsMatch("Str0ng!pass", "Str0ng!pass"))
	assert.False(t, PasswordsMatch("Str0ng!pass", "different"))
	assert.False(t, PasswordsMatch("", ""))
}

func TestRequire(t *testing.T) {
	errs := Require(FieldErrors{}, map[string]string{
		"name":  "Amara",
		"email": "  ",
	})
	assert.True(t, errs.Any())
	assert.Contains(t, errs, "email")
	assert.NotContains(t, errs, "name")
}
