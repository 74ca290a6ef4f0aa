package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyago/utils"
)

func TestVerifyPasswordComplexity(t *testing.T) {
	cases := []struct {
		password string
		ok       bool
	}{
		{"Str0ng!pass", true},
		{"An0ther_1", true},
		{"short1!", false},      // under 8 characters
		{"alllower1!", false},   // no uppercase
		{"ALLUPPER1!", false},   // no lowercase
		{"NoDigits!!", false},   // no number
		{"NoSymbol11", false},   // no symbol
	}

	for _, tc := range cases {
		err := verifyPasswordComplexity(tc.password)
		if tc.ok {
			assert.NoError(t, err, "password %q should pass", tc.password)
		} else {
			var svcErr *utils.ServiceError
			require.ErrorAs(t, err, &svcErr, "password %q should fail", tc.password)
			assert.Equal(t, utils.CodeValidation, svcErr.Code)
		}
	}
}

func TestValidateRegistrationRequiresEveryField(t *testing.T) {
	errs := validateRegistration(RegistrationRequest{})
	for _, field := range []string{"name", "email", "password", "phone", "date_of_birth"} {
		assert.Contains(t, errs, field)
	}
}

func TestValidateRegistrationChecksFormats(t *testing.T) {
	errs := validateRegistration(RegistrationRequest{
		Name:        "Nimal Perera",
		Email:       "not-an-email",
		Password:    "Str0ng!pass",
		Phone:       "abc",
		DateOfBirth: "31-12-1990",
	})
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "phone")
	assert.Contains(t, errs, "date_of_birth")
	assert.NotContains(t, errs, "name")
	assert.NotContains(t, errs, "password")
}

func TestValidateRegistrationRejectsMinors(t *testing.T) {
	errs := validateRegistration(RegistrationRequest{
		Name:        "Too Young",
		Email:       "young@example.com",
		Password:    "Str0ng!pass",
		Phone:       "+94771234567",
		DateOfBirth: "2015-01-01",
	})
	assert.Contains(t, errs, "date_of_birth")
}

func TestValidateRegistrationAcceptsValidRequest(t *testing.T) {
	errs := validateRegistration(RegistrationRequest{
		Name:        "Nimal Perera",
		Email:       "nimal@example.com",
		Password:    "Str0ng!pass",
		Phone:       "+94771234567",
		DateOfBirth: "1990-06-15",
	})
	assert.False(t, errs.Any(), "unexpected errors: %v", errs)
}
