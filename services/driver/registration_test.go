package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"voyago/models"
)

func TestValidateBasicDataRequiresEveryField(t *testing.T) {
	errs := validateBasicData(models.DriverBasicData{})
	for _, field := range []string{"name", "email", "password", "phone", "date_of_birth"} {
		assert.Contains(t, errs, field)
	}
}

func TestValidateBasicDataRejectsMinorDrivers(t *testing.T) {
	errs := validateBasicData(models.DriverBasicData{
		Name:        "Junior",
		Email:       "junior@example.com",
		Password:    "Str0ng!pass",
		Phone:       "+94771234567",
		DateOfBirth: "2012-05-01",
	})
	assert.Equal(t, "drivers must be at least 18 years old", errs["date_of_birth"])
}

func TestValidateVehicle(t *testing.T) {
	errs := validateVehicle(models.Vehicle{})
	assert.Contains(t, errs, "make")
	assert.Contains(t, errs, "model")
	assert.Contains(t, errs, "plate_number")
	assert.Contains(t, errs, "type")
	assert.Contains(t, errs, "capacity")
	assert.Contains(t, errs, "price_per_day")

	errs = validateVehicle(models.Vehicle{
		Make:        "Toyota",
		Model:       "HiAce",
		PlateNumber: "WP KA-1234",
		Type:        models.VehicleTypeVan,
		Capacity:    8,
		PricePerDay: 12000,
	})
	assert.False(t, errs.Any(), "unexpected errors: %v", errs)
}
