package driver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"voyago/models"
	"voyago/services/user"
	"voyago/utils"
)

const (
	regSessionPrefix = "driverreg:"
	regSessionTTL    = 30 * time.Minute
)

func regSessionKey(tempID string) string {
	return regSessionPrefix + tempID
}

func saveRegSession(ctx context.Context, session *models.DriverRegistrationSession) error {
	session.LastUpdatedAt = time.Now()
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal registration session: %w", err)
	}
	client := utils.GetAuthCacheClient()
	if err := client.Set(ctx, regSessionKey(session.TempID), data, regSessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to store registration session: %w", err)
	}
	return nil
}

func getRegSession(ctx context.Context, tempID string) (*models.DriverRegistrationSession, error) {
	client := utils.GetAuthCacheClient()
	data, err := client.Get(ctx, regSessionKey(tempID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, utils.NewNotFoundError("registration session not found or expired")
		}
		return nil, fmt.Errorf("failed to fetch registration session: %w", err)
	}
	var session models.DriverRegistrationSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to decode registration session: %w", err)
	}
	return &session, nil
}

func validateBasicData(basic models.DriverBasicData) utils.FieldErrors {
	errs := utils.Require(utils.FieldErrors{}, map[string]string{
		"name":          basic.Name,
		"email":         basic.Email,
		"password":      basic.Password,
		"phone":         basic.Phone,
		"date_of_birth": basic.DateOfBirth,
	})
	if basic.Email != "" && !utils.IsValidEmail(basic.Email) {
		errs["email"] = "invalid email address"
	}
	if basic.Phone != "" && !utils.IsValidPhone(basic.Phone) {
		errs["phone"] = "invalid phone number"
	}
	if basic.DateOfBirth != "" {
		dob, ok := utils.ParseDate(basic.DateOfBirth)
		if !ok {
			errs["date_of_birth"] = "date of birth must be YYYY-MM-DD"
		} else if !utils.IsAdult(dob, time.Now()) {
			errs["date_of_birth"] = "drivers must be at least 18 years old"
		}
	}
	return errs
}

// InitiateRegistration validates the basic page, opens a registration
// session and sends an email OTP. It returns the session's temp ID, which
// threads every later step.
func (s *DefaultDriverService) InitiateRegistration(ctx context.Context, basic models.DriverBasicData) (string, error) {
	if errs := validateBasicData(basic); errs.Any() {
		return "", utils.NewValidationError(errs)
	}

	existing, err := s.Users.GetByEmail(basic.Email)
	if err != nil {
		utils.GetLogger().Error("failed to check for existing driver account", zap.Error(err))
		return "", fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return "", utils.NewConflictError("an account with this email already exists")
	}

	session := &models.DriverRegistrationSession{
		TempID:    uuid.New().String(),
		Step:      models.DriverRegStepOTP,
		BasicData: &basic,
		CreatedAt: time.Now(),
	}
	if err := saveRegSession(ctx, session); err != nil {
		return "", err
	}

	if err := utils.InitiateEmailOTP(session.TempID, basic.Email); err != nil {
		return "", err
	}
	return session.TempID, nil
}

// VerifyRegistrationOTP consumes the emailed code and unlocks the
// documents step.
func (s *DefaultDriverService) VerifyRegistrationOTP(ctx context.Context, tempID, providedOTP string) (*models.DriverRegistrationSession, error) {
	session, err := getRegSession(ctx, tempID)
	if err != nil {
		return nil, err
	}
	if session.Step != models.DriverRegStepOTP {
		return nil, utils.NewConflictError("registration is not waiting for OTP verification")
	}

	if err := utils.VerifyOTPRecord(tempID, providedOTP); err != nil {
		return nil, utils.NewUnauthorizedError(err.Error())
	}

	session.Step = models.DriverRegStepDocuments
	if err := saveRegSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SubmitDocuments records the uploaded license and NIC images.
func (s *DefaultDriverService) SubmitDocuments(ctx context.Context, tempID string, docs models.DriverDocuments) (*models.DriverRegistrationSession, error) {
	session, err := getRegSession(ctx, tempID)
	if err != nil {
		return nil, err
	}
	if session.Step != models.DriverRegStepDocuments {
		return nil, utils.NewConflictError("registration is not at the documents step")
	}

	errs := utils.Require(utils.FieldErrors{}, map[string]string{
		"license_image": docs.LicenseImage,
		"nic_image":     docs.NICImage,
	})
	if errs.Any() {
		return nil, utils.NewValidationError(errs)
	}

	session.Documents = &docs
	session.Step = models.DriverRegStepVehicle
	if err := saveRegSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func validateVehicle(vehicle models.Vehicle) utils.FieldErrors {
	errs := utils.Require(utils.FieldErrors{}, map[string]string{
		"make":         vehicle.Make,
		"model":        vehicle.Model,
		"plate_number": vehicle.PlateNumber,
	})
	if !models.VehicleTypes[vehicle.Type] {
		errs["type"] = "unknown vehicle type"
	}
	if vehicle.Capacity < 1 {
		errs["capacity"] = "capacity must be at least 1"
	}
	if vehicle.PricePerDay <= 0 {
		errs["price_per_day"] = "price per day must be positive"
	}
	return errs
}

// FinalizeRegistration takes the vehicle page, creates the driver account
// and its first vehicle, and drops the registration session. The account
// starts unverified; an admin reviews the documents before the vehicle can
// take bookings.
func (s *DefaultDriverService) FinalizeRegistration(ctx context.Context, tempID string, vehicle models.Vehicle) (*user.AuthResponse, error) {
	session, err := getRegSession(ctx, tempID)
	if err != nil {
		return nil, err
	}
	if session.Step != models.DriverRegStepVehicle {
		return nil, utils.NewConflictError("registration is not at the vehicle step")
	}

	if errs := validateVehicle(vehicle); errs.Any() {
		return nil, utils.NewValidationError(errs)
	}

	basic := session.BasicData
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(basic.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	account := models.User{
		ID:            uuid.New().String(),
		Name:          basic.Name,
		Email:         basic.Email,
		PasswordHash:  string(hashedPassword),
		Phone:         basic.Phone,
		Role:          models.RoleDriver,
		DateOfBirth:   basic.DateOfBirth,
		EmailVerified: true,
		LicenseImage:  session.Documents.LicenseImage,
		NICImage:      session.Documents.NICImage,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	token, err := utils.GenerateToken(account.ID, account.Email, account.Role, 24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("failed to generate auth token: %w", err)
	}
	account.TokenHash = utils.HashToken(token)

	if err := s.Users.Create(&account); err != nil {
		return nil, fmt.Errorf("failed to create driver account: %w", err)
	}

	vehicle.ID = uuid.New().String()
	vehicle.DriverID = account.ID
	vehicle.Active = false
	vehicle.CreatedAt = now
	vehicle.UpdatedAt = now
	if err := s.Vehicles.Create(&vehicle); err != nil {
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}

	if err := utils.CacheTokenHash(ctx, account.ID, account.TokenHash); err != nil {
		utils.GetLogger().Warn("failed to cache token hash", zap.Error(err))
	}

	client := utils.GetAuthCacheClient()
	if err := client.Del(ctx, regSessionKey(tempID)).Err(); err != nil {
		utils.GetLogger().Warn("failed to drop registration session", zap.Error(err))
	}

	utils.GetLogger().Info("driver registered",
		zap.String("driverID", account.ID),
		zap.String("vehicleID", vehicle.ID))

	return &user.AuthResponse{
		ID:    account.ID,
		Token: token,
		Name:  account.Name,
		Email: account.Email,
		Role:  account.Role,
	}, nil
}

// CancelRegistration abandons an in-flight registration.
func (s *DefaultDriverService) CancelRegistration(ctx context.Context, tempID string) error {
	client := utils.GetAuthCacheClient()
	if err := client.Del(ctx, regSessionKey(tempID)).Err(); err != nil {
		return fmt.Errorf("failed to cancel registration: %w", err)
	}
	return nil
}
