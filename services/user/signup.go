package user

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"voyago/models"
	"voyago/utils"
)

// verifyPasswordComplexity checks that the password contains at least one
// lowercase letter, one uppercase letter, one digit, and one symbol.
func verifyPasswordComplexity(pw string) error {
	var (
		hasMinLen = len(pw) >= 8
		hasUpper  = regexp.MustCompile(`[A-Z]`).MatchString(pw)
		hasLower  = regexp.MustCompile(`[a-z]`).MatchString(pw)
		hasNumber = regexp.MustCompile(`[0-9]`).MatchString(pw)
		hasSymbol = regexp.MustCompile(`[\W_]`).MatchString(pw)
	)
	if !hasMinLen {
		return utils.NewValidationError(map[string]string{"password": "password must be at least 8 characters long"})
	}
	if !hasUpper || !hasLower || !hasNumber || !hasSymbol {
		return utils.NewValidationError(map[string]string{
			"password": "password must include upper and lower case letters, a number and a symbol",
		})
	}
	return nil
}

func validateRegistration(req RegistrationRequest) utils.FieldErrors {
	errs := utils.Require(utils.FieldErrors{}, map[string]string{
		"name":          req.Name,
		"email":         req.Email,
		"password":      req.Password,
		"phone":         req.Phone,
		"date_of_birth": req.DateOfBirth,
	})
	if req.Email != "" && !utils.IsValidEmail(req.Email) {
		errs["email"] = "invalid email address"
	}
	if req.Phone != "" && !utils.IsValidPhone(req.Phone) {
		errs["phone"] = "invalid phone number"
	}
	if req.DateOfBirth != "" {
		dob, ok := utils.ParseDate(req.DateOfBirth)
		if !ok {
			errs["date_of_birth"] = "date of birth must be YYYY-MM-DD"
		} else if !utils.IsAdult(dob, time.Now()) {
			errs["date_of_birth"] = "you must be at least 18 years old to book"
		}
	}
	return errs
}

// RegisterUser creates a tourist account, issues a token, and kicks off
// email verification via OTP.
func (s *DefaultUserService) RegisterUser(ctx context.Context, req RegistrationRequest) (*AuthResponse, error) {
	if errs := validateRegistration(req); errs.Any() {
		return nil, utils.NewValidationError(errs)
	}
	if err := verifyPasswordComplexity(req.Password); err != nil {
		return nil, err
	}

	existing, err := s.Repo.GetByEmail(req.Email)
	if err != nil {
		utils.GetLogger().Error("failed to check for existing user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, utils.NewConflictError("an account with this email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	now := time.Now()
	account := models.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Phone:        req.Phone,
		Role:         models.RoleTourist,
		DateOfBirth:  req.DateOfBirth,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	token, err := utils.GenerateToken(account.ID, account.Email, account.Role, 24*time.Hour)
	if err != nil {
		utils.GetLogger().Error("failed to generate auth token", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	account.TokenHash = utils.HashToken(token)

	if err := s.Repo.Create(&account); err != nil {
		utils.GetLogger().Error("failed to create user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	if err := utils.CacheTokenHash(ctx, account.ID, account.TokenHash); err != nil {
		utils.GetLogger().Warn("failed to cache token hash", zap.Error(err))
	}

	if err := utils.InitiateEmailOTP(account.ID, account.Email); err != nil {
		utils.GetLogger().Warn("failed to send verification OTP", zap.Error(err))
	}

	return &AuthResponse{
		ID:    account.ID,
		Token: token,
		Name:  account.Name,
		Email: account.Email,
		Role:  account.Role,
	}, nil
}

// VerifyEmailOTP consumes the pending OTP and marks the email verified.
func (s *DefaultUserService) VerifyEmailOTP(ctx context.Context, userID, providedOTP string) error {
	if err := utils.VerifyOTPRecord(userID, providedOTP); err != nil {
		return err
	}
	if err := s.Repo.SetFields(userID, bson.M{"email_verified": true, "updated_at": time.Now()}); err != nil {
		return fmt.Errorf("failed to mark email verified: %w", err)
	}
	return nil
}

// ResendEmailOTP issues a new verification code to an unverified account.
func (s *DefaultUserService) ResendEmailOTP(ctx context.Context, userID string) error {
	account, err := s.Repo.GetByID(userID)
	if err != nil {
		return err
	}
	if account == nil {
		return utils.NewNotFoundError("account not found")
	}
	if account.EmailVerified {
		return utils.NewConflictError("email is already verified")
	}
	return utils.InitiateEmailOTP(account.ID, account.Email)
}
