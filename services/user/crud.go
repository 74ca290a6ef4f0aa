package user

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"voyago/models"
	"voyago/utils"
)

func (s *DefaultUserService) GetUserByID(userID string) (*models.User, error) {
	account, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, utils.NewNotFoundError("account not found")
	}
	return account, nil
}

func (s *DefaultUserService) GetUserByEmail(email string) (*models.User, error) {
	account, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, utils.NewNotFoundError("account not found")
	}
	return account, nil
}

// UpdateProfile applies the non-nil fields of the update.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, userID string, updates ProfileUpdate) (*models.User, error) {
	fields := bson.M{}
	if updates.Name != nil {
		fields["name"] = *updates.Name
	}
	if updates.Phone != nil {
		if !utils.IsValidPhone(*updates.Phone) {
			return nil, utils.NewValidationError(map[string]string{"phone": "invalid phone number"})
		}
		fields["phone"] = *updates.Phone
	}
	if updates.ProfileImage != nil {
		fields["profile_image"] = *updates.ProfileImage
	}
	if len(fields) == 0 {
		return s.GetUserByID(userID)
	}
	fields["updated_at"] = time.Now()

	if err := s.Repo.SetFields(userID, fields); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return s.GetUserByID(userID)
}

// RegisterFCMToken stores the device push token for this account.
func (s *DefaultUserService) RegisterFCMToken(ctx context.Context, userID, token string) error {
	if token == "" {
		return utils.NewValidationError(map[string]string{"fcm_token": "token is required"})
	}
	return s.Repo.SetFields(userID, bson.M{"fcm_token": token, "updated_at": time.Now()})
}

func (s *DefaultUserService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.Repo.Delete(userID); err != nil {
		return err
	}
	if err := utils.InvalidateTokenHash(ctx, userID); err != nil {
		utils.GetLogger().Warn("failed to drop cached token hash for deleted account")
	}
	return nil
}

func (s *DefaultUserService) GetAllUsers(role string) ([]models.User, error) {
	return s.Repo.GetAll(role)
}
