package user

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"voyago/utils"
)

// AuthenticateUser verifies credentials and issues a fresh token. The
// token hash is stored on the record and cached so middleware can check
// revocation without a database read.
func (s *DefaultUserService) AuthenticateUser(ctx context.Context, email, password string) (*AuthResponse, error) {
	account, err := s.Repo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("failed to fetch user for sign-in", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if account == nil {
		return nil, utils.NewUnauthorizedError("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, utils.NewUnauthorizedError("invalid email or password")
	}

	token, err := utils.GenerateToken(account.ID, account.Email, account.Role, 24*time.Hour)
	if err != nil {
		utils.GetLogger().Error("failed to generate auth token", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	tokenHash := utils.HashToken(token)
	if err := s.Repo.SetFields(account.ID, bson.M{"token_hash": tokenHash, "updated_at": time.Now()}); err != nil {
		utils.GetLogger().Error("failed to store token hash", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if err := utils.CacheTokenHash(ctx, account.ID, tokenHash); err != nil {
		utils.GetLogger().Warn("failed to cache token hash", zap.Error(err))
	}

	return &AuthResponse{
		ID:           account.ID,
		Token:        token,
		Name:         account.Name,
		Email:        account.Email,
		Role:         account.Role,
		ProfileImage: account.ProfileImage,
	}, nil
}

// SignOut revokes the account's current token.
func (s *DefaultUserService) SignOut(ctx context.Context, userID string) error {
	if err := s.Repo.SetFields(userID, bson.M{"token_hash": "", "updated_at": time.Now()}); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	if err := utils.InvalidateTokenHash(ctx, userID); err != nil {
		utils.GetLogger().Warn("failed to drop cached token hash", zap.Error(err))
	}
	return nil
}

// UpdatePassword changes the password after verifying the current one, and
// revokes the outstanding token so every client must sign in again.
func (s *DefaultUserService) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	account, err := s.Repo.GetByID(userID)
	if err != nil {
		return err
	}
	if account == nil {
		return utils.NewNotFoundError("account not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(currentPassword)); err != nil {
		return utils.NewUnauthorizedError("current password is incorrect")
	}
	if err := verifyPasswordComplexity(newPassword); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := s.Repo.SetFields(userID, bson.M{
		"password_hash": string(hashed),
		"token_hash":    "",
		"updated_at":    time.Now(),
	}); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if err := utils.InvalidateTokenHash(ctx, userID); err != nil {
		utils.GetLogger().Warn("failed to drop cached token hash", zap.Error(err))
	}
	return nil
}
