package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voyago/services/user"
	"voyago/utils"
)

// AuthHandler covers tourist signup, sign-in and credential management.
type AuthHandler struct {
	Users user.UserService
}

func NewAuthHandler(users user.UserService) *AuthHandler {
	return &AuthHandler{Users: users}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req user.RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewValidationError(map[string]string{"body": "invalid request body"}))
		return
	}
	resp, err := h.Users.RegisterUser(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusCreated, resp, "account created, verification code sent")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewValidationError(map[string]string{"body": "invalid request body"}))
		return
	}
	resp, err := h.Users.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, resp, "")
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req struct {
		OTP string `json:"otp"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewValidationError(map[string]string{"body": "invalid request body"}))
		return
	}
	if err := h.Users.VerifyEmailOTP(c.Request.Context(), c.GetString("userID"), req.OTP); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, nil, "email verified")
}

func (h *AuthHandler) ResendOTP(c *gin.Context) {
	if err := h.Users.ResendEmailOTP(c.Request.Context(), c.GetString("userID")); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, nil, "verification code sent")
}

func (h *AuthHandler) SignOut(c *gin.Context) {
	if err := h.Users.SignOut(c.Request.Context(), c.GetString("userID")); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, nil, "signed out")
}

func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
		ConfirmPassword string `json:"confirm_password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewValidationError(map[string]string{"body": "invalid request body"}))
		return
	}
	if !utils.PasswordsMatch(req.NewPassword, req.ConfirmPassword) {
		utils.RespondError(c, utils.NewValidationError(map[string]string{
			"confirm_password": "passwords do not match",
		}))
		return
	}
	if err := h.Users.UpdatePassword(c.Request.Context(), c.GetString("userID"), req.CurrentPassword, req.NewPassword); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, nil, "password updated, please sign in again")
}
