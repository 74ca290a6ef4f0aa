package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voyago/services/user"
	"voyago/utils"
)

// UserHandler covers profile operations for the signed-in account.
type UserHandler struct {
	Users user.UserService
}

func NewUserHandler(users user.UserService) *UserHandler {
	return &UserHandler{Users: users}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	account, err := h.Users.GetUserByID(c.GetString("userID"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, account, "")
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var updates user.ProfileUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.RespondError(c, utils.NewValidationError(map[string]string{"body": "invalid request body"}))
		return
	}
	account, err := h.Users.UpdateProfile(c.Request.Context(), c.GetString("userID"), updates)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, account, "")
}

func (h *UserHandler) RegisterFCMToken(c *gin.Context) {
	var req struct {
		Token string `json:"token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewValidationError(map[string]string{"body": "invalid request body"}))
		return
	}
	if err := h.Users.RegisterFCMToken(c.Request.Context(), c.GetString("userID"), req.Token); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, nil, "push token registered")
}

func (h *UserHandler) DeleteAccount(c *gin.Context) {
	if err := h.Users.DeleteUser(c.Request.Context(), c.GetString("userID")); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, nil, "account deleted")
}
