package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"voyago/models"
	"voyago/services/driver"
	"voyago/services/storage"
	"voyago/utils"
)

// DriverHandler covers driver onboarding and vehicle management. It holds
// the storage service directly because document uploads happen before the
// driver has an account; the registration session is the only credential.
type DriverHandler struct {
	Drivers    driver.DriverService
	StorageSvc storage.StorageService
}

func NewDriverHandler(drivers driver.DriverService, storageSvc storage.StorageService) *DriverHandler {
	return &DriverHandler{Drivers: drivers, StorageSvc: storageSvc}
}

func (h *DriverHandler) InitiateRegistration(c *gin.Context) {
	var basic models.DriverBasicData
	if err := c.ShouldBindJSON(&basic); err != nil {
		utils.RespondError(c, utils.NewValidationError(map[string]string{"body": "invalid request body"}))
		return
	}
	tempID, err := h.Drivers.InitiateRegistration(c.Request.Context(), basic)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusCreated, gin.H{"tempId": tempID}, "verification code sent")
}

func (h *DriverHandler) VerifyRegistrationOTP(c *gin.Context) {
	var req struct {
		OTP string `json:"otp"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewValidationError(map[string]string{"body": "invalid request body"}))
		return
	}
	session, err := h.Drivers.VerifyRegistrationOTP(c.Request.Context(), c.Param("tempID"), req.OTP)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, session, "")
}

func (h *DriverHandler) saveRegistrationUpload(c *gin.Context, field string) (string, bool) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		utils.RespondError(c, utils.NewValidationError(map[string]string{field: field + " file is required"}))
		return "", false
	}
	tempFilePath := filepath.Join(os.TempDir(), fileHeader.Filename)
	if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
		utils.RespondError(c, err)
		return "", false
	}
	return tempFilePath, true
}

// SubmitDocuments takes the license and NIC images as multipart files,
// uploads them to the document store, and records their IDs on the
// registration session.
func (h *DriverHandler) SubmitDocuments(c *gin.Context) {
	licensePath, ok := h.saveRegistrationUpload(c, "license_image")
	if !ok {
		return
	}
	defer os.Remove(licensePath)
	nicPath, ok := h.saveRegistrationUpload(c, "nic_image")
	if !ok {
		return
	}
	defer os.Remove(nicPath)

	licenseID, err := h.StorageSvc.UploadFile(c.Request.Context(), licensePath, "documents/licenses")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	nicID, err := h.StorageSvc.UploadFile(c.Request.Context(), nicPath, "documents/nics")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	session, err := h.Drivers.SubmitDocuments(c.Request.Context(), c.Param("tempID"), models.DriverDocuments{
		LicenseImage: licenseID,
		NICImage:     nicID,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, session, "documents received")
}

func (h *DriverHandler) FinalizeRegistration(c *gin.Context) {
	var vehicle models.Vehicle
	if err := c.ShouldBindJSON(&vehicle); err != nil {
		utils.RespondError(c, utils.NewValidationError(map[string]string{"body": "invalid request body"}))
		return
	}
	resp, err := h.Drivers.FinalizeRegistration(c.Request.Context(), c.Param("tempID"), vehicle)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusCreated, resp, "driver account created, pending verification")
}

func (h *DriverHandler) CancelRegistration(c *gin.Context) {
	if err := h.Drivers.CancelRegistration(c.Request.Context(), c.Param("tempID")); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, nil, "registration cancelled")
}

func (h *DriverHandler) GetMyVehicles(c *gin.Context) {
	vehicles, err := h.Drivers.GetDriverVehicles(c.GetString("userID"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, vehicles, "")
}

func (h *DriverHandler) AddVehicle(c *gin.Context) {
	var vehicle models.Vehicle
	if err := c.ShouldBindJSON(&vehicle); err != nil {
		utils.RespondError(c, utils.NewValidationError(map[string]string{"body": "invalid request body"}))
		return
	}
	created, err := h.Drivers.AddVehicle(c.Request.Context(), c.GetString("userID"), vehicle)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusCreated, created, "")
}

func (h *DriverHandler) SetVehicleActive(c *gin.Context) {
	active, err := strconv.ParseBool(c.Query("active"))
	if err != nil {
		utils.RespondError(c, utils.NewValidationError(map[string]string{"active": "active must be true or false"}))
		return
	}
	if err := h.Drivers.SetVehicleActive(c.Request.Context(), c.GetString("userID"), c.Param("vehicleID"), active); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, nil, "")
}
