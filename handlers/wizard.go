package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"voyago/models"
	"voyago/services/wizard"
	"voyago/utils"
)

// WizardHandler exposes the booking wizard over HTTP.
type WizardHandler struct {
	Service wizard.WizardService
}

func NewWizardHandler(svc wizard.WizardService) *WizardHandler {
	return &WizardHandler{Service: svc}
}

// respondWizardError maps StepError to the missing_step envelope with a
// redirect target; everything else goes through the standard error path.
func respondWizardError(c *gin.Context, err error) {
	var stepErr *wizard.StepError
	if errors.As(err, &stepErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":  false,
			"code":     utils.CodeMissingStep,
			"message":  stepErr.Reason,
			"redirect": stepErr.Redirect,
		})
		return
	}
	utils.RespondError(c, err)
}

type initiateSessionRequest struct {
	DestinationID string           `json:"destination_id"`
	CustomName    string           `json:"custom_name"`
	CustomAddress string           `json:"custom_address"`
	Coordinates   *models.GeoPoint `json:"coordinates"`
}

// InitiateSession starts a wizard run. The body names either a catalogue
// destination or a custom pin with a name and coordinates.
func (h *WizardHandler) InitiateSession(c *gin.Context) {
	var req initiateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewValidationError(map[string]string{"body": "invalid request body"}))
		return
	}

	dest := models.DestinationRef{ID: req.DestinationID}
	if req.DestinationID == "" && req.CustomName != "" {
		coords := models.GeoPoint{}
		if req.Coordinates != nil {
			coords = *req.Coordinates
		}
		dest = wizard.NewCustomDestinationRef(req.CustomName, req.CustomAddress, coords)
	}

	session, err := h.Service.InitiateSession(c.Request.Context(), c.GetString("userID"), dest)
	if err != nil {
		respondWizardError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusCreated, session, "")
}

func (h *WizardHandler) GetSession(c *gin.Context) {
	session, err := h.Service.GetSession(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondWizardError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, session, "")
}

func (h *WizardHandler) SetTripDetails(c *gin.Context) {
	var details models.TripDetails
	if err := c.ShouldBindJSON(&details); err != nil {
		utils.RespondError(c, utils.NewValidationError(map[string]string{"body": "invalid request body"}))
		return
	}
	session, err := h.Service.SetTripDetails(c.Request.Context(), c.Param("sessionID"), details)
	if err != nil {
		respondWizardError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, session, "")
}

func (h *WizardHandler) AddStop(c *gin.Context) {
	var stop models.Stop
	if err := c.ShouldBindJSON(&stop); err != nil {
		utils.RespondError(c, utils.NewValidationError(map[string]string{"body": "invalid request body"}))
		return
	}
	session, err := h.Service.AddStop(c.Request.Context(), c.Param("sessionID"), stop)
	if err != nil {
		respondWizardError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, session, "")
}

func stopIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		utils.RespondError(c, utils.NewValidationError(map[string]string{"index": "stop index must be a number"}))
		return 0, false
	}
	return index, true
}

func (h *WizardHandler) RemoveStop(c *gin.Context) {
	index, ok := stopIndex(c)
	if !ok {
		return
	}
	session, err := h.Service.RemoveStop(c.Request.Context(), c.Param("sessionID"), index)
	if err != nil {
		respondWizardError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, session, "")
}

func (h *WizardHandler) UpdateStop(c *gin.Context) {
	index, ok := stopIndex(c)
	if !ok {
		return
	}
	var update wizard.StopUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.RespondError(c, utils.NewValidationError(map[string]string{"body": "invalid request body"}))
		return
	}
	session, err := h.Service.UpdateStop(c.Request.Context(), c.Param("sessionID"), index, update)
	if err != nil {
		respondWizardError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, session, "")
}

func (h *WizardHandler) SetPreferences(c *gin.Context) {
	var prefs models.TripPreferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		utils.RespondError(c, utils.NewValidationError(map[string]string{"body": "invalid request body"}))
		return
	}
	session, err := h.Service.SetPreferences(c.Request.Context(), c.Param("sessionID"), prefs)
	if err != nil {
		respondWizardError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, session, "")
}

func (h *WizardHandler) VehicleOptions(c *gin.Context) {
	vehicles, err := h.Service.VehicleOptions(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondWizardError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, vehicles, "")
}

func (h *WizardHandler) SelectVehicle(c *gin.Context) {
	var req struct {
		VehicleID string `json:"vehicle_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewValidationError(map[string]string{"body": "invalid request body"}))
		return
	}
	session, err := h.Service.SelectVehicle(c.Request.Context(), c.Param("sessionID"), req.VehicleID)
	if err != nil {
		respondWizardError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, session, "")
}

func (h *WizardHandler) SetPaymentMethod(c *gin.Context) {
	var req struct {
		Method string              `json:"method"`
		Card   *models.CardDetails `json:"card"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewValidationError(map[string]string{"body": "invalid request body"}))
		return
	}
	session, err := h.Service.SetPaymentMethod(c.Request.Context(), c.Param("sessionID"), req.Method, req.Card)
	if err != nil {
		respondWizardError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, session, "")
}

func (h *WizardHandler) ConfirmBooking(c *gin.Context) {
	booking, err := h.Service.ConfirmBooking(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondWizardError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusCreated, booking, "booking confirmed")
}

func (h *WizardHandler) CancelSession(c *gin.Context) {
	if err := h.Service.CancelSession(c.Request.Context(), c.Param("sessionID")); err != nil {
		respondWizardError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, nil, "booking session cancelled")
}
