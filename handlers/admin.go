package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	bookingRepo "voyago/database/repository/booking"
	userRepo "voyago/database/repository/user"
	"voyago/models"
	"voyago/utils"
)

// AdminHandler covers the admin dashboard: booking reports, account lists
// and driver verification.
type AdminHandler struct {
	Users    userRepo.UserRepository
	Bookings bookingRepo.BookingRepository
}

func NewAdminHandler(users userRepo.UserRepository, bookings bookingRepo.BookingRepository) *AdminHandler {
	return &AdminHandler{Users: users, Bookings: bookings}
}

// BookingReport aggregates booking counts and revenue for a period given
// as ?from=YYYY-MM-DD&to=YYYY-MM-DD; either bound may be omitted.
func (h *AdminHandler) BookingReport(c *gin.Context) {
	period := bookingRepo.ReportPeriod{From: c.Query("from"), To: c.Query("to")}
	for name, value := range map[string]string{"from": period.From, "to": period.To} {
		if value == "" {
			continue
		}
		if _, ok := utils.ParseDate(value); !ok {
			utils.RespondError(c, utils.NewValidationError(map[string]string{name: "must be YYYY-MM-DD"}))
			return
		}
	}

	report, err := h.Bookings.Report(period)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, report, "")
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.Users.GetAll(c.Query("role"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, users, "")
}

// VerifyDriver approves a driver after document review, letting their
// vehicles take bookings.
func (h *AdminHandler) VerifyDriver(c *gin.Context) {
	driverID := c.Param("id")
	account, err := h.Users.GetByID(driverID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if account == nil {
		utils.RespondError(c, utils.NewNotFoundError("driver not found"))
		return
	}
	if account.Role != models.RoleDriver {
		utils.RespondError(c, utils.NewValidationError(map[string]string{"id": "account is not a driver"}))
		return
	}

	if err := h.Users.SetFields(driverID, bson.M{"verified": true, "updated_at": time.Now()}); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, nil, "driver verified")
}
