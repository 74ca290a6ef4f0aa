package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	destinationRepo "voyago/database/repository/destination"
	"voyago/models"
	"voyago/utils"
)

// DestinationHandler serves the destination catalogue. Browsing is public;
// catalogue edits are admin-only and guarded in the routes.
type DestinationHandler struct {
	Repo destinationRepo.DestinationRepository
}

func NewDestinationHandler(repo destinationRepo.DestinationRepository) *DestinationHandler {
	return &DestinationHandler{Repo: repo}
}

func (h *DestinationHandler) List(c *gin.Context) {
	destinations, err := h.Repo.GetAll(c.Query("category"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, destinations, "")
}

func (h *DestinationHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		utils.RespondError(c, utils.NewValidationError(map[string]string{"q": "search query is required"}))
		return
	}
	destinations, err := h.Repo.Search(query)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, destinations, "")
}

func (h *DestinationHandler) GetByID(c *gin.Context) {
	dest, err := h.Repo.GetByID(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if dest == nil {
		utils.RespondError(c, utils.NewNotFoundError("destination not found"))
		return
	}
	utils.RespondOK(c, http.StatusOK, dest, "")
}

func (h *DestinationHandler) Create(c *gin.Context) {
	var dest models.Destination
	if err := c.ShouldBindJSON(&dest); err != nil {
		utils.RespondError(c, utils.NewValidationError(map[string]string{"body": "invalid request body"}))
		return
	}
	errs := utils.Require(utils.FieldErrors{}, map[string]string{
		"name":     dest.Name,
		"location": dest.Location,
		"category": dest.Category,
	})
	if errs.Any() {
		utils.RespondError(c, utils.NewValidationError(errs))
		return
	}

	now := time.Now()
	dest.ID = uuid.New().String()
	dest.CreatedAt = now
	dest.UpdatedAt = now
	if err := h.Repo.Create(&dest); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusCreated, dest, "")
}

func (h *DestinationHandler) Update(c *gin.Context) {
	existing, err := h.Repo.GetByID(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if existing == nil {
		utils.RespondError(c, utils.NewNotFoundError("destination not found"))
		return
	}

	var dest models.Destination
	if err := c.ShouldBindJSON(&dest); err != nil {
		utils.RespondError(c, utils.NewValidationError(map[string]string{"body": "invalid request body"}))
		return
	}
	dest.ID = existing.ID
	dest.CreatedAt = existing.CreatedAt
	dest.UpdatedAt = time.Now()
	if err := h.Repo.Update(&dest); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, dest, "")
}

func (h *DestinationHandler) Delete(c *gin.Context) {
	if err := h.Repo.Delete(c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, nil, "destination deleted")
}
