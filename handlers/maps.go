package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"voyago/models"
	"voyago/services/maps"
	"voyago/utils"
)

// MapsHandler exposes place search and geocoding for the destination
// picker's custom-pin flow.
type MapsHandler struct {
	Maps *maps.Client
}

func NewMapsHandler(client *maps.Client) *MapsHandler {
	return &MapsHandler{Maps: client}
}

func (h *MapsHandler) SearchPlaces(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		utils.RespondError(c, utils.NewValidationError(map[string]string{"q": "search query is required"}))
		return
	}
	places, err := h.Maps.SearchPlaces(c.Request.Context(), query)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, places, "")
}

func (h *MapsHandler) Geocode(c *gin.Context) {
	address := c.Query("address")
	if address == "" {
		utils.RespondError(c, utils.NewValidationError(map[string]string{"address": "address is required"}))
		return
	}
	point, err := h.Maps.Geocode(c.Request.Context(), address)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, point, "")
}

func parseLatLng(c *gin.Context) (models.GeoPoint, bool) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		utils.RespondError(c, utils.NewValidationError(map[string]string{"coordinates": "lat and lng must be numbers"}))
		return models.GeoPoint{}, false
	}
	return models.GeoPoint{Lat: lat, Lng: lng}, true
}

func parseNamedLatLng(c *gin.Context, latParam, lngParam string) (models.GeoPoint, bool) {
	lat, latErr := strconv.ParseFloat(c.Query(latParam), 64)
	lng, lngErr := strconv.ParseFloat(c.Query(lngParam), 64)
	if latErr != nil || lngErr != nil {
		utils.RespondError(c, utils.NewValidationError(map[string]string{
			latParam: latParam + " and " + lngParam + " must be numbers",
		}))
		return models.GeoPoint{}, false
	}
	return models.GeoPoint{Lat: lat, Lng: lng}, true
}

func (h *MapsHandler) Directions(c *gin.Context) {
	origin, ok := parseNamedLatLng(c, "origin_lat", "origin_lng")
	if !ok {
		return
	}
	dest, ok := parseNamedLatLng(c, "dest_lat", "dest_lng")
	if !ok {
		return
	}
	estimate, err := h.Maps.Directions(c.Request.Context(), origin, dest)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, estimate, "")
}

func (h *MapsHandler) ReverseGeocode(c *gin.Context) {
	point, ok := parseLatLng(c)
	if !ok {
		return
	}
	address, err := h.Maps.ReverseGeocode(c.Request.Context(), point)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, gin.H{"address": address}, "")
}
