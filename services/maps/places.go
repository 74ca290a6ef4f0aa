package maps

import (
	"context"
	"fmt"
	"net/url"

	"voyago/models"
)

// Place is a search hit from the places API, trimmed to what the booking
// flow needs.
type Place struct {
	PlaceID     string          `json:"place_id"`
	Name        string          `json:"name"`
	Address     string          `json:"address"`
	Coordinates models.GeoPoint `json:"coordinates"`
}

type placesTextSearchResponse struct {
	Status  string `json:"status"`
	Results []struct {
		PlaceID          string `json:"place_id"`
		Name             string `json:"name"`
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// SearchPlaces runs a text search biased to the configured country. Used
// when a traveler pins a location that is not in the catalogue.
func (c *Client) SearchPlaces(ctx context.Context, query string) ([]Place, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("region", c.config.Country)

	var resp placesTextSearchResponse
	if err := c.getJSON(ctx, "/maps/api/place/textsearch/json", q, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "OK" && resp.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("place search failed (status %s)", resp.Status)
	}

	places := make([]Place, 0, len(resp.Results))
	for _, r := range resp.Results {
		places = append(places, Place{
			PlaceID: r.PlaceID,
			Name:    r.Name,
			Address: r.FormattedAddress,
			Coordinates: models.GeoPoint{
				Lat: r.Geometry.Location.Lat,
				Lng: r.Geometry.Location.Lng,
			},
		})
	}
	return places, nil
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves a free-form address to coordinates.
func (c *Client) Geocode(ctx context.Context, address string) (*models.GeoPoint, error) {
	q := url.Values{}
	q.Set("address", address)
	q.Set("region", c.config.Country)

	var resp geocodeResponse
	if err := c.getJSON(ctx, "/maps/api/geocode/json", q, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "OK" || len(resp.Results) == 0 {
		return nil, fmt.Errorf("address not found (status %s)", resp.Status)
	}
	loc := resp.Results[0].Geometry.Location
	return &models.GeoPoint{Lat: loc.Lat, Lng: loc.Lng}, nil
}

// ReverseGeocode resolves coordinates to a formatted address.
func (c *Client) ReverseGeocode(ctx context.Context, point models.GeoPoint) (string, error) {
	q := url.Values{}
	q.Set("latlng", fmt.Sprintf("%f,%f", point.Lat, point.Lng))

	var resp geocodeResponse
	if err := c.getJSON(ctx, "/maps/api/geocode/json", q, &resp); err != nil {
		return "", err
	}
	if resp.Status != "OK" || len(resp.Results) == 0 {
		return "", fmt.Errorf("no address at %f,%f (status %s)", point.Lat, point.Lng, resp.Status)
	}
	return resp.Results[0].FormattedAddress, nil
}
