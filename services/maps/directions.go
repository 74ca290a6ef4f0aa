package maps

import (
	"context"
	"fmt"
	"net/url"

	"voyago/models"
)

// RouteEstimate is a routed leg between two coordinates.
type RouteEstimate struct {
	DistanceKm    float64 `json:"distance_km"`
	DurationHours float64 `json:"duration_hours"`
	Polyline      string  `json:"polyline,omitempty"`
}

type directionsResponse struct {
	Status string `json:"status"`
	Routes []struct {
		OverviewPolyline struct {
			Points string `json:"points"`
		} `json:"overview_polyline"`
		Legs []struct {
			Distance struct {
				Value int64 `json:"value"` // meters
			} `json:"distance"`
			Duration struct {
				Value int64 `json:"value"` // seconds
			} `json:"duration"`
		} `json:"legs"`
	} `json:"routes"`
}

// Directions routes between two coordinates and returns the total distance
// and driving duration. A route not found is an error; callers decide how
// to degrade.
func (c *Client) Directions(ctx context.Context, origin, dest models.GeoPoint) (*RouteEstimate, error) {
	query := url.Values{}
	query.Set("origin", fmt.Sprintf("%f,%f", origin.Lat, origin.Lng))
	query.Set("destination", fmt.Sprintf("%f,%f", dest.Lat, dest.Lng))
	query.Set("region", c.config.Country)

	var resp directionsResponse
	if err := c.getJSON(ctx, "/maps/api/directions/json", query, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "OK" || len(resp.Routes) == 0 {
		return nil, fmt.Errorf("no route found (status %s)", resp.Status)
	}

	route := resp.Routes[0]
	estimate := &RouteEstimate{Polyline: route.OverviewPolyline.Points}
	for _, leg := range route.Legs {
		estimate.DistanceKm += float64(leg.Distance.Value) / 1000
		estimate.DurationHours += float64(leg.Duration.Value) / 3600
	}
	return estimate, nil
}
