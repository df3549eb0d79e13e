package maps

import (
	"context"
	"fmt"
	"time"

	"googlemaps.github.io/maps"

	"tripplanner/internal/modules/trip"
)

// RouteService estimates travel between destinations with the Google Directions API.
type RouteService struct {
	client *maps.Client
}

// NewRouteService creates a new RouteService with the given API Key.
func NewRouteService(apiKey string, opts ...maps.ClientOption) (*RouteService, error) {
	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &RouteService{client: client}, nil
}

// GetTravelEstimate returns the duration and distance string for a trip from origin to destination.
func (s *RouteService) GetTravelEstimate(ctx context.Context, origin, destination string, mode maps.Mode) (time.Duration, string, error) {
	r := &maps.DirectionsRequest{
		Origin:      origin,
		Destination: destination,
		Mode:        mode,
		Language:    "en",
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return 0, "", fmt.Errorf("maps api error: %w", err)
	}

	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return 0, "", fmt.Errorf("no route found from %s to %s", origin, destination)
	}

	leg := routes[0].Legs[0]
	return leg.Duration, leg.Distance.HumanReadable, nil
}

// LegEstimates returns one estimate per pair of consecutive destinations.
// The first failing leg aborts the whole lookup.
func (s *RouteService) LegEstimates(ctx context.Context, destinations []string, mobility trip.Mobility) ([]trip.Leg, error) {
	mode := TravelMode(mobility)
	legs := make([]trip.Leg, 0, len(destinations))
	for i := 0; i+1 < len(destinations); i++ {
		from, to := destinations[i], destinations[i+1]
		dur, dist, err := s.GetTravelEstimate(ctx, from, to, mode)
		if err != nil {
			return nil, err
		}
		legs = append(legs, trip.Leg{From: from, To: to, Duration: dur, Distance: dist})
	}
	return legs, nil
}

// TravelMode maps a mobility preference to a Directions mode suitable for inter-city travel.
// Walkers still cross between cities on public transport.
func TravelMode(m trip.Mobility) maps.Mode {
	switch m {
	case trip.MobilityCarRental, trip.MobilityMixed:
		return maps.TravelModeDriving
	default:
		return maps.TravelModeTransit
	}
}
