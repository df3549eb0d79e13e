package maps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	gmaps "googlemaps.github.io/maps"

	"tripplanner/internal/modules/trip"
)

func TestTravelMode(t *testing.T) {
	cases := map[trip.Mobility]gmaps.Mode{
		trip.MobilityCarRental:       gmaps.TravelModeDriving,
		trip.MobilityMixed:           gmaps.TravelModeDriving,
		trip.MobilityPublicTransport: gmaps.TravelModeTransit,
		trip.MobilityWalking:         gmaps.TravelModeTransit,
	}
	for mobility, want := range cases {
		assert.Equal(t, want, TravelMode(mobility), "mobility %s", mobility)
	}
}

func TestNewRouteServiceRequiresKey(t *testing.T) {
	_, err := NewRouteService("")
	assert.Error(t, err)
}
