package main

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"tripplanner/internal/modules/trip"
)

const defaultTripDays = 7

type tripFlags struct {
	destinations   []string
	destinationCSV string
	start          string
	end            string
	days           int
	travelers      int
	style          string
	budget         string
	accommodations []string
	interests      []string
	mobility       string
	requirements   string
}

func (f *tripFlags) register(fs *pflag.FlagSet) {
	fs.StringArrayVarP(&f.destinations, "destination", "d", nil, "destination, repeat for multi-destination trips (commas allowed, e.g. \"Tokyo, Japan\")")
	fs.StringVar(&f.destinationCSV, "destinations", "", "comma-separated destinations")
	fs.StringVar(&f.start, "start", "", "start date YYYY-MM-DD (default today)")
	fs.StringVar(&f.end, "end", "", "end date YYYY-MM-DD")
	fs.IntVar(&f.days, "days", 0, fmt.Sprintf("trip length in days when --end is not given (default %d)", defaultTripDays))
	fs.IntVar(&f.travelers, "travelers", 2, fmt.Sprintf("number of travelers (%d-%d)", trip.MinTravelers, trip.MaxTravelers))
	fs.StringVar(&f.style, "style", string(trip.StyleCultural), "travel style")
	fs.StringVar(&f.budget, "budget", string(trip.BudgetMid), "budget tier")
	fs.StringArrayVar(&f.accommodations, "accommodation", []string{string(trip.AccommodationHotels)}, "accommodation type, repeatable")
	fs.StringArrayVar(&f.interests, "interest", []string{string(trip.InterestFood), string(trip.InterestHistory)}, "interest, repeatable")
	fs.StringVar(&f.mobility, "mobility", string(trip.MobilityPublicTransport), "mobility preference")
	fs.StringVar(&f.requirements, "requirements", "", "special requirements")
}

// request turns the flags into a validated trip request. now supplies the default start date.
func (f *tripFlags) request(now time.Time) (trip.Request, error) {
	var start time.Time
	if f.start == "" {
		y, m, d := now.Date()
		start = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	} else {
		var err error
		if start, err = trip.ParseDate(f.start); err != nil {
			return trip.Request{}, err
		}
	}

	var end time.Time
	switch {
	case f.end != "":
		var err error
		if end, err = trip.ParseDate(f.end); err != nil {
			return trip.Request{}, err
		}
	case f.days > 0:
		end = start.AddDate(0, 0, f.days)
	default:
		end = start.AddDate(0, 0, defaultTripDays)
	}

	destinations := append([]string{}, f.destinations...)
	destinations = append(destinations, trip.ParseDestinations(f.destinationCSV)...)

	req := trip.Request{
		Destinations:        trip.NormalizeDestinations(destinations),
		StartDate:           start,
		EndDate:             end,
		Travelers:           f.travelers,
		Style:               trip.TravelStyle(f.style),
		Budget:              trip.BudgetTier(f.budget),
		Mobility:            trip.Mobility(f.mobility),
		SpecialRequirements: f.requirements,
	}
	for _, a := range f.accommodations {
		req.Accommodations = append(req.Accommodations, trip.Accommodation(a))
	}
	for _, i := range f.interests {
		req.Interests = append(req.Interests, trip.Interest(i))
	}

	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return trip.Request{}, err
	}
	return req, nil
}
