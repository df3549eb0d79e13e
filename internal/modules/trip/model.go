// README: Trip domain types (request, enumerations, derived info, sentinel errors).
package trip

import (
	"errors"
	"time"
)

var (
	ErrInvalidRequest = errors.New("invalid trip request")
	ErrNotActionable  = errors.New("trip request is not actionable")
)

const (
	MinTravelers = 1
	MaxTravelers = 20

	// DateLayout is the wire format for start and end dates.
	DateLayout = "2006-01-02"
)

type TravelStyle string

const (
	StyleHoneymoon  TravelStyle = "Honeymoon"
	StyleAdventure  TravelStyle = "Adventure"
	StyleRelaxation TravelStyle = "Relaxation"
	StyleCultural   TravelStyle = "Cultural"
	StyleLuxury     TravelStyle = "Luxury"
	StyleFamily     TravelStyle = "Family"
	StyleSolo       TravelStyle = "Solo"
	StyleBusiness   TravelStyle = "Business"
)

// BudgetTier values are ordered from cheapest to most expensive.
type BudgetTier string

const (
	BudgetLow     BudgetTier = "Budget ($)"
	BudgetMid     BudgetTier = "Mid-range ($$)"
	BudgetPremium BudgetTier = "Premium ($$$)"
	BudgetLuxury  BudgetTier = "Luxury ($$$$)"
)

type Accommodation string

const (
	AccommodationHotels         Accommodation = "Hotels"
	AccommodationHostels        Accommodation = "Hostels"
	AccommodationAirbnb         Accommodation = "Airbnb"
	AccommodationResorts        Accommodation = "Resorts"
	AccommodationBoutiqueHotels Accommodation = "Boutique Hotels"
	AccommodationCamping        Accommodation = "Camping"
)

type Interest string

const (
	InterestFood        Interest = "Food & Dining"
	InterestMuseums     Interest = "Museums"
	InterestNature      Interest = "Nature"
	InterestNightlife   Interest = "Nightlife"
	InterestShopping    Interest = "Shopping"
	InterestHistory     Interest = "History"
	InterestArt         Interest = "Art"
	InterestSports      Interest = "Sports"
	InterestPhotography Interest = "Photography"
)

type Mobility string

const (
	MobilityWalking         Mobility = "Walking"
	MobilityPublicTransport Mobility = "Public Transport"
	MobilityCarRental       Mobility = "Car Rental"
	MobilityMixed           Mobility = "Mixed"
)

var (
	travelStyles   = []TravelStyle{StyleHoneymoon, StyleAdventure, StyleRelaxation, StyleCultural, StyleLuxury, StyleFamily, StyleSolo, StyleBusiness}
	budgetTiers    = []BudgetTier{BudgetLow, BudgetMid, BudgetPremium, BudgetLuxury}
	accommodations = []Accommodation{AccommodationHotels, AccommodationHostels, AccommodationAirbnb, AccommodationResorts, AccommodationBoutiqueHotels, AccommodationCamping}
	interests      = []Interest{InterestFood, InterestMuseums, InterestNature, InterestNightlife, InterestShopping, InterestHistory, InterestArt, InterestSports, InterestPhotography}
	mobilities     = []Mobility{MobilityWalking, MobilityPublicTransport, MobilityCarRental, MobilityMixed}
)

// Request is a validated set of trip preferences collected by a presentation layer.
type Request struct {
	Destinations        []string
	StartDate           time.Time
	EndDate             time.Time
	Travelers           int
	Style               TravelStyle
	Budget              BudgetTier
	Accommodations      []Accommodation
	Interests           []Interest
	Mobility            Mobility
	SpecialRequirements string
}

// Derived holds values computed from a Request on every use. Never persisted.
type Derived struct {
	DurationDays       int
	MultiDestination   bool
	DaysPerDestination int
}

// Leg is an estimated journey between two consecutive destinations.
type Leg struct {
	From     string
	To       string
	Duration time.Duration
	Distance string
}

// Highlight is a well-rated place found near a destination.
type Highlight struct {
	Destination string
	Name        string
	Address     string
	Rating      float32
	// Reviews is the number of ratings behind Rating; zero when unknown.
	Reviews int
}

// FormOptions lists every enumeration a form needs to render its inputs.
type FormOptions struct {
	TravelStyles   []TravelStyle   `json:"travel_styles"`
	BudgetTiers    []BudgetTier    `json:"budget_tiers"`
	Accommodations []Accommodation `json:"accommodations"`
	Interests      []Interest      `json:"interests"`
	Mobility       []Mobility      `json:"mobility"`
	MinTravelers   int             `json:"min_travelers"`
	MaxTravelers   int             `json:"max_travelers"`
}
