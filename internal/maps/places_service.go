package maps

import (
	"context"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"

	"tripplanner/internal/modules/trip"
)

const (
	minPlaceRating      = 4.0
	placesPerQuery      = 3
	attractionBaseQuery = "top tourist attractions"
	// minHighlightReviews keeps thinly reviewed places out of highlights.
	minHighlightReviews = 100
)

// lodgingKeywords are excluded from attraction highlights; the text search
// often ranks hotels near landmarks alongside the landmarks themselves.
var lodgingKeywords = []string{"hotel", "hostel", "motel", "apartment", "b&b"}

// Place represents a simplified location result.
type Place struct {
	Name             string
	Address          string
	Rating           float32
	PlaceID          string
	UserRatingsTotal int
}

// SearchOptions refines a text search.
type SearchOptions struct {
	// SearchKeywords are prepended to the query (e.g. "Museums").
	SearchKeywords string
	// ExcludeKeywords disqualify any result whose name contains them.
	ExcludeKeywords []string
	// MinRatingsTotal drops places with fewer ratings.
	MinRatingsTotal int
}

// PlacesService looks up well-rated places with the Google Places text search.
type PlacesService struct {
	client *maps.Client
}

// NewPlacesService creates a new PlacesService with the given API Key.
func NewPlacesService(apiKey string, opts ...maps.ClientOption) (*PlacesService, error) {
	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesService{client: client}, nil
}

// SearchNearby returns up to three places rated 4.0 or better matching query in location.
func (s *PlacesService) SearchNearby(ctx context.Context, location string, query string, opts *SearchOptions) ([]Place, error) {
	resp, err := s.client.TextSearch(ctx, &maps.TextSearchRequest{
		Query:    searchQuery(location, query, opts),
		Language: "en",
	})
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}

	var (
		excluded   []string
		minReviews int
	)
	if opts != nil {
		excluded = opts.ExcludeKeywords
		minReviews = opts.MinRatingsTotal
	}

	var results []Place
	for _, result := range resp.Results {
		if result.Rating < minPlaceRating || result.UserRatingsTotal < minReviews || containsAny(result.Name, excluded) {
			continue
		}
		results = append(results, Place{
			Name:             result.Name,
			Address:          result.FormattedAddress,
			Rating:           result.Rating,
			PlaceID:          result.PlaceID,
			UserRatingsTotal: result.UserRatingsTotal,
		})
		if len(results) >= placesPerQuery {
			break
		}
	}
	return results, nil
}

// Highlights searches every destination for attractions matching the first interest,
// skipping lodging and places with fewer than minHighlightReviews ratings.
// Destinations whose search fails are skipped; an error is returned only when all fail.
func (s *PlacesService) Highlights(ctx context.Context, destinations []string, interests []trip.Interest) ([]trip.Highlight, error) {
	opts := &SearchOptions{
		ExcludeKeywords: lodgingKeywords,
		MinRatingsTotal: minHighlightReviews,
	}
	if len(interests) > 0 {
		opts.SearchKeywords = string(interests[0])
	}

	seen := make(map[string]struct{})
	var (
		out     []trip.Highlight
		lastErr error
		failed  int
	)
	for _, dest := range destinations {
		places, err := s.SearchNearby(ctx, dest, attractionBaseQuery, opts)
		if err != nil {
			lastErr = err
			failed++
			continue
		}
		for _, p := range places {
			if _, dup := seen[p.PlaceID]; dup {
				continue
			}
			seen[p.PlaceID] = struct{}{}
			out = append(out, trip.Highlight{
				Destination: dest,
				Name:        p.Name,
				Address:     p.Address,
				Rating:      p.Rating,
				Reviews:     p.UserRatingsTotal,
			})
		}
	}
	if failed > 0 && failed == len(destinations) {
		return nil, lastErr
	}
	return out, nil
}

func searchQuery(location, query string, opts *SearchOptions) string {
	full := query
	if opts != nil && opts.SearchKeywords != "" {
		full = opts.SearchKeywords + " " + full
	}
	if location != "" {
		full = fmt.Sprintf("%s in %s", full, location)
	}
	return full
}

func containsAny(s string, keywords []string) bool {
	lower := strings.ToLower(s)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
