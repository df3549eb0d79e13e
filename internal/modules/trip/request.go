// README: Trip request parsing, validation and derived values.
package trip

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Options returns the fixed enumerations in display order.
func Options() FormOptions {
	return FormOptions{
		TravelStyles:   slices.Clone(travelStyles),
		BudgetTiers:    slices.Clone(budgetTiers),
		Accommodations: slices.Clone(accommodations),
		Interests:      slices.Clone(interests),
		Mobility:       slices.Clone(mobilities),
		MinTravelers:   MinTravelers,
		MaxTravelers:   MaxTravelers,
	}
}

func (s TravelStyle) Valid() bool   { return slices.Contains(travelStyles, s) }
func (b BudgetTier) Valid() bool    { return slices.Contains(budgetTiers, b) }
func (a Accommodation) Valid() bool { return slices.Contains(accommodations, a) }
func (i Interest) Valid() bool      { return slices.Contains(interests, i) }
func (m Mobility) Valid() bool      { return slices.Contains(mobilities, m) }

// Rank is the position of the tier in the budget ordering, or -1 if unknown.
func (b BudgetTier) Rank() int { return slices.Index(budgetTiers, b) }

// ParseDestinations splits free text on commas.
func ParseDestinations(raw string) []string {
	return NormalizeDestinations(strings.Split(raw, ","))
}

// NormalizeDestinations trims every entry and drops empty and repeated ones,
// keeping the first occurrence. Repeats are matched case-insensitively.
func NormalizeDestinations(in []string) []string {
	out := make([]string, 0, len(in))
	for _, d := range in {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		dup := slices.ContainsFunc(out, func(seen string) bool { return strings.EqualFold(seen, d) })
		if !dup {
			out = append(out, d)
		}
	}
	return out
}

// ParseDate reads a DateLayout string as a UTC calendar date.
func ParseDate(v string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidRequest, v)
	}
	return t, nil
}

// DurationDays is the whole number of days between the start and end dates.
func (r Request) DurationDays() int {
	start := dateOnly(r.StartDate)
	end := dateOnly(r.EndDate)
	return int(end.Sub(start).Hours() / 24)
}

// Actionable reports whether the request has a destination and a positive duration.
func (r Request) Actionable() bool {
	return len(r.Destinations) > 0 && r.DurationDays() > 0
}

// Derive computes the values prompts and exports depend on.
func (r Request) Derive() Derived {
	d := Derived{
		DurationDays:     r.DurationDays(),
		MultiDestination: len(r.Destinations) > 1,
	}
	if n := len(r.Destinations); n > 0 {
		d.DaysPerDestination = d.DurationDays / n
	}
	return d
}

// Validate checks every field against its enumeration and range.
func (r Request) Validate() error {
	if len(r.Destinations) == 0 {
		return fmt.Errorf("%w: at least one destination is required", ErrInvalidRequest)
	}
	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidRequest)
	}
	if dateOnly(r.EndDate).Before(dateOnly(r.StartDate)) {
		return fmt.Errorf("%w: end date is before start date", ErrInvalidRequest)
	}
	if r.DurationDays() <= 0 {
		return fmt.Errorf("%w: trip must last at least one day", ErrNotActionable)
	}
	if r.Travelers < MinTravelers || r.Travelers > MaxTravelers {
		return fmt.Errorf("%w: travelers must be between %d and %d", ErrInvalidRequest, MinTravelers, MaxTravelers)
	}
	if !r.Style.Valid() {
		return fmt.Errorf("%w: unknown travel style %q", ErrInvalidRequest, r.Style)
	}
	if !r.Budget.Valid() {
		return fmt.Errorf("%w: unknown budget tier %q", ErrInvalidRequest, r.Budget)
	}
	if len(r.Accommodations) == 0 {
		return fmt.Errorf("%w: at least one accommodation type is required", ErrInvalidRequest)
	}
	for _, a := range r.Accommodations {
		if !a.Valid() {
			return fmt.Errorf("%w: unknown accommodation %q", ErrInvalidRequest, a)
		}
	}
	if len(r.Interests) == 0 {
		return fmt.Errorf("%w: at least one interest is required", ErrInvalidRequest)
	}
	for _, i := range r.Interests {
		if !i.Valid() {
			return fmt.Errorf("%w: unknown interest %q", ErrInvalidRequest, i)
		}
	}
	if !r.Mobility.Valid() {
		return fmt.Errorf("%w: unknown mobility preference %q", ErrInvalidRequest, r.Mobility)
	}
	return nil
}

// Normalize trims destinations and drops duplicate set members.
func (r Request) Normalize() Request {
	r.Destinations = NormalizeDestinations(r.Destinations)
	r.Accommodations = dedupe(r.Accommodations)
	r.Interests = dedupe(r.Interests)
	r.SpecialRequirements = strings.TrimSpace(r.SpecialRequirements)
	r.StartDate = dateOnly(r.StartDate)
	r.EndDate = dateOnly(r.EndDate)
	return r
}

func dedupe[T comparable](in []T) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
