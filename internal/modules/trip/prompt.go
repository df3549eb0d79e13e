// README: Prompt builder; turns a Request into researcher, planner and tips packets.
package trip

import (
	"fmt"
	"strings"
	"time"

	"tripplanner/internal/ai"
)

// ResearchPacket wraps BuildResearchPrompt with the researcher persona.
func ResearchPacket(r Request, highlights ...Highlight) ai.Packet {
	where := destinationLabel(r)
	return ai.Packet{
		SystemDescription: fmt.Sprintf(`You are an expert travel researcher specializing in %s travel.
Research comprehensive information about %s for a %d-day trip.
Focus on finding the best %s accommodations, activities related to %s, and travel options for %s.
Consider the budget range of %s and group size of %d travelers.
Provide detailed, accurate, and up-to-date information about attractions, dining, transportation, and local experiences.`,
			lower(string(r.Style)), where, r.DurationDays(), joinAccommodations(r), joinInterests(r),
			lower(string(r.Mobility)), r.Budget, r.Travelers),
		Instructions: []string{
			fmt.Sprintf("Research %s thoroughly for %s travelers", where, lower(string(r.Style))),
			fmt.Sprintf("Focus on %s activities and %s accommodations", joinInterests(r), joinAccommodations(r)),
			fmt.Sprintf("Consider %s budget and %s transportation preferences", r.Budget, r.Mobility),
			"Provide specific recommendations with practical details like pricing, location, and booking information",
			"Response should be under 2k tokens and well-structured",
		},
		UserPrompt: BuildResearchPrompt(r, highlights...),
		Intent:     ai.IntentResearch,
	}
}

// ItineraryPacket wraps BuildItineraryPrompt with the planner persona.
func ItineraryPacket(r Request, priorResearch string, legs ...Leg) ai.Packet {
	days := r.DurationDays()
	where := destinationLabel(r)
	instructions := []string{
		fmt.Sprintf("Create a detailed %d-day itinerary for %s", days, where),
		"Structure each day with morning, afternoon, and evening activities",
		"Include specific recommendations for dining, transportation, and accommodations",
		"Provide estimated costs and time allocations for each activity",
		"Consider the group size, travel style, and special requirements",
		"Add practical tips and local insights",
	}
	if len(r.Destinations) > 1 {
		instructions = append(instructions, "Mark every travel day between destinations and keep transfers realistic")
	}
	instructions = append(instructions, "Response should be under 2k tokens and well-structured")

	return ai.Packet{
		SystemDescription: fmt.Sprintf(`You are a professional travel planner creating a detailed %d-day itinerary for %s.
The trip is for %d travelers with a %s travel style and %s budget.
Key interests: %s
Accommodation preferences: %s
Transportation: %s
Special requirements: %s

Create a comprehensive day-by-day itinerary that includes:
- Daily activities and attractions
- Meal recommendations
- Transportation suggestions
- Estimated costs and timing
- Backup options for weather-dependent activities`,
			days, where, r.Travelers, lower(string(r.Style)), r.Budget, joinInterests(r),
			joinAccommodations(r), r.Mobility, specialRequirements(r)),
		Instructions: instructions,
		UserPrompt:   BuildItineraryPrompt(r, priorResearch, legs...),
		Intent:       ai.IntentItinerary,
	}
}

// TipsPacket asks for general travel advice about the destinations.
func TipsPacket(r Request) ai.Packet {
	return ai.Packet{
		SystemDescription: "You provide practical travel tips and advice",
		UserPrompt:        BuildTipsPrompt(r),
		Intent:            ai.IntentTips,
	}
}

// BuildTipsPrompt is the quick-tips question for the trip's destinations.
func BuildTipsPrompt(r Request) string {
	return fmt.Sprintf("Provide essential travel tips for visiting %s", destinationLabel(r))
}

// BuildResearchPrompt asks for background information on every destination.
// highlights, when given, are listed for the model to verify and expand on.
// Output depends only on its inputs.
func BuildResearchPrompt(r Request, highlights ...Highlight) string {
	d := r.Derive()
	var b strings.Builder

	if d.MultiDestination {
		fmt.Fprintf(&b, "Research a %d-day multi-destination %s trip for %d travelers covering %d destinations: %s.\n",
			d.DurationDays, lower(string(r.Style)), r.Travelers, len(r.Destinations), strings.Join(r.Destinations, ", "))
		fmt.Fprintf(&b, "Route: %s\n", strings.Join(r.Destinations, " -> "))
		fmt.Fprintf(&b, "Suggested split: about %d days per destination (a suggestion, adjust as needed)\n", d.DaysPerDestination)
	} else {
		fmt.Fprintf(&b, "Research %s for a %d-day %s trip for %d travelers.\n",
			r.Destinations[0], d.DurationDays, lower(string(r.Style)), r.Travelers)
	}
	writePreferences(&b, r)

	if !d.MultiDestination {
		b.WriteString("\nProvide comprehensive information about:\n")
		writeNumbered(&b, singleResearchTopics(r.Destinations[0]))
		writeHighlights(&b, highlights)
		return b.String()
	}

	b.WriteString("\nFor each destination, provide comprehensive information about:\n")
	writeNumbered(&b, destinationTopics)

	b.WriteString("\nInter-City Transportation & Logistics:\n")
	for i := 0; i+1 < len(r.Destinations); i++ {
		fmt.Fprintf(&b, "- %s to %s: transport options (train, flight, bus, car), travel time, cost, and booking tips\n",
			r.Destinations[i], r.Destinations[i+1])
	}
	b.WriteString("\nRoute Ordering:\n")
	fmt.Fprintf(&b, "- Is the order %s efficient, or would a different sequence save time or money?\n",
		strings.Join(r.Destinations, " -> "))
	b.WriteString("\nLuggage Handling:\n")
	b.WriteString("- Luggage storage, forwarding services, and packing advice for moving between cities\n")
	b.WriteString("\nComparative Budget Breakdown:\n")
	b.WriteString("- Compare typical daily costs for lodging, food, and activities across the destinations\n")
	writeHighlights(&b, highlights)
	return b.String()
}

// BuildItineraryPrompt asks for a day-by-day plan. priorResearch, when non-empty,
// is appended verbatim; legs, when given, list estimated travel between destinations.
// Output depends only on its inputs.
func BuildItineraryPrompt(r Request, priorResearch string, legs ...Leg) string {
	d := r.Derive()
	var b strings.Builder

	b.WriteString("Create a detailed itinerary for:\n")
	if d.MultiDestination {
		fmt.Fprintf(&b, "Destinations: %s\n", strings.Join(r.Destinations, ", "))
	} else {
		fmt.Fprintf(&b, "Destination: %s\n", r.Destinations[0])
	}
	fmt.Fprintf(&b, "Duration: %d days (from %s to %s)\n",
		d.DurationDays, r.StartDate.Format(DateLayout), r.EndDate.Format(DateLayout))
	fmt.Fprintf(&b, "Travelers: %d people\n", r.Travelers)
	fmt.Fprintf(&b, "Travel Style: %s\n", r.Style)
	fmt.Fprintf(&b, "Budget: %s\n", r.Budget)
	fmt.Fprintf(&b, "Interests: %s\n", joinInterests(r))
	fmt.Fprintf(&b, "Accommodations: %s\n", joinAccommodations(r))
	fmt.Fprintf(&b, "Transportation: %s\n", r.Mobility)
	fmt.Fprintf(&b, "Special Requirements: %s\n", specialRequirements(r))

	if d.MultiDestination {
		fmt.Fprintf(&b, "\nRoute: %s\n", strings.Join(r.Destinations, " -> "))
		fmt.Fprintf(&b, "Suggested Allocation: about %d days per destination (a suggestion, not a constraint)\n",
			d.DaysPerDestination)

		b.WriteString("\nInclude for this multi-destination trip:\n")
		b.WriteString("- A day-by-day plan grouped by destination\n")
		b.WriteString("- Inter-City Transportation: travel days, modes, departure times, and costs between consecutive destinations\n")
		b.WriteString("- Route Ordering: confirm the visiting order or propose a better one\n")
		b.WriteString("- Luggage Handling: how to move or store bags on transfer days\n")
		b.WriteString("- Comparative Budget Breakdown: estimated spend per destination\n")

		if len(legs) > 0 {
			b.WriteString("\nEstimated Travel Between Destinations:\n")
			for _, leg := range legs {
				fmt.Fprintf(&b, "- %s -> %s: %s (%s)\n", leg.From, leg.To, formatDuration(leg.Duration), leg.Distance)
			}
		}
	}

	if priorResearch != "" {
		b.WriteString("\n\nResearch Information:\n")
		b.WriteString(priorResearch)
	}
	return b.String()
}

var destinationTopics = []string{
	"Top attractions and activities",
	"Recommended accommodations",
	"Local dining options",
	"Transportation methods within the destination",
	"Cultural tips and local customs",
	"Weather considerations",
	"Budget estimates",
}

func singleResearchTopics(destination string) []string {
	return []string{
		"Top attractions and activities",
		"Recommended accommodations",
		"Local dining options",
		"Transportation methods",
		"Cultural tips and local customs",
		"Weather considerations",
		"Budget estimates",
		"Best neighborhoods to stay in",
		"Day trips from " + destination,
		"Shopping and local markets",
	}
}

func writePreferences(b *strings.Builder, r Request) {
	fmt.Fprintf(b, "Budget: %s\n", r.Budget)
	fmt.Fprintf(b, "Interests: %s\n", joinInterests(r))
	fmt.Fprintf(b, "Accommodation preferences: %s\n", joinAccommodations(r))
	fmt.Fprintf(b, "Transportation: %s\n", r.Mobility)
	fmt.Fprintf(b, "Special requirements: %s\n", specialRequirements(r))
}

func writeHighlights(b *strings.Builder, highlights []Highlight) {
	if len(highlights) == 0 {
		return
	}
	b.WriteString("\nWell-Rated Places to Verify:\n")
	for _, h := range highlights {
		fmt.Fprintf(b, "- %s (%s): %s, rated %.1f", h.Name, h.Destination, h.Address, h.Rating)
		if h.Reviews > 0 {
			fmt.Fprintf(b, " from %d reviews", h.Reviews)
		}
		b.WriteString("\n")
	}
}

func writeNumbered(b *strings.Builder, items []string) {
	for i, item := range items {
		fmt.Fprintf(b, "%d. %s\n", i+1, item)
	}
}

func destinationLabel(r Request) string {
	switch len(r.Destinations) {
	case 0:
		return ""
	case 1:
		return r.Destinations[0]
	default:
		return strings.Join(r.Destinations[:len(r.Destinations)-1], ", ") + " and " + r.Destinations[len(r.Destinations)-1]
	}
}

func joinInterests(r Request) string {
	parts := make([]string, len(r.Interests))
	for i, v := range r.Interests {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

func joinAccommodations(r Request) string {
	parts := make([]string, len(r.Accommodations))
	for i, v := range r.Accommodations {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

func specialRequirements(r Request) string {
	if r.SpecialRequirements == "" {
		return "None"
	}
	return r.SpecialRequirements
}

func lower(s string) string { return strings.ToLower(s) }

// formatDuration renders "3h 5m" style text; durations are rounded to the minute.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, m)
	}
}
