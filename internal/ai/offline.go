package ai

import (
	"context"
	"strings"
)

// OfflineMarker appears in every offline response.
const OfflineMarker = "(Offline Mode)"

// offlineRule maps a keyword in the user prompt to a canned template.
type offlineRule struct {
	keyword  string
	template string
}

// Rules are evaluated in order; the first keyword found wins.
var offlineRules = []offlineRule{
	{keyword: "research", template: researchTemplate},
	{keyword: "itinerary", template: itineraryTemplate},
}

// Offline answers with static templates when no credential is available.
// It is a degraded mode, not a model simulation, and never fails.
type Offline struct{}

var _ Completer = Offline{}

func (Offline) Run(_ context.Context, packet Packet) Result {
	return Success(offlineTemplate(packet))
}

func offlineTemplate(packet Packet) string {
	switch packet.Intent {
	case IntentResearch:
		return researchTemplate
	case IntentItinerary:
		return itineraryTemplate
	case IntentTips:
		return tipsTemplate
	}

	prompt := strings.ToLower(packet.UserPrompt)
	for _, rule := range offlineRules {
		if strings.Contains(prompt, rule.keyword) {
			return rule.template
		}
	}
	return tipsTemplate
}

const researchTemplate = `🔍 **Research Template** (Offline Mode)

**Note**: This is a basic template. For detailed, AI-powered research, please provide a valid API key.

**Top Attractions**:
- Visit major landmarks and tourist attractions
- Explore local museums and cultural sites
- Experience natural attractions and parks

**Accommodations**:
- Research hotels in central locations
- Consider vacation rentals for longer stays
- Check reviews and amenities

**Dining**:
- Try local specialties and traditional cuisine
- Visit highly-rated restaurants
- Explore local markets and street food

**Transportation**:
- Research public transportation options
- Consider ride-sharing or car rentals
- Plan airport transfers

**Tips**:
- Check visa requirements
- Research local customs and etiquette
- Download offline maps and translation apps
`

const itineraryTemplate = `📅 **Itinerary Template** (Offline Mode)

**Note**: This is a basic template. For personalized, AI-powered itineraries, please provide a valid API key.

**Day 1**: Arrival & City Overview
- Morning: Arrive and check-in to accommodation
- Afternoon: Explore city center and main attractions
- Evening: Welcome dinner at local restaurant

**Day 2**: Cultural Exploration
- Morning: Visit museums and historical sites
- Afternoon: Guided city tour or walking tour
- Evening: Local entertainment or cultural show

**Day 3**: Nature & Adventure
- Morning: Visit parks or natural attractions
- Afternoon: Outdoor activities based on location
- Evening: Sunset viewing and dinner

**Additional Days**:
- Continue exploring based on your interests
- Mix of relaxation and adventure activities
- Shopping and souvenir hunting
- Day trips to nearby attractions

**General Tips**:
- Book popular attractions in advance
- Allow flexibility for weather changes
- Keep emergency contacts handy
- Stay hydrated and take breaks
`

const tipsTemplate = `💡 **Travel Tips Template** (Offline Mode)

**Note**: These are generic tips. Provide a valid API key for destination-specific advice.

**Essential Preparations**:
- Check passport expiration dates
- Research visa requirements
- Get travel insurance
- Notify banks of travel dates

**Packing Tips**:
- Check weather forecasts
- Pack versatile clothing
- Bring necessary medications
- Don't forget chargers and adapters

**Safety & Health**:
- Research local emergency numbers
- Keep copies of important documents
- Stay aware of your surroundings
- Follow local health guidelines

**Money Matters**:
- Research local currency and exchange rates
- Have multiple payment methods
- Keep some cash for small purchases
- Understand tipping customs
`
