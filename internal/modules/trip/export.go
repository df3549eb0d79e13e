// README: Deterministic file naming for exported itineraries.
package trip

import (
	"fmt"
	"strings"
)

const maxNamedDestinations = 3

var filenameReplacer = strings.NewReplacer(", ", "_", ",", "_", " ", "_")

// ExportFilename names the plain-text itinerary download, e.g.
// Tokyo_Kyoto_Osaka_plus1more_12days_itinerary.txt.
func ExportFilename(destinations []string, days int) string {
	named := destinations
	if len(named) > maxNamedDestinations {
		named = named[:maxNamedDestinations]
	}
	base := strings.Join(named, "_")
	if extra := len(destinations) - len(named); extra > 0 {
		base += fmt.Sprintf("_plus%dmore", extra)
	}
	return filenameReplacer.Replace(fmt.Sprintf("%s_%ddays_itinerary.txt", base, days))
}

// ExportFilename names the itinerary download for this request.
func (r Request) ExportFilename() string {
	return ExportFilename(r.Destinations, r.DurationDays())
}
