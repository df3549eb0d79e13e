package ai

import "strings"

// Intent tells the offline client which template answers a packet.
type Intent string

const (
	IntentUnknown   Intent = ""
	IntentResearch  Intent = "research"
	IntentItinerary Intent = "itinerary"
	IntentTips      Intent = "tips"
)

// Packet is the unit handed to a Completer. Treat it as immutable once built.
type Packet struct {
	SystemDescription string
	Instructions      []string
	UserPrompt        string

	// Intent is optional; the offline client falls back to keyword rules when unset.
	Intent Intent
}

// SystemMessage merges the description and the instruction list into a single system turn.
func (p Packet) SystemMessage() string {
	return p.SystemDescription + "\n\nInstructions: " + strings.Join(p.Instructions, " ")
}

// FailureReason classifies why a completion produced no text.
type FailureReason string

const (
	NoCredential      FailureReason = "no_credential"
	RemoteUnavailable FailureReason = "remote_unavailable"
	Unknown           FailureReason = "unknown"
)

// Result is either a success carrying text or a failure carrying a reason.
type Result struct {
	Text   string
	Reason FailureReason
	// Detail preserves the underlying error message for diagnostics.
	Detail string
}

func Success(text string) Result {
	return Result{Text: text}
}

func Failure(reason FailureReason, detail string) Result {
	return Result{Reason: reason, Detail: detail}
}

// OK reports whether the result is a success.
func (r Result) OK() bool { return r.Reason == "" }

// Message is the user-facing text for a failed result.
func (r Result) Message() string {
	switch r.Reason {
	case "":
		return ""
	case NoCredential:
		return "API key not provided or invalid. Set an API key to enable AI responses."
	case RemoteUnavailable:
		return "The AI service is unavailable: " + r.Detail
	default:
		return "Something went wrong while preparing the request: " + r.Detail
	}
}
