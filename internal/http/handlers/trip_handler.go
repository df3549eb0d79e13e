// README: Trip handlers (research/plan/tips and form options).
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tripplanner/internal/ai"
	"tripplanner/internal/http/middleware"
	"tripplanner/internal/modules/trip"
	"tripplanner/internal/service"
)

type TripHandler struct {
	runner  *service.Runner
	timeout time.Duration
}

// NewTripHandler bounds every operation, including the wait for the session lock, by timeout.
func NewTripHandler(runner *service.Runner, timeout time.Duration) *TripHandler {
	if timeout <= 0 {
		timeout = 2 * service.DefaultTimeout
	}
	return &TripHandler{runner: runner, timeout: timeout}
}

type tripReq struct {
	Destinations []string `json:"destinations"`
	// DestinationsText is a comma-separated alternative to Destinations.
	DestinationsText    string   `json:"destinations_text"`
	StartDate           string   `json:"start_date"`
	EndDate             string   `json:"end_date"`
	Travelers           int      `json:"travelers"`
	TravelStyle         string   `json:"travel_style"`
	Budget              string   `json:"budget"`
	Accommodations      []string `json:"accommodations"`
	Interests           []string `json:"interests"`
	Mobility            string   `json:"mobility"`
	SpecialRequirements string   `json:"special_requirements"`
	// UseResearch only applies to plan; nil means true.
	UseResearch *bool `json:"use_research"`
}

func (r tripReq) toRequest() (trip.Request, error) {
	start, err := trip.ParseDate(r.StartDate)
	if err != nil {
		return trip.Request{}, err
	}
	end, err := trip.ParseDate(r.EndDate)
	if err != nil {
		return trip.Request{}, err
	}

	destinations := r.Destinations
	if len(destinations) == 0 {
		destinations = trip.ParseDestinations(r.DestinationsText)
	}

	req := trip.Request{
		Destinations:        trip.NormalizeDestinations(destinations),
		StartDate:           start,
		EndDate:             end,
		Travelers:           r.Travelers,
		Style:               trip.TravelStyle(r.TravelStyle),
		Budget:              trip.BudgetTier(r.Budget),
		Mobility:            trip.Mobility(r.Mobility),
		SpecialRequirements: r.SpecialRequirements,
	}
	for _, a := range r.Accommodations {
		req.Accommodations = append(req.Accommodations, trip.Accommodation(a))
	}
	for _, i := range r.Interests {
		req.Interests = append(req.Interests, trip.Interest(i))
	}
	return req, nil
}

type failureView struct {
	Reason  ai.FailureReason `json:"reason"`
	Message string           `json:"message"`
	Detail  string           `json:"detail,omitempty"`
}

type tripView struct {
	Destinations       []string `json:"destinations"`
	DurationDays       int      `json:"duration_days"`
	MultiDestination   bool     `json:"multi_destination"`
	DaysPerDestination int      `json:"days_per_destination"`
	ExportFilename     string   `json:"export_filename,omitempty"`
}

type operationResp struct {
	OK        bool              `json:"ok"`
	Operation service.Operation `json:"operation"`
	Mode      service.Mode      `json:"mode"`
	Text      string            `json:"text,omitempty"`
	Failure   *failureView      `json:"failure,omitempty"`
	Trip      tripView          `json:"trip"`
}

// Research handles POST /api/sessions/:id/research.
func (h *TripHandler) Research(c *gin.Context) { h.run(c, service.OpResearch) }

// Plan handles POST /api/sessions/:id/plan.
func (h *TripHandler) Plan(c *gin.Context) { h.run(c, service.OpPlan) }

// Tips handles POST /api/sessions/:id/tips.
func (h *TripHandler) Tips(c *gin.Context) { h.run(c, service.OpTips) }

func (h *TripHandler) run(c *gin.Context, op service.Operation) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var body tripReq
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	req, err := body.toRequest()
	if err != nil {
		writeDomainError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	out, err := h.runner.Run(ctx, service.RunInput{
		SessionID:   id,
		Caller:      middleware.CallerUID(c),
		Trip:        req,
		Operation:   op,
		UseResearch: body.UseResearch == nil || *body.UseResearch,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	normalized := req.Normalize()
	resp := operationResp{
		OK:        out.Result.OK(),
		Operation: op,
		Mode:      out.Mode,
		Text:      out.Result.Text,
		Trip: tripView{
			Destinations:       normalized.Destinations,
			DurationDays:       out.Derived.DurationDays,
			MultiDestination:   out.Derived.MultiDestination,
			DaysPerDestination: out.Derived.DaysPerDestination,
		},
	}
	if op == service.OpPlan && out.Result.OK() {
		resp.Trip.ExportFilename = out.Session.ItineraryFilename
	}
	if !out.Result.OK() {
		resp.Failure = &failureView{
			Reason:  out.Result.Reason,
			Message: out.Result.Message(),
			Detail:  out.Result.Detail,
		}
	}
	writeJSON(c, resultStatus(out.Result), resp)
}

// Options handles GET /api/options.
func (h *TripHandler) Options(c *gin.Context) {
	writeJSON(c, http.StatusOK, trip.Options())
}
