package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"tripplanner/internal/ai"
	"tripplanner/internal/modules/trip"
)

// DefaultTimeout bounds a single completion call, the only blocking step of an operation.
const DefaultTimeout = 90 * time.Second

// Operation selects what the planner produces.
type Operation string

const (
	OpResearch Operation = "research"
	OpPlan     Operation = "plan"
	OpTips     Operation = "tips"
)

// ParseOperation accepts the lowercase operation names.
func ParseOperation(v string) (Operation, error) {
	switch op := Operation(strings.ToLower(strings.TrimSpace(v))); op {
	case OpResearch, OpPlan, OpTips:
		return op, nil
	default:
		return "", fmt.Errorf("unknown operation %q", v)
	}
}

// Mode tells the caller which completion client answers.
type Mode string

const (
	ModeRemote  Mode = "remote"
	ModeOffline Mode = "offline"
)

// RouteEstimator returns travel estimates between consecutive destinations.
type RouteEstimator interface {
	LegEstimates(ctx context.Context, destinations []string, mobility trip.Mobility) ([]trip.Leg, error)
}

// PlaceFinder returns well-rated places for the destinations.
type PlaceFinder interface {
	Highlights(ctx context.Context, destinations []string, interests []trip.Interest) ([]trip.Highlight, error)
}

// Input is one orchestrated operation. Credential is the session override, if any.
type Input struct {
	Trip          trip.Request
	Operation     Operation
	Credential    string
	PriorResearch string
}

// TripPlanner picks a completion client, builds the prompt, and runs it.
// It keeps no trip data between calls.
type TripPlanner struct {
	resolver  *ai.Resolver
	backend   ai.Backend
	offline   ai.Completer
	routes    RouteEstimator
	places    PlaceFinder
	model     string
	maxTokens int
	timeout   time.Duration
	logger    *zap.Logger
}

// Option configures a TripPlanner.
type Option func(*TripPlanner)

// WithRouteEstimator enables leg estimates in multi-destination itineraries.
func WithRouteEstimator(r RouteEstimator) Option {
	return func(p *TripPlanner) { p.routes = r }
}

// WithPlaceFinder enables place highlights in research prompts.
func WithPlaceFinder(f PlaceFinder) Option {
	return func(p *TripPlanner) { p.places = f }
}

// WithModel overrides the backend's default model.
func WithModel(model string) Option {
	return func(p *TripPlanner) { p.model = model }
}

// WithMaxTokens sets the output token ceiling.
func WithMaxTokens(n int) Option {
	return func(p *TripPlanner) { p.maxTokens = n }
}

// WithTimeout bounds each completion call.
func WithTimeout(d time.Duration) Option {
	return func(p *TripPlanner) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithLogger sets the logger; the default discards.
func WithLogger(l *zap.Logger) Option {
	return func(p *TripPlanner) { p.logger = l }
}

// NewTripPlanner creates a TripPlanner that calls backend when a credential resolves.
func NewTripPlanner(resolver *ai.Resolver, backend ai.Backend, opts ...Option) *TripPlanner {
	p := &TripPlanner{
		resolver:  resolver,
		backend:   backend,
		offline:   ai.Offline{},
		maxTokens: ai.DefaultMaxTokens,
		timeout:   DefaultTimeout,
		logger:    zap.NewNop(),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Mode reports which client an operation with this session override would use.
func (p *TripPlanner) Mode(credential string) Mode {
	if p.resolver.Available(credential) {
		return ModeRemote
	}
	return ModeOffline
}

// Client is a resolved choice of completer. The credential is read once, when it is built.
type Client struct {
	Mode      Mode
	completer ai.Completer
}

// Client resolves credential to the remote or offline completer.
func (p *TripPlanner) Client(credential string) Client {
	key, ok := p.resolver.Resolve(credential)
	if !ok {
		return Client{Mode: ModeOffline, completer: p.offline}
	}
	return Client{Mode: ModeRemote, completer: ai.NewRemote(p.backend, key, p.model, p.maxTokens)}
}

// Execute resolves the credential and runs one operation.
func (p *TripPlanner) Execute(ctx context.Context, in Input) ai.Result {
	return p.ExecuteWith(ctx, p.Client(in.Credential), in)
}

// ExecuteWith runs one operation on an already resolved client and returns its result unchanged.
// A remote failure is surfaced; it never falls back to the offline client.
func (p *TripPlanner) ExecuteWith(ctx context.Context, client Client, in Input) (res ai.Result) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("trip planner: panic while running operation",
				zap.String("operation", string(in.Operation)), zap.Any("panic", r))
			res = ai.Failure(ai.Unknown, fmt.Sprint(r))
		}
	}()

	req := in.Trip.Normalize()
	if !req.Actionable() {
		return ai.Failure(ai.Unknown, trip.ErrNotActionable.Error())
	}

	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	packet, err := p.buildPacket(callCtx, req, in)
	if err != nil {
		return ai.Failure(ai.Unknown, err.Error())
	}
	start := time.Now()
	res = client.completer.Run(callCtx, packet)

	fields := []zap.Field{
		zap.String("operation", string(in.Operation)),
		zap.String("mode", string(client.Mode)),
		zap.Int("destinations", len(req.Destinations)),
		zap.Duration("elapsed", time.Since(start)),
	}
	if res.OK() {
		p.logger.Info("trip planner: operation completed", append(fields, zap.Int("chars", len(res.Text)))...)
	} else {
		p.logger.Warn("trip planner: operation failed",
			append(fields, zap.String("reason", string(res.Reason)), zap.String("detail", res.Detail))...)
	}
	return res
}

func (p *TripPlanner) buildPacket(ctx context.Context, req trip.Request, in Input) (ai.Packet, error) {
	switch in.Operation {
	case OpResearch:
		return trip.ResearchPacket(req, p.highlights(ctx, req)...), nil
	case OpPlan:
		return trip.ItineraryPacket(req, in.PriorResearch, p.legs(ctx, req)...), nil
	case OpTips:
		return trip.TipsPacket(req), nil
	default:
		return ai.Packet{}, fmt.Errorf("unknown operation %q", in.Operation)
	}
}

// legs is best-effort: without estimates the itinerary prompt simply omits them.
func (p *TripPlanner) legs(ctx context.Context, req trip.Request) []trip.Leg {
	if p.routes == nil || len(req.Destinations) < 2 {
		return nil
	}
	legs, err := p.routes.LegEstimates(ctx, req.Destinations, req.Mobility)
	if err != nil {
		p.logger.Warn("trip planner: route estimates unavailable", zap.Error(err))
		return nil
	}
	return legs
}

func (p *TripPlanner) highlights(ctx context.Context, req trip.Request) []trip.Highlight {
	if p.places == nil {
		return nil
	}
	found, err := p.places.Highlights(ctx, req.Destinations, req.Interests)
	if err != nil {
		p.logger.Warn("trip planner: place highlights unavailable", zap.Error(err))
		return nil
	}
	return found
}
