package service

import (
	"context"

	"go.uber.org/zap"

	"tripplanner/internal/ai"
	"tripplanner/internal/modules/session"
	"tripplanner/internal/modules/trip"
)

// Quota charges one remote generation to an owner.
type Quota interface {
	UseToken(ctx context.Context, owner string) error
}

// RunInput is one button press from a presentation layer.
type RunInput struct {
	SessionID string
	Caller    string
	Trip      trip.Request
	Operation Operation
	// UseResearch feeds the session's last research text into a Plan operation.
	UseResearch bool
}

// RunOutput carries the unchanged completion result and the session after it was applied.
type RunOutput struct {
	Result  ai.Result
	Mode    Mode
	Derived trip.Derived
	Session *session.State
}

// Runner applies planner results to session state. Operations on the same session
// are serialized by the session lock; failed operations leave the session untouched.
type Runner struct {
	planner  *TripPlanner
	sessions *session.Service
	quota    Quota
	logger   *zap.Logger
}

// NewRunner wires a planner to a session service. quota may be nil to disable metering.
func NewRunner(planner *TripPlanner, sessions *session.Service, quota Quota, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{planner: planner, sessions: sessions, quota: quota, logger: logger}
}

// Planner exposes the underlying orchestrator.
func (r *Runner) Planner() *TripPlanner { return r.planner }

func (r *Runner) Run(ctx context.Context, in RunInput) (*RunOutput, error) {
	req := in.Trip.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	out := &RunOutput{Derived: req.Derive()}
	st, err := r.sessions.Update(ctx, in.SessionID, in.Caller, func(st *session.State) (bool, error) {
		client := r.planner.Client(st.Credential)
		out.Mode = client.Mode
		if out.Mode == ModeRemote && r.quota != nil {
			if err := r.quota.UseToken(ctx, quotaOwner(st)); err != nil {
				return false, err
			}
		}

		input := Input{Trip: req, Operation: in.Operation, Credential: st.Credential}
		if in.Operation == OpPlan && in.UseResearch {
			input.PriorResearch = st.Research
		}
		out.Result = r.planner.ExecuteWith(ctx, client, input)
		if !out.Result.OK() {
			return false, nil
		}

		switch in.Operation {
		case OpResearch:
			st.Research = out.Result.Text
			return true, nil
		case OpPlan:
			st.Itinerary = out.Result.Text
			st.ItineraryFilename = req.ExportFilename()
			return true, nil
		default:
			return false, nil
		}
	})
	if err != nil {
		return nil, err
	}

	out.Session = st
	return out, nil
}

// Authenticated callers are metered per user, anonymous ones per session.
func quotaOwner(st *session.State) string {
	if st.Owner != "" {
		return st.Owner
	}
	return "session:" + st.ID
}
