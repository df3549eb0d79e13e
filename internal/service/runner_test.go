package service

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripplanner/internal/ai"
	"tripplanner/internal/modules/aiusage"
	"tripplanner/internal/modules/session"
	"tripplanner/internal/modules/trip"
)

type stubQuota struct {
	mu     sync.Mutex
	owners []string
	err    error
}

func (q *stubQuota) UseToken(_ context.Context, owner string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.owners = append(q.owners, owner)
	return q.err
}

// rotatingQuota clears the default credential while the quota is charged.
type rotatingQuota struct {
	stubQuota
}

func (q *rotatingQuota) UseToken(ctx context.Context, owner string) error {
	os.Setenv(testCredentialEnv, "")
	return q.stubQuota.UseToken(ctx, owner)
}

func newRunner(t *testing.T, envKey string, backend ai.Backend, quota Quota) (*Runner, *session.Service) {
	t.Helper()
	sessions := session.NewService(session.NewMemoryStore())
	return NewRunner(newPlanner(t, envKey, backend), sessions, quota, nil), sessions
}

func TestRunStoresResearchAndPlan(t *testing.T) {
	runner, sessions := newRunner(t, "", &stubBackend{}, nil)
	ctx := context.Background()
	st, err := sessions.Create(ctx, "")
	require.NoError(t, err)

	out, err := runner.Run(ctx, RunInput{SessionID: st.ID, Trip: parisTrip(t), Operation: OpResearch})
	require.NoError(t, err)
	assert.Equal(t, ModeOffline, out.Mode)
	assert.Equal(t, out.Result.Text, out.Session.Research)
	assert.Empty(t, out.Session.Itinerary)

	out, err = runner.Run(ctx, RunInput{SessionID: st.ID, Trip: parisTrip(t), Operation: OpPlan, UseResearch: true})
	require.NoError(t, err)
	assert.Equal(t, out.Result.Text, out.Session.Itinerary)
	assert.Equal(t, "Paris_5days_itinerary.txt", out.Session.ItineraryFilename)
	assert.Equal(t, 5, out.Derived.DurationDays)
}

func TestRunFeedsStoredResearchIntoPlan(t *testing.T) {
	backend := &stubBackend{text: "Louvre at 9am"}
	runner, sessions := newRunner(t, "hf_env", backend, nil)
	ctx := context.Background()
	st, _ := sessions.Create(ctx, "")

	_, err := runner.Run(ctx, RunInput{SessionID: st.ID, Trip: parisTrip(t), Operation: OpResearch})
	require.NoError(t, err)

	_, err = runner.Run(ctx, RunInput{SessionID: st.ID, Trip: parisTrip(t), Operation: OpPlan, UseResearch: true})
	require.NoError(t, err)
	assert.Contains(t, backend.calls[1].User, "Research Information:\nLouvre at 9am")

	_, err = runner.Run(ctx, RunInput{SessionID: st.ID, Trip: parisTrip(t), Operation: OpPlan, UseResearch: false})
	require.NoError(t, err)
	assert.NotContains(t, backend.calls[2].User, "Research Information")
}

func TestRunFailureLeavesSessionUntouched(t *testing.T) {
	backend := &stubBackend{text: "Day 1"}
	runner, sessions := newRunner(t, "hf_env", backend, nil)
	ctx := context.Background()
	st, _ := sessions.Create(ctx, "")

	_, err := runner.Run(ctx, RunInput{SessionID: st.ID, Trip: parisTrip(t), Operation: OpPlan})
	require.NoError(t, err)

	backend.err = errors.New("503")
	out, err := runner.Run(ctx, RunInput{SessionID: st.ID, Trip: parisTrip(t), Operation: OpPlan})
	require.NoError(t, err)
	assert.Equal(t, ai.RemoteUnavailable, out.Result.Reason)
	assert.Equal(t, "Day 1", out.Session.Itinerary)

	got, err := sessions.Get(ctx, st.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "Day 1", got.Itinerary)
}

func TestRunTipsAreNotStored(t *testing.T) {
	runner, sessions := newRunner(t, "", &stubBackend{}, nil)
	ctx := context.Background()
	st, _ := sessions.Create(ctx, "")

	out, err := runner.Run(ctx, RunInput{SessionID: st.ID, Trip: parisTrip(t), Operation: OpTips})
	require.NoError(t, err)
	assert.True(t, out.Result.OK())
	assert.Empty(t, out.Session.Research)
	assert.Empty(t, out.Session.Itinerary)
}

func TestRunRejectsInvalidTripBeforeTouchingSession(t *testing.T) {
	runner, _ := newRunner(t, "", &stubBackend{}, nil)

	r := parisTrip(t)
	r.Travelers = 0
	_, err := runner.Run(context.Background(), RunInput{SessionID: "missing", Trip: r, Operation: OpResearch})
	assert.ErrorIs(t, err, trip.ErrInvalidRequest)
}

func TestRunForeignCallerIsForbidden(t *testing.T) {
	runner, sessions := newRunner(t, "", &stubBackend{}, nil)
	ctx := context.Background()
	st, _ := sessions.Create(ctx, "alice")

	_, err := runner.Run(ctx, RunInput{SessionID: st.ID, Caller: "bob", Trip: parisTrip(t), Operation: OpTips})
	assert.ErrorIs(t, err, session.ErrForbidden)
}

func TestRunChargesQuotaOnlyInRemoteMode(t *testing.T) {
	quota := &stubQuota{}
	runner, sessions := newRunner(t, "", &stubBackend{text: "ok"}, quota)
	ctx := context.Background()
	anon, _ := sessions.Create(ctx, "")
	owned, _ := sessions.Create(ctx, "alice")

	_, err := runner.Run(ctx, RunInput{SessionID: anon.ID, Trip: parisTrip(t), Operation: OpTips})
	require.NoError(t, err)
	assert.Empty(t, quota.owners)

	_, err = sessions.SetCredential(ctx, anon.ID, "", "hf_session")
	require.NoError(t, err)
	_, err = sessions.SetCredential(ctx, owned.ID, "alice", "hf_session")
	require.NoError(t, err)

	_, err = runner.Run(ctx, RunInput{SessionID: anon.ID, Trip: parisTrip(t), Operation: OpTips})
	require.NoError(t, err)
	_, err = runner.Run(ctx, RunInput{SessionID: owned.ID, Caller: "alice", Trip: parisTrip(t), Operation: OpTips})
	require.NoError(t, err)

	assert.Equal(t, []string{"session:" + anon.ID, "alice"}, quota.owners)
}

func TestRunQuotaExhaustedSkipsCall(t *testing.T) {
	backend := &stubBackend{text: "ok"}
	runner, sessions := newRunner(t, "hf_env", backend, &stubQuota{err: aiusage.ErrInsufficientTokens})
	ctx := context.Background()
	st, _ := sessions.Create(ctx, "")

	_, err := runner.Run(ctx, RunInput{SessionID: st.ID, Trip: parisTrip(t), Operation: OpResearch})
	assert.ErrorIs(t, err, aiusage.ErrInsufficientTokens)
	assert.Zero(t, backend.callCount())
}

func TestRunSerializesOperationsPerSession(t *testing.T) {
	runner, sessions := newRunner(t, "", &stubBackend{}, nil)
	ctx := context.Background()
	st, _ := sessions.Create(ctx, "")
	req := parisTrip(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(op Operation) {
			defer wg.Done()
			_, err := runner.Run(ctx, RunInput{SessionID: st.ID, Trip: req, Operation: op})
			assert.NoError(t, err)
		}([]Operation{OpResearch, OpPlan}[i%2])
	}
	wg.Wait()

	got, err := sessions.Get(ctx, st.ID, "")
	require.NoError(t, err)
	assert.Contains(t, got.Research, "Research Template")
	assert.Contains(t, got.Itinerary, "Itinerary Template")
}

func TestRunResolvesCredentialOnce(t *testing.T) {
	backend := &stubBackend{text: "Day 1: Louvre"}
	quota := &rotatingQuota{}
	runner, sessions := newRunner(t, "hf_env", backend, quota)
	ctx := context.Background()
	st, _ := sessions.Create(ctx, "")

	out, err := runner.Run(ctx, RunInput{SessionID: st.ID, Trip: parisTrip(t), Operation: OpPlan})
	require.NoError(t, err)

	assert.Equal(t, ModeRemote, out.Mode)
	assert.True(t, out.Result.OK())
	assert.Equal(t, "Day 1: Louvre", out.Result.Text)
	assert.Equal(t, 1, backend.callCount())
	assert.Len(t, quota.owners, 1)
}
