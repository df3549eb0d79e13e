// README: Session store and service tests; Redis cases need PLANNER_TEST_REDIS_ADDR.
package session

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	out := map[string]Store{"memory": NewMemoryStore()}

	addr := os.Getenv("PLANNER_TEST_REDIS_ADDR")
	if addr == "" {
		return out
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(context.Background()).Err(), "ping redis")
	out["redis"] = NewRedisStore(client, time.Minute, time.Minute)
	return out
}

func TestStoreRoundTrip(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			svc := NewService(store)

			st, err := svc.Create(ctx, "")
			require.NoError(t, err)
			assert.Len(t, st.ID, 32)

			got, err := store.Get(ctx, st.ID)
			require.NoError(t, err)
			assert.Equal(t, st.ID, got.ID)
			assert.True(t, st.CreatedAt.Equal(got.CreatedAt))

			require.NoError(t, store.Delete(ctx, st.ID))
			_, err = store.Get(ctx, st.ID)
			assert.ErrorIs(t, err, ErrNotFound)
			assert.ErrorIs(t, store.Delete(ctx, st.ID), ErrNotFound)
		})
	}
}

func TestServiceOwnership(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			svc := NewService(store)

			owned, err := svc.Create(ctx, "alice")
			require.NoError(t, err)
			anon, err := svc.Create(ctx, "")
			require.NoError(t, err)

			_, err = svc.Get(ctx, owned.ID, "alice")
			assert.NoError(t, err)
			_, err = svc.Get(ctx, owned.ID, "bob")
			assert.ErrorIs(t, err, ErrForbidden)
			_, err = svc.Get(ctx, anon.ID, "bob")
			assert.NoError(t, err)

			assert.ErrorIs(t, svc.End(ctx, owned.ID, "bob"), ErrForbidden)
			assert.NoError(t, svc.End(ctx, owned.ID, "alice"))
			_, err = svc.Get(ctx, owned.ID, "alice")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestSetCredentialTrimsAndClears(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore())
	st, _ := svc.Create(ctx, "")

	st, err := svc.SetCredential(ctx, st.ID, "", "  hf_abc  ")
	require.NoError(t, err)
	assert.Equal(t, "hf_abc", st.Credential)

	st, err = svc.SetCredential(ctx, st.ID, "", "")
	require.NoError(t, err)
	assert.Empty(t, st.Credential)
}

func TestUpdateSavesOnlyOnChange(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	svc := NewService(store)
	st, _ := svc.Create(ctx, "")

	_, err := svc.Update(ctx, st.ID, "", func(s *State) (bool, error) {
		s.Research = "discarded"
		return false, nil
	})
	require.NoError(t, err)
	got, _ := store.Get(ctx, st.ID)
	assert.Empty(t, got.Research)

	_, err = svc.Update(ctx, st.ID, "", func(s *State) (bool, error) {
		s.Research = "kept"
		return true, nil
	})
	require.NoError(t, err)
	got, _ = store.Get(ctx, st.ID)
	assert.Equal(t, "kept", got.Research)
	assert.False(t, got.UpdatedAt.Before(got.CreatedAt))

	_, err = svc.Update(ctx, st.ID, "", func(s *State) (bool, error) {
		s.Research = "lost"
		return true, assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
	got, _ = store.Get(ctx, st.ID)
	assert.Equal(t, "kept", got.Research)
}

func TestLockSerializesUpdates(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			svc := NewService(store)
			st, err := svc.Create(ctx, "")
			require.NoError(t, err)

			var inside, maxInside int32
			var wg sync.WaitGroup
			for i := 0; i < 5; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, err := svc.Update(ctx, st.ID, "", func(s *State) (bool, error) {
						n := atomic.AddInt32(&inside, 1)
						for {
							m := atomic.LoadInt32(&maxInside)
							if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
								break
							}
						}
						time.Sleep(5 * time.Millisecond)
						s.Research += "x"
						atomic.AddInt32(&inside, -1)
						return true, nil
					})
					assert.NoError(t, err)
				}()
			}
			wg.Wait()

			assert.Equal(t, int32(1), atomic.LoadInt32(&maxInside))
			got, err := store.Get(ctx, st.ID)
			require.NoError(t, err)
			assert.Equal(t, "xxxxx", got.Research)
		})
	}
}

func TestLockHonoursContext(t *testing.T) {
	store := NewMemoryStore()
	unlock, err := store.Lock(context.Background(), "s1")
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = store.Lock(ctx, "s1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// Other sessions are unaffected.
	unlock2, err := store.Lock(context.Background(), "s2")
	require.NoError(t, err)
	unlock2()
}

func TestNewRedisStoreLockTTL(t *testing.T) {
	s := NewRedisStore(nil, 0, 0)
	assert.Equal(t, DefaultTTL, s.ttl)
	assert.Equal(t, DefaultLockTTL, s.lockTTL)

	s = NewRedisStore(nil, time.Hour, 6*time.Minute)
	assert.Equal(t, time.Hour, s.ttl)
	assert.Equal(t, 6*time.Minute, s.lockTTL)
}

func TestMemoryLocksAreReleased(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	svc := NewService(store)

	st, err := svc.Create(ctx, "")
	require.NoError(t, err)
	_, err = svc.Update(ctx, st.ID, "", func(s *State) (bool, error) {
		s.Research = "notes"
		return true, nil
	})
	require.NoError(t, err)
	require.NoError(t, svc.End(ctx, st.ID, ""))
	assert.Zero(t, store.lockCount())

	// Unknown ids and abandoned waits leave nothing behind either.
	_, err = svc.Update(ctx, "missing", "", func(*State) (bool, error) { return false, nil })
	assert.ErrorIs(t, err, ErrNotFound)

	unlock, err := store.Lock(ctx, "busy")
	require.NoError(t, err)
	waitCtx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()
	_, err = store.Lock(waitCtx, "busy")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	unlock()

	assert.Zero(t, store.lockCount())
}
