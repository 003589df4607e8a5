package commit_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/compartments/pkg/commit"
	"github.com/aretw0/compartments/pkg/domain"
	"github.com/aretw0/compartments/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func batch(keys ...string) []domain.BuiltModel {
	out := make([]domain.BuiltModel, len(keys))
	for i, k := range keys {
		out[i] = *ports.ContractModel(k)
	}
	return out
}

// recordingSink records submissions and fails on demand.
type recordingSink struct {
	mu          sync.Mutex
	keys        []string
	failOn      string
	inFlight    int32
	maxInFlight int32
}

func (s *recordingSink) Submit(ctx context.Context, m *domain.BuiltModel) error {
	n := atomic.AddInt32(&s.inFlight, 1)
	defer atomic.AddInt32(&s.inFlight, -1)
	if n > atomic.LoadInt32(&s.maxInFlight) {
		atomic.StoreInt32(&s.maxInFlight, n)
	}
	time.Sleep(time.Millisecond)

	s.mu.Lock()
	defer s.mu.Unlock()
	if m.Key == s.failOn {
		return errors.New("connection refused")
	}
	s.keys = append(s.keys, m.Key)
	return nil
}

func TestCommit_Sequential(t *testing.T) {
	sink := &recordingSink{}
	c := commit.New(sink)

	committed, err := c.Commit(context.Background(), "one_strain", batch("sir", "sirs", "siri"))
	require.NoError(t, err)
	assert.Equal(t, []string{"sir", "sirs", "siri"}, committed)
	assert.Equal(t, []string{"sir", "sirs", "siri"}, sink.keys)
	assert.Equal(t, int32(1), sink.maxInFlight)
}

func TestCommit_FailureAbortsBatch(t *testing.T) {
	sink := &recordingSink{failOn: "sirs"}
	var failed []string
	c := commit.New(sink, commit.WithHooks(domain.LifecycleHooks{
		OnSubmitFail: func(_ context.Context, e *domain.SubmitEvent) { failed = append(failed, e.Model) },
	}))

	committed, err := c.Commit(context.Background(), "one_strain", batch("sir", "sirs", "siri"))
	require.Error(t, err)

	var subErr *domain.SubmissionError
	require.True(t, errors.As(err, &subErr))
	assert.Equal(t, "sirs", subErr.Model)
	assert.Equal(t, []string{"sir"}, committed)
	assert.Equal(t, []string{"sir"}, sink.keys, "siri must not be attempted")
	assert.Equal(t, []string{"sirs"}, failed)
}

func TestCommit_CancellationStopsBeforeNextSubmission(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var submitted []string
	sink := ports.SinkFunc(func(_ context.Context, m *domain.BuiltModel) error {
		submitted = append(submitted, m.Key)
		cancel()
		return nil
	})

	committed, err := commit.New(sink).Commit(ctx, "one_strain", batch("sir", "sirs"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"sir"}, committed)
	assert.Equal(t, []string{"sir"}, submitted)
}

func TestCommit_DoesNotMutateModels(t *testing.T) {
	models := batch("sir")
	sink := ports.SinkFunc(func(_ context.Context, m *domain.BuiltModel) error {
		m.Model[0].Rate = "tampered"
		return nil
	})

	_, err := commit.New(sink).Commit(context.Background(), "one_strain", models)
	require.NoError(t, err)
	assert.Equal(t, "mu_b*N", models[0].Model[0].Rate)
}

type fakeLocker struct {
	locked   []string
	released int
	err      error
}

func (l *fakeLocker) Lock(_ context.Context, key string, _ time.Duration) (ports.UnlockFunc, error) {
	if l.err != nil {
		return nil, l.err
	}
	l.locked = append(l.locked, key)
	return func(context.Context) error {
		l.released++
		return nil
	}, nil
}

func TestCommit_Lock(t *testing.T) {
	locker := &fakeLocker{}
	sink := &recordingSink{}
	c := commit.New(sink, commit.WithLocker(locker, time.Second))

	_, err := c.Commit(context.Background(), "two_strain", batch("sir"))
	require.NoError(t, err)
	assert.Equal(t, []string{"commit:two_strain"}, locker.locked)
	assert.Equal(t, 1, locker.released)

	locker.err = errors.New("busy")
	_, err = c.Commit(context.Background(), "two_strain", batch("sir"))
	assert.ErrorContains(t, err, "busy")
	assert.Len(t, sink.keys, 1)
}
