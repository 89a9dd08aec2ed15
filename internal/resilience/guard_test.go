package resilience

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGuard() *Guard {
	return NewGuard(GuardConfig{
		Timeout: 20 * time.Millisecond,
		Retry:   fastRetry(2),
		Circuit: CircuitBreakerConfig{FailureThreshold: 2, ResetTimeout: time.Minute},
	})
}

func TestGuardRetriesTimedOutAttempt(t *testing.T) {
	t.Parallel()

	g := testGuard()
	var calls atomic.Int32
	v, err := Call(context.Background(), g, "finance", func(ctx context.Context) (string, error) {
		if calls.Add(1) == 1 {
			<-ctx.Done()
			return "", ctx.Err()
		}
		return "row", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "row", v)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGuardOpensPerRead(t *testing.T) {
	t.Parallel()

	g := testGuard()
	for range 2 {
		_, err := Call(context.Background(), g, "ip", func(context.Context) (int, error) {
			return 0, errFlaky
		})
		require.Error(t, err)
	}

	_, err := Call(context.Background(), g, "ip", func(context.Context) (int, error) { return 1, nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)

	v, err := Call(context.Background(), g, "hydrogen", func(context.Context) (int, error) { return 1, nil })
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.Equal(t, CircuitOpen, g.Breakers().States()["ip"])
}

func TestGuardDoesNotRetryPermanent(t *testing.T) {
	t.Parallel()

	g := testGuard()
	calls := 0
	perm := errors.New("relation does not exist")
	_, err := Call(context.Background(), g, "industry", func(context.Context) (int, error) {
		calls++
		return 0, perm
	})
	assert.ErrorIs(t, err, perm)
	assert.Equal(t, 1, calls)
}
