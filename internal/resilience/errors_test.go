package resilience

import (
	"context"
	"errors"
	"fmt"
	"syscall"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"

	"github.com/sells-group/targets-navigator/internal/model"
)

func TestIsTransient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain", errors.New("column does not exist"), false},
		{"explicit", NewTransientError(errors.New("x")), true},
		{"wrapped explicit", fmt.Errorf("read: %w", NewTransientError(errors.New("x"))), true},
		{"backend unavailable", eris.Wrap(model.ErrBackendUnavailable, "postgres: query"), true},
		{"deadline", context.DeadlineExceeded, true},
		{"canceled", context.Canceled, false},
		{"canceled wins", fmt.Errorf("%w: %w", context.Canceled, model.ErrBackendUnavailable), false},
		{"conn reset", fmt.Errorf("dial: %w", syscall.ECONNRESET), true},
		{"conn refused", syscall.ECONNREFUSED, true},
		{"locked", errors.New("SQLITE_BUSY: database is locked"), true},
		{"not found", eris.Wrap(model.ErrCompanyNotFound, "store: get"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "circuit_open", Classify(ErrCircuitOpen))
	assert.Equal(t, "transient", Classify(model.ErrBackendUnavailable))
	assert.Equal(t, "permanent", Classify(errors.New("bad column")))
}

func TestTransientErrorUnwrap(t *testing.T) {
	t.Parallel()

	inner := errors.New("root cause")
	te := NewTransientError(inner)
	assert.ErrorIs(t, te, inner)
	assert.Equal(t, "root cause", te.Error())
}
