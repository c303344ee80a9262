package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKinds(t *testing.T) {
	table := []struct {
		err  error
		kind error
		msg  string
	}{
		{Domain("depth2altitude", "depth %g < 0", -1.0), ErrDomain,
			"depth2altitude: domain error: depth -1 < 0"},
		{Precondition("Integrate", "%d points", 3), ErrPrecondition,
			"Integrate: precondition error: 3 points"},
		{Numerical("Yield", "NaN"), ErrNumerical,
			"Yield: numerical error: NaN"},
	}

	for i, test := range table {
		assert.Truef(t, errors.Is(test.err, test.kind), "%d) wrong kind", i+1)
		assert.Equal(t, test.msg, test.err.Error(), "%d) message", i+1)
	}
}

func TestWrappedKind(t *testing.T) {
	err := fmt.Errorf("shower 3: %w", Domain("New", "energy too low"))
	assert.ErrorIs(t, err, ErrDomain)
	assert.False(t, errors.Is(err, ErrPrecondition))

	var e *Error
	if assert.True(t, errors.As(err, &e)) {
		assert.Equal(t, "New", e.Op)
	}
}
