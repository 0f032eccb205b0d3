package refresh

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState_CanTransition(t *testing.T) {
	tests := []struct {
		from, to State
		want     bool
	}{
		{StateIdle, StateFetching, true},
		{StateFetching, StateReconciling, true},
		{StateFetching, StateFailed, true},
		{StateReconciling, StatePersisting, true},
		{StateReconciling, StateFailed, false},
		{StatePersisting, StateSummarizing, true},
		{StatePersisting, StateFailed, true},
		{StateSummarizing, StateDone, true},
		{StateSummarizing, StateFailed, false},
		{StateIdle, StatePersisting, false},
		{StateFetching, StatePersisting, false},
		{StateDone, StateFetching, false},
		{StateFailed, StateFetching, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestState_Terminal(t *testing.T) {
	assert.True(t, StateDone.Terminal())
	assert.True(t, StateFailed.Terminal())
	assert.False(t, StateSummarizing.Terminal())
	assert.Equal(t, "state(42)", State(42).String())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindSourceUnavailable, KindOf(sourceUnavailable("x", assert.AnError)))
	assert.Equal(t, KindInternal, KindOf(internal(assert.AnError)))
	assert.Equal(t, Kind(0), KindOf(assert.AnError))
	assert.ErrorIs(t, internal(assert.AnError), assert.AnError)
}
