package relgraph_test

import (
	"testing"

	"github.com/fwojciec/relgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgress_Transition(t *testing.T) {
	t.Parallel()

	t.Run("running can pause, complete or fail", func(t *testing.T) {
		t.Parallel()
		for _, to := range []relgraph.ProgressStatus{
			relgraph.ProgressPaused,
			relgraph.ProgressComplete,
			relgraph.ProgressError,
		} {
			p := &relgraph.Progress{Status: relgraph.ProgressRunning}
			require.NoError(t, p.Transition(to))
			assert.Equal(t, to, p.Status)
		}
	})

	t.Run("paused can only resume", func(t *testing.T) {
		t.Parallel()
		p := &relgraph.Progress{Status: relgraph.ProgressPaused}
		require.NoError(t, p.Transition(relgraph.ProgressRunning))

		for _, to := range []relgraph.ProgressStatus{
			relgraph.ProgressComplete,
			relgraph.ProgressError,
		} {
			p := &relgraph.Progress{Status: relgraph.ProgressPaused}
			err := p.Transition(to)
			require.Error(t, err)
			assert.Equal(t, relgraph.ECONFLICT, relgraph.ErrorCode(err))
		}
	})

	t.Run("terminal states are terminal", func(t *testing.T) {
		t.Parallel()
		for _, from := range []relgraph.ProgressStatus{
			relgraph.ProgressComplete,
			relgraph.ProgressError,
		} {
			p := &relgraph.Progress{Status: from}
			require.Error(t, p.Transition(relgraph.ProgressRunning))
		}
	})

	t.Run("self transition is a no-op", func(t *testing.T) {
		t.Parallel()
		p := &relgraph.Progress{Status: relgraph.ProgressRunning}
		assert.NoError(t, p.Transition(relgraph.ProgressRunning))
	})
}

func TestProgress_Resumable(t *testing.T) {
	t.Parallel()

	assert.True(t, (&relgraph.Progress{Status: relgraph.ProgressPaused}).Resumable())
	assert.True(t, (&relgraph.Progress{Status: relgraph.ProgressError}).Resumable())
	assert.False(t, (&relgraph.Progress{Status: relgraph.ProgressComplete}).Resumable())
}
