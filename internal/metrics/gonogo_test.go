package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoNoGoTrials(t *testing.T) {
	stream := streamOf(
		ev(0, StartSession),
		ev(1, RLeverOn),
		ev(1, LightOn1), // no-go
		ev(5, LLeverOn),
		ev(5, LightOn2), // no-go
		ev(9, RLeverOn),
		ev(10, PokeOn), // go
		ev(12, LightOn1),
		ev(15, LLeverOn), // last event: go
	)

	result := GoNoGoTrials(stream)
	assert.Equal(t, 2, result.Go)
	assert.Equal(t, 2, result.NoGo)
	assert.Equal(t, len(IndicesOf(stream, RLeverOn, LLeverOn)), result.Total())
}

func TestGoNoGoTrials_NoLevers(t *testing.T) {
	result := GoNoGoTrials(streamOf(ev(0, StartSession), ev(1, LightOn1)))
	assert.Equal(t, GoNoGoResult{}, result)
}

func TestCounts(t *testing.T) {
	stream := streamOf(
		ev(0, StartSession),
		ev(1, PokeOn),
		ev(2, rPress),
		ev(3, "LPressOn"),
		ev(4, rPress),
		ev(5, PokeOn),
		ev(6, SuccessfulGoTrial),
		ev(7, SuccessfulNoGoTrial),
		ev(8, SuccessfulGoTrial),
	)

	assert.Equal(t, LeverPressCounts{Lever1: 2, Lever2: 1, Total: 3}, LeverPressing(stream, rPress, "LPressOn"))
	assert.Equal(t, LeverPressCounts{Lever1: 2, Total: 2}, LeverPressing(stream, rPress, ""))
	assert.Equal(t, 2, TotalHeadPokes(stream))

	goCount, nogoCount := SuccessfulGoNoGoTrials(stream)
	assert.Equal(t, 2, goCount)
	assert.Equal(t, 1, nogoCount)
}

func TestMean(t *testing.T) {
	m, err := Mean([]float64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, 2.5, m)

	_, err = Mean(nil)
	assert.True(t, IsEmptyResult(err))
}
