package parameters_test

import (
	"testing"

	"github.com/gzhynko/astar-pathfinding-heightmap/internal/parameters"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromConfigString(t *testing.T) {
	params := parameters.NewFromConfigString("max_turn=5, leg = 20,bfs,,output=a=b")
	assert.Equal(t, parameters.Params{
		"max_turn": "5",
		"leg":      "20",
		"bfs":      "",
		"output":   "a=b",
	}, params)
	assert.Empty(t, parameters.NewFromConfigString(""))
}

func TestGetParamOr(t *testing.T) {
	params := parameters.NewFromConfigString("i=3,i64=-9,f=0.5,s=flat,b,b2=false,empty=")

	i, err := parameters.GetParamOr(params, "i", 1)
	require.NoError(t, err)
	assert.Equal(t, 3, i)

	i64, err := parameters.GetParamOr(params, "i64", int64(0))
	require.NoError(t, err)
	assert.Equal(t, int64(-9), i64)

	f32, err := parameters.GetParamOr(params, "f", float32(1))
	require.NoError(t, err)
	assert.Equal(t, float32(0.5), f32)

	f64, err := parameters.GetParamOr(params, "f", 1.0)
	require.NoError(t, err)
	assert.Equal(t, 0.5, f64)

	s, err := parameters.GetParamOr(params, "s", "simplex")
	require.NoError(t, err)
	assert.Equal(t, "flat", s)

	b, err := parameters.GetParamOr(params, "b", false)
	require.NoError(t, err)
	assert.True(t, b)

	b2, err := parameters.GetParamOr(params, "b2", true)
	require.NoError(t, err)
	assert.False(t, b2)

	// Missing keys and empty numeric values keep the default.
	missing, err := parameters.GetParamOr(params, "missing", 17)
	require.NoError(t, err)
	assert.Equal(t, 17, missing)
	empty, err := parameters.GetParamOr(params, "empty", 11)
	require.NoError(t, err)
	assert.Equal(t, 11, empty)

	// GetParamOr doesn't remove keys.
	assert.Len(t, params, 7)
}

func TestParseErrors(t *testing.T) {
	params := parameters.NewFromConfigString("i=x,b=maybe")
	_, err := parameters.GetParamOr(params, "i", 0)
	assert.Error(t, err)
	_, err = parameters.GetParamOr(params, "b", false)
	assert.Error(t, err)
}

func TestPopParamOrAndCheckAllConsumed(t *testing.T) {
	params := parameters.NewFromConfigString("leg=30,bogus=1,other")
	leg, err := parameters.PopParamOr(params, "leg", float32(20))
	require.NoError(t, err)
	assert.Equal(t, float32(30), leg)
	assert.NotContains(t, params, "leg")

	err = parameters.CheckAllConsumed(params)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"bogus", "other"`)

	_, _ = parameters.PopParamOr(params, "bogus", 0)
	_, _ = parameters.PopParamOr(params, "other", false)
	assert.NoError(t, parameters.CheckAllConsumed(params))
}
