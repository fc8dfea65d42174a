package binding_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/navgridgo/internal/binding"
)

func TestParseStrategy(t *testing.T) {
	cases := []struct {
		in   string
		want binding.Strategy
	}{
		{"", binding.StrategyElement},
		{"element", binding.StrategyElement},
		{"Element", binding.StrategyElement},
		{"page", binding.StrategyPage},
		{"Page", binding.StrategyPage},
	}
	for _, tc := range cases {
		got, err := binding.ParseStrategy(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}

	_, err := binding.ParseStrategy("window")
	require.Error(t, err)
	assert.ErrorContains(t, err, `"window"`)
	assert.ErrorContains(t, err, "element, page")
}

func TestStrategyString(t *testing.T) {
	assert.Equal(t, "element", binding.StrategyElement.String())
	assert.Equal(t, "page", binding.StrategyPage.String())
}
