package featureflag

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFeatureFlag(t *testing.T) {
	f := New([]string{string(FlagDisableCellCompaction)})

	t.Run("is set", func(t *testing.T) {
		require.True(t, f.IsSet(FlagDisableCellCompaction))
		require.False(t, f.IsSet(FlagDisableQueryMetrics))
	})

	t.Run("run if enabled", func(t *testing.T) {
		var runCompaction bool
		f.IfSet(FlagDisableCellCompaction, func() {
			runCompaction = true
		})
		require.True(t, runCompaction)

		var runMetrics bool
		f.IfSet(FlagDisableQueryMetrics, func() {
			runMetrics = true
		})
		require.False(t, runMetrics)
	})

	t.Run("run if disabled", func(t *testing.T) {
		var runCompaction bool
		f.IfNotSet(FlagDisableCellCompaction, func() {
			runCompaction = true
		})
		require.False(t, runCompaction)

		var runMetrics bool
		f.IfNotSet(FlagDisableQueryMetrics, func() {
			runMetrics = true
		})
		require.True(t, runMetrics)
	})
}
