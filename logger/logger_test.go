package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
		verbose    bool
	}{
		{name: "json", jsonOutput: true},
		{name: "console", jsonOutput: false},
		{name: "console verbose", jsonOutput: false, verbose: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() { Logger = zap.NewNop().Sugar() }()

			require.NoError(t, Initialize(tt.jsonOutput, tt.verbose))
			require.NotNil(t, Logger)
			assert.Equal(t, tt.jsonOutput, JSONOutput)
			assert.Equal(t, tt.verbose, Logger.Desugar().Core().Enabled(zap.DebugLevel))
			assert.True(t, Logger.Desugar().Core().Enabled(zap.InfoLevel))
		})
	}
}

func TestNopByDefault(t *testing.T) {
	assert.NotNil(t, Logger)
	assert.NotPanics(t, func() {
		Logger.Infow("nothing", "key", 1)
		Cleanup()
	})
}
