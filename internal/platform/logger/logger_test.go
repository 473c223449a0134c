package logger

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmuriuki/taskforge-api/internal/config"
)

func TestSetup(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "WARN", "bogus", ""} {
		logger, err := Setup(config.ServerConfig{Port: 8080, LogLevel: level})
		require.NoError(t, err, "Setup must tolerate level %q", level)
		assert.NotNil(t, logger)
	}
}

func TestLoggerContextRoundTrip(t *testing.T) {
	t.Parallel()

	base := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := WithLogger(context.Background(), base)

	assert.Same(t, base, FromContext(ctx))
	assert.Same(t, base, FromContextOrDefault(ctx, nil))
}

func TestFromContextFallbacks(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	def := slog.New(slog.NewTextHandler(io.Discard, nil))

	// Bare context falls back to the process default
	assert.NotNil(t, FromContext(ctx))

	// The provided default wins over the process default
	assert.Same(t, def, FromContextOrDefault(ctx, def))

	// Without either, the process default is still returned
	assert.NotNil(t, FromContextOrDefault(ctx, nil))
}
