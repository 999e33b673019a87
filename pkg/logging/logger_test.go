package logging_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sdkmap/sdkmap/pkg/logging"
)

func TestDefaultLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := zerolog.New(buf).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	logging.SetDefault(logger)

	logging.Debug().Msg("debug message")
	logging.Info().Msg("info message")
	logging.Warn().Msg("warning message")
	logging.Error().Msg("error message")

	output := buf.String()
	if !strings.Contains(output, "info message") {
		t.Errorf("Expected info message in output, got: %s", output)
	}
}

func TestContextLogger(t *testing.T) {
	testLogger := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), testLogger.Logger)
	ctx = logging.WithSource(ctx, "xcodereleases")
	ctx = logging.WithVersion(ctx, "15.2")

	logging.Ctx(ctx).Info().Msg("test message")

	testLogger.AssertContains(t, "xcodereleases")
	testLogger.AssertContains(t, "15.2")
	testLogger.AssertContains(t, "test message")
}

func TestContextFields(t *testing.T) {
	testLogger := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), testLogger.Logger)
	ctx = logging.WithOperation(ctx, "fetch")
	ctx = logging.WithField(ctx, "attempt", 2)

	logging.Ctx(ctx).Info().Msg("test message")

	testLogger.AssertContains(t, "fetch")
	testLogger.AssertContains(t, "attempt")
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	if logging.FromContext(context.Background()) == nil {
		t.Error("expected default logger for bare context")
	}
	if logging.FromContext(nil) == nil { //nolint:staticcheck // nil context fallback is the point
		t.Error("expected default logger for nil context")
	}
}
