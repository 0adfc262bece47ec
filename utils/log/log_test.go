package log_test

import (
	"context"
	"testing"

	"github.com/jrife/txstore/utils/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFields(t *testing.T) {
	ctx := context.Background()

	if len(log.Fields(ctx)) != 0 {
		t.Fatalf("expected no fields, got %#v", log.Fields(ctx))
	}

	ctx = log.WithFields(ctx, zap.String("a", "1"))
	ctx = log.WithFields(ctx, zap.Int("b", 2))

	core, logs := observer.New(zapcore.DebugLevel)
	log.WithContext(ctx, zap.New(core)).Info("hello")

	entries := logs.All()

	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	fields := entries[0].ContextMap()

	if fields["a"] != "1" || fields["b"] != int64(2) {
		t.Fatalf("expected fields a=1 and b=2, got %#v", fields)
	}
}

func TestLoggerFromContext(t *testing.T) {
	defaultLogger := zap.NewNop()
	logger, ctx := log.LoggerFromContext(context.Background(), defaultLogger)

	if logger != defaultLogger {
		t.Fatalf("expected default logger to be used")
	}

	if log.Logger(ctx) != defaultLogger {
		t.Fatalf("expected default logger to be attached to the context")
	}

	other := zap.NewNop()
	logger, _ = log.LoggerFromContext(log.WithLogger(context.Background(), other), defaultLogger)

	if logger != other {
		t.Fatalf("expected logger from context to be used")
	}
}

func TestNew(t *testing.T) {
	testCases := map[string]struct {
		level  string
		format string
		fail   bool
	}{
		"json-info":      {level: "info", format: log.FormatJSON},
		"console-debug":  {level: "debug", format: log.FormatConsole},
		"bad-level":      {level: "loud", format: log.FormatJSON, fail: true},
		"bad-format":     {level: "info", format: "xml", fail: true},
		"uppercase-warn": {level: "WARN", format: log.FormatJSON},
	}

	for name, testCase := range testCases {
		testCase := testCase

		t.Run(name, func(t *testing.T) {
			logger, err := log.New(testCase.level, testCase.format)

			if testCase.fail {
				if err == nil {
					t.Fatalf("expected an error, got nil")
				}

				return
			}

			if err != nil {
				t.Fatalf("expected err to be nil, got %#v", err)
			}

			if logger == nil {
				t.Fatalf("expected a logger, got nil")
			}
		})
	}
}
