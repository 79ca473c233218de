package telemetry

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestInstrumenterRecordsThemeApply(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	inst, err := New(
		Config{ServiceName: "tinct-test", Version: "test"},
		WithSpanProcessor(recorder),
	)
	if err != nil {
		t.Fatalf("New instrumenter: %v", err)
	}
	t.Cleanup(func() {
		_ = inst.Shutdown(context.Background())
	})

	ctx, span := inst.Start(context.Background(), OpStart{
		Op:       OpApplyTheme,
		ThemeKey: "gruvbox",
		Source:   "user",
	})
	if ctx == nil || span == nil {
		t.Fatalf("expected span to be created")
	}
	span.End(OpResult{Count: 1})

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}

	ro := spans[0]
	if got := ro.Name(); got != string(OpApplyTheme) {
		t.Fatalf("unexpected span name %q", got)
	}
	assertAttribute(t, ro, "tinct.op", string(OpApplyTheme))
	assertAttribute(t, ro, "tinct.theme.key", "gruvbox")
	assertAttribute(t, ro, "tinct.source", "user")
	if ro.Status().Code != codes.Ok {
		t.Fatalf("expected span status OK, got %v", ro.Status().Code)
	}
}

func TestInstrumenterRecordsFailure(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	inst, err := New(Config{ServiceName: "tinct-test"}, WithSpanProcessor(recorder))
	if err != nil {
		t.Fatalf("New instrumenter: %v", err)
	}
	t.Cleanup(func() {
		_ = inst.Shutdown(context.Background())
	})

	_, span := inst.Start(context.Background(), OpStart{Op: OpImport, Source: "monaco"})
	span.End(OpResult{Err: errors.New("bad theme file")})

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Status().Code != codes.Error {
		t.Fatalf("expected error status, got %v", spans[0].Status().Code)
	}
}

func TestEmptyOpYieldsNoSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	inst, err := New(Config{ServiceName: "tinct-test"}, WithSpanProcessor(recorder))
	if err != nil {
		t.Fatalf("New instrumenter: %v", err)
	}
	t.Cleanup(func() {
		_ = inst.Shutdown(context.Background())
	})

	_, span := inst.Start(context.Background(), OpStart{})
	span.End(OpResult{})
	if got := len(recorder.Ended()); got != 0 {
		t.Fatalf("expected no spans, got %d", got)
	}
}

func TestDisabledConfigReturnsNoop(t *testing.T) {
	inst, err := New(Config{ServiceName: "tinct-test"})
	if err != nil {
		t.Fatalf("New instrumenter: %v", err)
	}
	if inst != Noop() {
		t.Fatalf("expected noop instrumenter when disabled")
	}
}

func assertAttribute(t *testing.T, span sdktrace.ReadOnlySpan, key string, want interface{}) {
	t.Helper()
	attrs := span.Attributes()
	for _, attr := range attrs {
		if string(attr.Key) != key {
			continue
		}
		switch v := want.(type) {
		case string:
			if attr.Value.AsString() == v {
				return
			}
		case bool:
			if attr.Value.AsBool() == v {
				return
			}
		case int64:
			if attr.Value.AsInt64() == v {
				return
			}
		}
		t.Fatalf("attribute %s mismatch: got %v, want %v", key, attr.Value, want)
	}
	t.Fatalf("attribute %s not found", key)
}
