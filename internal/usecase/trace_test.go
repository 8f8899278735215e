package usecase

import (
	"sync"
	"testing"

	"github.com/riskibarqy/fantasy-roster/internal/domain/fantasy"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

var (
	spanRecorderOnce sync.Once
	spanRecorder     *tracetest.SpanRecorder
	testTracer       *sdktrace.TracerProvider
)

// recordSpans installs one recording provider for the package. The usecase
// tracer binds to the first global provider only.
func recordSpans(t *testing.T) (*sdktrace.TracerProvider, *tracetest.SpanRecorder) {
	t.Helper()

	spanRecorderOnce.Do(func() {
		spanRecorder = tracetest.NewSpanRecorder()
		testTracer = sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spanRecorder))
		otel.SetTracerProvider(testTracer)
	})
	return testTracer, spanRecorder
}

func spanAttribute(t *testing.T, recorder *tracetest.SpanRecorder, spanName string, key attribute.Key) string {
	t.Helper()

	for _, span := range recorder.Ended() {
		if span.Name() != spanName {
			continue
		}
		for _, kv := range span.Attributes() {
			if kv.Key == key {
				return kv.Value.AsString()
			}
		}
	}
	t.Fatalf("span %s with attribute %s not recorded", spanName, key)
	return ""
}

func TestStartUsecaseSpan_UntracedCallerGetsNoop(t *testing.T) {
	ctx, span := startUsecaseSpan(t.Context(), "usecase.Test")
	defer span.End()

	if span.SpanContext().IsValid() {
		t.Fatalf("expected a noop span without a traced parent")
	}
	if ctx != t.Context() {
		t.Fatalf("context should pass through untouched")
	}
}

func TestSquadService_SpansCarryTrimmedIDs(t *testing.T) {
	provider, recorder := recordSpans(t)

	f := newServiceFixture(t, fantasy.DefaultRules())
	squad := f.buildDemoSquad(t, "user-1")

	ctx, parent := provider.Tracer("test").Start(t.Context(), "http.request")
	if _, err := f.service.AssignRole(ctx, AssignRoleInput{SquadID: "  " + squad.ID + "\t", MemberID: "idn-fwd-01", Role: "captain"}); err != nil {
		t.Fatalf("assign captain with padded squad id: %v", err)
	}
	if _, err := f.service.GetSquad(ctx, " "+squad.ID+" "); err != nil {
		t.Fatalf("get squad with padded id: %v", err)
	}
	parent.End()

	if got := spanAttribute(t, recorder, "usecase.SquadService.assign_role", "squad_id"); got != squad.ID {
		t.Fatalf("expected mutation span squad_id %q, got %q", squad.ID, got)
	}
	if got := spanAttribute(t, recorder, "usecase.SquadService.GetSquad", "squad_id"); got != squad.ID {
		t.Fatalf("expected read span squad_id %q, got %q", squad.ID, got)
	}
}
