package observability

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// instrumentationName identifies this module's tracer.
const instrumentationName = "github.com/solstat/solstat"

// Tracer returns the module tracer from the global provider. Without a
// configured provider spans are no-ops, so instrumented code paths cost
// nothing in the default CLI run.
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}
