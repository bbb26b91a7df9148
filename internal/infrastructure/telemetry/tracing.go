package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation scope of application spans
const TracerName = "github.com/faktura/backend"

// Span attribute keys
const (
	AttrTenantID      = attribute.Key("faktura.tenant_id")
	AttrInvoiceID     = attribute.Key("faktura.invoice_id")
	AttrInvoiceNumber = attribute.Key("faktura.invoice_number")
	AttrDocumentType  = attribute.Key("faktura.document_type")
	AttrDunningLevel  = attribute.Key("faktura.dunning_level")
	AttrRunDate       = attribute.Key("faktura.run_date")
	AttrTrigger       = attribute.Key("faktura.trigger")
)

// StartSpan starts an internal span named "{service}.{method}"
//
//	ctx, span := telemetry.StartSpan(ctx, "dunning", "run_for_tenant", telemetry.AttrTenantID.String(id))
//	defer span.End()
func StartSpan(ctx context.Context, service, method string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(TracerName).Start(ctx, service+"."+method,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// RecordError marks span as failed. A nil err is ignored.
func RecordError(span trace.Span, err error) {
	if span == nil || err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// AddEvent adds a timestamped annotation to the span in ctx
func AddEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	trace.SpanFromContext(ctx).AddEvent(name, trace.WithAttributes(attrs...))
}
