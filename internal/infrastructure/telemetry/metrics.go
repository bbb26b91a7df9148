package telemetry

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MeterName is the instrumentation scope of business metrics
const MeterName = "github.com/faktura/backend/invoicing"

// Metric attribute keys
var (
	MetricAttrTenant   = attribute.Key("tenant_id")
	MetricAttrRegime   = attribute.Key("tax_regime")
	MetricAttrLevel    = attribute.Key("dunning_level")
	MetricAttrStatus   = attribute.Key("status")
	MetricAttrTrigger  = attribute.Key("trigger")
	MetricAttrDocument = attribute.Key("document_type")
)

// BusinessMetrics records invoicing and dunning activity
type BusinessMetrics struct {
	invoicesIssued    metric.Int64Counter
	invoiceGross      metric.Float64Counter
	paymentsRecorded  metric.Int64Counter
	paymentAmount     metric.Float64Counter
	dunningRuns       metric.Int64Counter
	dunningRunSeconds metric.Float64Histogram
	escalations       metric.Int64Counter
	escalationFailed  metric.Int64Counter
	numbersDrawn      metric.Int64Counter
}

// NewBusinessMetrics creates the instruments on meter. A nil meter uses the
// global provider, which is a no-op until Setup installs one.
func NewBusinessMetrics(meter metric.Meter) (*BusinessMetrics, error) {
	if meter == nil {
		meter = otel.Meter(MeterName)
	}
	m := &BusinessMetrics{}
	var err error

	if m.invoicesIssued, err = meter.Int64Counter("faktura.invoices.issued",
		metric.WithDescription("Invoices and cancellation invoices issued"), metric.WithUnit("{invoice}")); err != nil {
		return nil, err
	}
	if m.invoiceGross, err = meter.Float64Counter("faktura.invoices.gross",
		metric.WithDescription("Gross amount invoiced"), metric.WithUnit("EUR")); err != nil {
		return nil, err
	}
	if m.paymentsRecorded, err = meter.Int64Counter("faktura.payments.recorded",
		metric.WithDescription("Payments booked against invoices"), metric.WithUnit("{payment}")); err != nil {
		return nil, err
	}
	if m.paymentAmount, err = meter.Float64Counter("faktura.payments.amount",
		metric.WithDescription("Amount received"), metric.WithUnit("EUR")); err != nil {
		return nil, err
	}
	if m.dunningRuns, err = meter.Int64Counter("faktura.dunning.runs",
		metric.WithDescription("Dunning runs by outcome"), metric.WithUnit("{run}")); err != nil {
		return nil, err
	}
	if m.dunningRunSeconds, err = meter.Float64Histogram("faktura.dunning.run.duration",
		metric.WithDescription("Duration of a dunning run"), metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300)); err != nil {
		return nil, err
	}
	if m.escalations, err = meter.Int64Counter("faktura.dunning.escalations",
		metric.WithDescription("Dunning notices issued by level"), metric.WithUnit("{notice}")); err != nil {
		return nil, err
	}
	if m.escalationFailed, err = meter.Int64Counter("faktura.dunning.escalations.failed",
		metric.WithDescription("Escalations that could not be stored"), metric.WithUnit("{invoice}")); err != nil {
		return nil, err
	}
	if m.numbersDrawn, err = meter.Int64Counter("faktura.numbers.drawn",
		metric.WithDescription("Document numbers assigned"), metric.WithUnit("{number}")); err != nil {
		return nil, err
	}
	return m, nil
}

// RecordInvoiceIssued counts an issued invoice and its gross total
func (m *BusinessMetrics) RecordInvoiceIssued(ctx context.Context, tenant, regime string, gross decimal.Decimal) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(MetricAttrTenant.String(tenant), MetricAttrRegime.String(regime))
	m.invoicesIssued.Add(ctx, 1, attrs)
	m.invoiceGross.Add(ctx, gross.InexactFloat64(), attrs)
}

// RecordPayment counts a booked payment
func (m *BusinessMetrics) RecordPayment(ctx context.Context, tenant string, amount decimal.Decimal) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(MetricAttrTenant.String(tenant))
	m.paymentsRecorded.Add(ctx, 1, attrs)
	m.paymentAmount.Add(ctx, amount.InexactFloat64(), attrs)
}

// RecordDunningRun records the outcome and duration of a run
func (m *BusinessMetrics) RecordDunningRun(ctx context.Context, tenant, trigger, status string, d time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		MetricAttrTenant.String(tenant),
		MetricAttrTrigger.String(trigger),
		MetricAttrStatus.String(status),
	)
	m.dunningRuns.Add(ctx, 1, attrs)
	m.dunningRunSeconds.Record(ctx, d.Seconds(), attrs)
}

// RecordEscalation counts a notice issued at level
func (m *BusinessMetrics) RecordEscalation(ctx context.Context, tenant, level string) {
	if m == nil {
		return
	}
	m.escalations.Add(ctx, 1, metric.WithAttributes(MetricAttrTenant.String(tenant), MetricAttrLevel.String(level)))
}

// RecordEscalationFailed counts an escalation that was rolled back
func (m *BusinessMetrics) RecordEscalationFailed(ctx context.Context, tenant string) {
	if m == nil {
		return
	}
	m.escalationFailed.Add(ctx, 1, metric.WithAttributes(MetricAttrTenant.String(tenant)))
}

// RecordNumberDrawn counts a freshly assigned document number
func (m *BusinessMetrics) RecordNumberDrawn(ctx context.Context, tenant, docType string) {
	if m == nil {
		return
	}
	m.numbersDrawn.Add(ctx, 1, metric.WithAttributes(MetricAttrTenant.String(tenant), MetricAttrDocument.String(docType)))
}
