package invoicing

import (
	"context"
	"fmt"

	"github.com/faktura/backend/internal/domain/invoicing"
	"github.com/faktura/backend/internal/domain/shared"
	"github.com/faktura/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// eventSupport publishes the pending events of saved aggregates. Services
// embed it; publishing is skipped until SetEventPublisher is called.
type eventSupport struct {
	eventPublisher shared.EventPublisher
}

// SetEventPublisher sets the event publisher for cross-context integration
func (e *eventSupport) SetEventPublisher(publisher shared.EventPublisher) {
	e.eventPublisher = publisher
}

// publish hands the pending events to the bus after the transaction has
// committed. A failing handler never fails the operation that raised the event.
func (e *eventSupport) publish(ctx context.Context, aggregates ...shared.AggregateRoot) {
	for _, agg := range aggregates {
		if agg == nil {
			continue
		}
		events := agg.GetDomainEvents()
		agg.ClearDomainEvents()
		if e.eventPublisher == nil || len(events) == 0 {
			continue
		}
		if err := e.eventPublisher.Publish(ctx, events...); err != nil {
			logger.L(ctx).Warn("failed to publish domain events",
				zap.String("aggregate_id", agg.GetID().String()),
				zap.Int("events", len(events)),
				zap.Error(err),
			)
		}
	}
}

// lineBuilder turns line requests into invoice lines, filling gaps from the
// referenced products
type lineBuilder struct {
	products invoicing.ProductRepository
}

func (b lineBuilder) build(ctx context.Context, tenantID uuid.UUID, reqs []LineRequest) (invoicing.InvoiceLines, error) {
	lines := make(invoicing.InvoiceLines, 0, len(reqs))
	var ids []uuid.UUID
	for _, r := range reqs {
		if r.ProductID != nil {
			ids = append(ids, *r.ProductID)
		}
	}
	byID := make(map[uuid.UUID]*invoicing.Product, len(ids))
	if len(ids) > 0 {
		products, err := b.products.FindByIDsForTenant(ctx, tenantID, ids)
		if err != nil {
			return nil, err
		}
		for i := range products {
			byID[products[i].ID] = &products[i]
		}
	}

	for i, r := range reqs {
		line := invoicing.InvoiceLine{
			Description:     r.Description,
			Quantity:        r.Quantity,
			Unit:            r.Unit,
			DiscountPercent: r.DiscountPercent,
			TaxCategory:     invoicing.TaxCategory(r.TaxCategory),
		}
		if r.UnitPrice != nil {
			line.UnitPrice = *r.UnitPrice
		}
		if r.ProductID != nil {
			p, ok := byID[*r.ProductID]
			if !ok {
				return nil, shared.NewDomainError("INVALID_PRODUCT", fmt.Sprintf("Line %d references an unknown product", i+1))
			}
			if !p.Active {
				return nil, shared.NewDomainError("INVALID_PRODUCT", fmt.Sprintf("Product %s is inactive", p.SKU))
			}
			defaults := p.ToLine(r.Quantity)
			line.ProductID = defaults.ProductID
			if line.Description == "" {
				line.Description = defaults.Description
			}
			if line.Unit == "" {
				line.Unit = defaults.Unit
			}
			if r.UnitPrice == nil {
				line.UnitPrice = defaults.UnitPrice
			}
			if line.TaxCategory == "" {
				line.TaxCategory = defaults.TaxCategory
			}
		}
		lines = append(lines, line)
	}
	return lines, nil
}
