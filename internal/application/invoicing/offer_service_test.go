package invoicing

import (
	"context"
	"testing"
	"time"

	"github.com/faktura/backend/internal/domain/invoicing"
	"github.com/faktura/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfferService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.today = day(2024, time.April, 2)
	customer := env.createCustomer(t, "business", "Kunde AG")
	svc := env.offerService()

	offer, err := svc.Create(ctx, env.tenant(), CreateOfferRequest{
		CustomerID: customer.ID,
		Title:      "Relaunch Website",
		Lines:      []LineRequest{netLine("Konzeption", 1000)},
		ValidUntil: NewDate(day(2024, time.April, 30)),
	})
	require.NoError(t, err)
	assert.Equal(t, "draft", offer.Status)
	assert.Empty(t, offer.Number)

	sent, err := svc.Send(ctx, env.tenant(), offer.ID)
	require.NoError(t, err)
	assert.Equal(t, "AN-2024-00001", sent.Number)
	assert.Equal(t, "sent", sent.Status)

	accepted, err := svc.Accept(ctx, env.tenant(), offer.ID)
	require.NoError(t, err)
	assert.Equal(t, "accepted", accepted.Status)
	assert.Equal(t, 1, env.events.count(invoicing.EventTypeOfferAccepted))

	converted, err := svc.Convert(ctx, env.tenant(), offer.ID)
	require.NoError(t, err)
	assert.Equal(t, "converted", converted.Offer.Status)
	assert.Equal(t, "draft", converted.Invoice.Status)
	require.NotNil(t, converted.Invoice.OfferID)
	assert.Equal(t, offer.ID, *converted.Invoice.OfferID)
	assert.True(t, offer.GrossTotal.Equal(converted.Invoice.GrossTotal))
	assert.Contains(t, converted.Invoice.Notes, "AN-2024-00001")

	_, err = svc.Convert(ctx, env.tenant(), offer.ID)
	assert.Equal(t, "INVALID_STATE", shared.ErrorCode(err))

	stored, err := env.invoiceService().Get(ctx, env.tenant(), converted.Invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, converted.Invoice.ID, stored.ID)
}

func TestOfferService_Expiry(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.today = day(2024, time.April, 2)
	customer := env.createCustomer(t, "business", "Kunde AG")
	svc := env.offerService()

	create := func() *OfferResponse {
		offer, err := svc.Create(ctx, env.tenant(), CreateOfferRequest{
			CustomerID: customer.ID,
			Title:      "Wartungsvertrag",
			Lines:      []LineRequest{netLine("Wartung", 200)},
			ValidUntil: NewDate(day(2024, time.April, 10)),
		})
		require.NoError(t, err)
		return offer
	}

	sentOffer := create()
	_, err := svc.Send(ctx, env.tenant(), sentOffer.ID)
	require.NoError(t, err)
	draftOffer := create()

	env.today = day(2024, time.April, 11)

	got, err := svc.Get(ctx, env.tenant(), sentOffer.ID)
	require.NoError(t, err)
	assert.Equal(t, "expired", got.Status)

	_, err = svc.Accept(ctx, env.tenant(), sentOffer.ID)
	assert.Equal(t, "OFFER_EXPIRED", shared.ErrorCode(err))

	_, err = svc.Send(ctx, env.tenant(), draftOffer.ID)
	assert.Equal(t, "OFFER_EXPIRED", shared.ErrorCode(err))

	// the refused send must not have consumed AN-2024-00002
	env.today = day(2024, time.April, 2)
	next := create()
	sent, err := svc.Send(ctx, env.tenant(), next.ID)
	require.NoError(t, err)
	assert.Equal(t, "AN-2024-00002", sent.Number)
}

func TestOfferService_Reject(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	customer := env.createCustomer(t, "business", "Kunde AG")
	svc := env.offerService()

	offer, err := svc.Create(ctx, env.tenant(), CreateOfferRequest{
		CustomerID: customer.ID,
		Title:      "Schulung",
		Lines:      []LineRequest{netLine("Schulungstag", 900)},
		ValidUntil: NewDate(day(2024, time.February, 1)),
	})
	require.NoError(t, err)

	_, err = svc.Reject(ctx, env.tenant(), offer.ID, ReasonRequest{Reason: "zu teuer"})
	assert.Equal(t, "INVALID_STATE", shared.ErrorCode(err), "drafts cannot be rejected")

	_, err = svc.Send(ctx, env.tenant(), offer.ID)
	require.NoError(t, err)
	rejected, err := svc.Reject(ctx, env.tenant(), offer.ID, ReasonRequest{Reason: "zu teuer"})
	require.NoError(t, err)
	assert.Equal(t, "rejected", rejected.Status)
	assert.Equal(t, "zu teuer", rejected.RejectReason)

	list, total, err := svc.List(ctx, env.tenant(), OfferListFilter{Status: "rejected"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, offer.ID, list[0].ID)
}
