package invoicing

import (
	"fmt"
	"strings"
	"time"

	"github.com/faktura/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DunningNotice is an issued reminder or Mahnung. Notices are immutable records.
type DunningNotice struct {
	shared.BaseEntity
	TenantID             uuid.UUID
	InvoiceID            uuid.UUID
	InvoiceNumber        string
	CustomerID           uuid.UUID
	RunID                *uuid.UUID
	Number               string
	Level                DunningLevel
	IssuedOn             time.Time
	PaymentDeadline      time.Time
	DaysOverdue          int
	OutstandingPrincipal decimal.Decimal
	Fee                  decimal.Decimal // fee charged with this notice, including any flat fee
	AccumulatedFees      decimal.Decimal // open fees after this notice
	Interest             decimal.Decimal // interest charged with this notice
	AccruedInterest      decimal.Decimal // open interest after this notice
	InterestRate         decimal.Decimal
	TotalDue             decimal.Decimal
	Subject              string
	Body                 string
}

func newDunningNotice(inv *Invoice, d DunningDecision, number string, issued time.Time, deadlineDays int) *DunningNotice {
	if deadlineDays < 1 {
		deadlineDays = 1
	}
	n := &DunningNotice{
		BaseEntity:           shared.NewBaseEntity(),
		TenantID:             inv.TenantID,
		InvoiceID:            inv.ID,
		InvoiceNumber:        inv.Number,
		CustomerID:           inv.CustomerID,
		Number:               number,
		Level:                d.NextLevel,
		IssuedOn:             issued,
		PaymentDeadline:      AddDays(issued, deadlineDays),
		DaysOverdue:          d.DaysOverdue,
		OutstandingPrincipal: inv.OutstandingPrincipal(),
		Fee:                  d.Fee.Add(d.FlatFee),
		AccumulatedFees:      inv.OutstandingFees(),
		Interest:             d.Interest,
		AccruedInterest:      inv.OutstandingInterest(),
		InterestRate:         d.InterestRate,
		TotalDue:             inv.OutstandingTotal(),
	}
	n.Subject, n.Body = ComposeDunningLetter(n, inv)
	return n
}

// AttachToRun links the notice to the dunning run that produced it
func (n *DunningNotice) AttachToRun(runID uuid.UUID) {
	n.RunID = &runID
}

var germanPrinter = message.NewPrinter(language.German)

// FormatEuro renders an amount the German way, e.g. "1.234,50 €"
func FormatEuro(amount decimal.Decimal) string {
	f, _ := amount.Round(2).Float64()
	return germanPrinter.Sprintf("%v €", number.Decimal(f, number.Scale(2)))
}

// FormatDate renders a date as DD.MM.YYYY
func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// ComposeDunningLetter produces the German subject and body of a notice
func ComposeDunningLetter(n *DunningNotice, inv *Invoice) (string, string) {
	subject := fmt.Sprintf("%s zu Rechnung %s vom %s", n.Level.Title(), inv.Number, FormatDate(*inv.IssueDate))

	var b strings.Builder
	fmt.Fprintf(&b, "Sehr geehrte Damen und Herren,\n\n")
	switch n.Level {
	case DunningLevelReminder:
		fmt.Fprintf(&b, "sicherlich ist es Ihrer Aufmerksamkeit entgangen, dass unsere Rechnung %s über %s seit dem %s fällig ist.\n",
			inv.Number, FormatEuro(inv.GrossTotal), FormatDate(*inv.DueDate))
	case DunningLevelCollection:
		fmt.Fprintf(&b, "trotz mehrfacher Mahnung ist unsere Rechnung %s weiterhin unbezahlt. Wir werden die Forderung nach Ablauf der unten genannten Frist an ein Inkassounternehmen übergeben.\n",
			inv.Number)
	default:
		fmt.Fprintf(&b, "leider konnten wir zu unserer Rechnung %s vom %s bis heute keinen vollständigen Zahlungseingang feststellen. Die Rechnung ist seit %d Tagen überfällig.\n",
			inv.Number, FormatDate(*inv.IssueDate), n.DaysOverdue)
	}

	fmt.Fprintf(&b, "\nOffener Rechnungsbetrag: %s\n", FormatEuro(n.OutstandingPrincipal))
	if n.AccumulatedFees.IsPositive() {
		fmt.Fprintf(&b, "Mahngebühren: %s\n", FormatEuro(n.AccumulatedFees))
	}
	if n.AccruedInterest.IsPositive() {
		fmt.Fprintf(&b, "Verzugszinsen: %s\n", FormatEuro(n.AccruedInterest))
	}
	fmt.Fprintf(&b, "Gesamtbetrag: %s\n", FormatEuro(n.TotalDue))
	fmt.Fprintf(&b, "\nBitte überweisen Sie den Gesamtbetrag bis zum %s", FormatDate(n.PaymentDeadline))
	if inv.Seller.Name != "" {
		fmt.Fprintf(&b, " an %s", inv.Seller.Name)
	}
	fmt.Fprintf(&b, " unter Angabe der Rechnungsnummer %s.\n", inv.Number)
	fmt.Fprintf(&b, "\nSollten Sie die Zahlung bereits veranlasst haben, betrachten Sie dieses Schreiben bitte als gegenstandslos.\n\nMit freundlichen Grüßen\n%s\n", inv.Seller.Name)
	return subject, b.String()
}
