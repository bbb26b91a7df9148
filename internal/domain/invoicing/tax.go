package invoicing

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"sort"

	"github.com/faktura/backend/internal/domain/shared"
	"github.com/faktura/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// TaxRegime is the VAT treatment of a whole invoice
type TaxRegime string

const (
	TaxRegimeStandard      TaxRegime = "standard"       // domestic, per-line 19 % / 7 %
	TaxRegimeReduced       TaxRegime = "reduced"        // every line at the reduced rate
	TaxRegimeReverseCharge TaxRegime = "reverse_charge" // §13b UStG, recipient owes VAT
	TaxRegimeExport        TaxRegime = "export"         // third-country export, §4 Nr. 1a UStG
	TaxRegimeSmallBusiness TaxRegime = "small_business" // §19 UStG Kleinunternehmer
)

// IsValid checks if the regime is known
func (r TaxRegime) IsValid() bool {
	switch r {
	case TaxRegimeStandard, TaxRegimeReduced, TaxRegimeReverseCharge, TaxRegimeExport, TaxRegimeSmallBusiness:
		return true
	}
	return false
}

// IsZeroRated reports whether no VAT is charged under this regime
func (r TaxRegime) IsZeroRated() bool {
	return r == TaxRegimeReverseCharge || r == TaxRegimeExport || r == TaxRegimeSmallBusiness
}

// LegalNote returns the mandatory invoice note for zero-rated regimes
func (r TaxRegime) LegalNote() string {
	switch r {
	case TaxRegimeReverseCharge:
		return "Steuerschuldnerschaft des Leistungsempfängers (§13b UStG)"
	case TaxRegimeExport:
		return "Steuerfreie Ausfuhrlieferung gemäß §4 Nr. 1a UStG"
	case TaxRegimeSmallBusiness:
		return "Gemäß §19 UStG wird keine Umsatzsteuer berechnet."
	}
	return ""
}

// TaxCategory is the VAT category of a single line
type TaxCategory string

const (
	TaxCategoryStandard TaxCategory = "standard"
	TaxCategoryReduced  TaxCategory = "reduced"
)

// IsValid checks if the category is known
func (c TaxCategory) IsValid() bool {
	return c == TaxCategoryStandard || c == TaxCategoryReduced
}

// TaxRates holds the rates (percent) a company applies
type TaxRates struct {
	Standard decimal.Decimal `json:"standard"`
	Reduced  decimal.Decimal `json:"reduced"`
}

// DefaultTaxRates returns the current German VAT rates
func DefaultTaxRates() TaxRates {
	return TaxRates{
		Standard: decimal.NewFromInt(19),
		Reduced:  decimal.NewFromInt(7),
	}
}

// RateFor returns the rate for a line category under the given regime
func (t TaxRates) RateFor(regime TaxRegime, category TaxCategory) decimal.Decimal {
	if regime.IsZeroRated() {
		return decimal.Zero
	}
	if regime == TaxRegimeReduced || category == TaxCategoryReduced {
		return t.Reduced
	}
	return t.Standard
}

// Validate checks the rates are within 0..100
func (t TaxRates) Validate() error {
	hundred := decimal.NewFromInt(100)
	for _, r := range []decimal.Decimal{t.Standard, t.Reduced} {
		if r.IsNegative() || r.GreaterThan(hundred) {
			return shared.NewDomainError("INVALID_TAX_RATE", "Tax rates must be between 0 and 100 percent")
		}
	}
	return nil
}

// TaxParty is the subset of customer data relevant to VAT treatment
type TaxParty struct {
	Kind    CustomerKind
	Country string
	VATID   string
}

// DetermineTaxRegime picks the VAT regime for an invoice. An explicit override
// wins except for Kleinunternehmer, who never charge VAT.
func DetermineTaxRegime(company *Company, buyer TaxParty, override TaxRegime) TaxRegime {
	if company.SmallBusiness {
		return TaxRegimeSmallBusiness
	}
	if override != "" && override.IsValid() {
		return override
	}
	country := buyer.Country
	if country == "" || country == company.Address.Country {
		return TaxRegimeStandard
	}
	if !valueobject.IsEUCountry(country) {
		return TaxRegimeExport
	}
	if buyer.Kind == CustomerKindBusiness && buyer.VATID != "" {
		return TaxRegimeReverseCharge
	}
	return TaxRegimeStandard
}

// TaxGroup aggregates lines sharing a tax rate
type TaxGroup struct {
	Rate decimal.Decimal `json:"rate"`
	Net  decimal.Decimal `json:"net"`
	Tax  decimal.Decimal `json:"tax"`
}

// TaxBreakdown lists tax groups ordered by rate descending; stored as JSON
type TaxBreakdown []TaxGroup

// Value implements driver.Valuer for JSON storage
func (b TaxBreakdown) Value() (driver.Value, error) {
	if b == nil {
		return "[]", nil
	}
	data, err := json.Marshal(b)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner for JSON storage
func (b *TaxBreakdown) Scan(value any) error {
	return scanJSON(value, b, "TaxBreakdown")
}

// Totals is the result of pricing a set of lines
type Totals struct {
	Net       decimal.Decimal
	Tax       decimal.Decimal
	Gross     decimal.Decimal
	Breakdown TaxBreakdown
}

// CalculateTotals prices lines under a regime. VAT is computed once per rate
// group on the summed net and rounded to cents.
func CalculateTotals(lines InvoiceLines, regime TaxRegime, rates TaxRates) (InvoiceLines, Totals) {
	priced := make(InvoiceLines, len(lines))
	groups := map[string]*TaxGroup{}
	for i, l := range lines {
		l.Position = i + 1
		l.TaxRate = rates.RateFor(regime, l.TaxCategory)
		l.NetAmount = l.computeNet()
		priced[i] = l

		key := l.TaxRate.String()
		g, ok := groups[key]
		if !ok {
			g = &TaxGroup{Rate: l.TaxRate, Net: decimal.Zero, Tax: decimal.Zero}
			groups[key] = g
		}
		g.Net = g.Net.Add(l.NetAmount)
	}

	totals := Totals{Net: decimal.Zero, Tax: decimal.Zero, Breakdown: make(TaxBreakdown, 0, len(groups))}
	for _, g := range groups {
		g.Tax = valueobject.Euro(g.Net).Percent(g.Rate).RoundCents().Amount()
		totals.Net = totals.Net.Add(g.Net)
		totals.Tax = totals.Tax.Add(g.Tax)
		totals.Breakdown = append(totals.Breakdown, *g)
	}
	sort.Slice(totals.Breakdown, func(i, j int) bool {
		return totals.Breakdown[i].Rate.GreaterThan(totals.Breakdown[j].Rate)
	})
	totals.Gross = totals.Net.Add(totals.Tax)
	return priced, totals
}

func scanJSON(value any, dest any, name string) error {
	if value == nil {
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("failed to scan " + name + ": unsupported type")
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, dest)
}
