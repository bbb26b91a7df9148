package invoicing

import (
	"fmt"
	"time"

	"github.com/faktura/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DunningLevel is the escalation stage of an overdue invoice
type DunningLevel int

const (
	DunningLevelNone       DunningLevel = iota
	DunningLevelReminder                // Zahlungserinnerung
	DunningLevelFirst                   // 1. Mahnung
	DunningLevelSecond                  // 2. Mahnung
	DunningLevelThird                   // 3. Mahnung
	DunningLevelCollection              // Inkasso
)

var dunningLevelNames = map[DunningLevel]string{
	DunningLevelNone:       "none",
	DunningLevelReminder:   "reminder",
	DunningLevelFirst:      "first_notice",
	DunningLevelSecond:     "second_notice",
	DunningLevelThird:      "third_notice",
	DunningLevelCollection: "collection",
}

// String returns the API name of the level
func (l DunningLevel) String() string {
	if name, ok := dunningLevelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("level_%d", int(l))
}

// IsValid checks if the level is known
func (l DunningLevel) IsValid() bool {
	return l >= DunningLevelNone && l <= DunningLevelCollection
}

// Next returns the following level; collection is final
func (l DunningLevel) Next() DunningLevel {
	if l >= DunningLevelCollection {
		return DunningLevelCollection
	}
	return l + 1
}

// IsFormal reports whether the level is a formal Mahnung or beyond
func (l DunningLevel) IsFormal() bool {
	return l >= DunningLevelFirst
}

// Title returns the German document title for the level
func (l DunningLevel) Title() string {
	switch l {
	case DunningLevelReminder:
		return "Zahlungserinnerung"
	case DunningLevelFirst:
		return "1. Mahnung"
	case DunningLevelSecond:
		return "2. Mahnung"
	case DunningLevelThird:
		return "3. Mahnung (letzte Mahnung)"
	case DunningLevelCollection:
		return "Ankündigung der Übergabe an ein Inkassounternehmen"
	}
	return ""
}

// ParseDunningLevel parses the API name of a level
func ParseDunningLevel(s string) (DunningLevel, error) {
	for level, name := range dunningLevelNames {
		if name == s {
			return level, nil
		}
	}
	return DunningLevelNone, shared.NewDomainError("INVALID_DUNNING_LEVEL", fmt.Sprintf("Unknown dunning level %q", s))
}

// StatutoryFlatFee is the §288 (5) BGB lump sum owed by business debtors in default
var StatutoryFlatFee = decimal.NewFromInt(40)

// DunningSettings is the per-company escalation configuration. Thresholds are
// days past the due date.
type DunningSettings struct {
	Enabled                bool            `json:"enabled"`
	ReminderDays           int             `json:"reminder_days"`
	FirstNoticeDays        int             `json:"first_notice_days"`
	SecondNoticeDays       int             `json:"second_notice_days"`
	ThirdNoticeDays        int             `json:"third_notice_days"`
	CollectionDays         int             `json:"collection_days"`
	ReminderFee            decimal.Decimal `json:"reminder_fee"`
	FirstNoticeFee         decimal.Decimal `json:"first_notice_fee"`
	SecondNoticeFee        decimal.Decimal `json:"second_notice_fee"`
	ThirdNoticeFee         decimal.Decimal `json:"third_notice_fee"`
	CollectionFee          decimal.Decimal `json:"collection_fee"`
	MinDaysBetweenNotices  int             `json:"min_days_between_notices"`
	PaymentDeadlineDays    int             `json:"payment_deadline_days"`
	InterestEnabled        bool            `json:"interest_enabled"`
	BaseInterestRate       decimal.Decimal `json:"base_interest_rate"`       // Basiszinssatz, percent p.a.
	BusinessInterestMarkup decimal.Decimal `json:"business_interest_markup"` // percentage points, §288 (2) BGB
	ConsumerInterestMarkup decimal.Decimal `json:"consumer_interest_markup"` // percentage points, §288 (1) BGB
	BusinessFlatFeeEnabled bool            `json:"business_flat_fee_enabled"`
}

// DefaultDunningSettings returns the defaults new companies start with
func DefaultDunningSettings() DunningSettings {
	return DunningSettings{
		Enabled:                true,
		ReminderDays:           7,
		FirstNoticeDays:        14,
		SecondNoticeDays:       28,
		ThirdNoticeDays:        42,
		CollectionDays:         56,
		ReminderFee:            decimal.Zero,
		FirstNoticeFee:         decimal.NewFromInt(5),
		SecondNoticeFee:        decimal.NewFromInt(10),
		ThirdNoticeFee:         decimal.NewFromInt(15),
		CollectionFee:          decimal.Zero,
		MinDaysBetweenNotices:  7,
		PaymentDeadlineDays:    10,
		InterestEnabled:        true,
		BaseInterestRate:       decimal.RequireFromString("1.27"),
		BusinessInterestMarkup: decimal.NewFromInt(9),
		ConsumerInterestMarkup: decimal.NewFromInt(5),
		BusinessFlatFeeEnabled: true,
	}
}

// Validate checks thresholds are positive and strictly increasing and fees non-negative
func (s DunningSettings) Validate() error {
	thresholds := []int{s.ReminderDays, s.FirstNoticeDays, s.SecondNoticeDays, s.ThirdNoticeDays, s.CollectionDays}
	prev := 0
	for _, t := range thresholds {
		if t <= prev {
			return shared.NewDomainError("INVALID_DUNNING_THRESHOLDS", "Dunning thresholds must be positive and strictly increasing")
		}
		prev = t
	}
	for _, f := range []decimal.Decimal{s.ReminderFee, s.FirstNoticeFee, s.SecondNoticeFee, s.ThirdNoticeFee, s.CollectionFee} {
		if f.IsNegative() {
			return shared.NewDomainError("INVALID_DUNNING_FEE", "Dunning fees cannot be negative")
		}
	}
	if s.MinDaysBetweenNotices < 0 {
		return shared.NewDomainError("INVALID_DUNNING_INTERVAL", "Minimum days between notices cannot be negative")
	}
	if s.PaymentDeadlineDays < 1 {
		return shared.NewDomainError("INVALID_PAYMENT_DEADLINE", "Payment deadline must be at least one day")
	}
	for _, r := range []decimal.Decimal{s.BusinessInterestMarkup, s.ConsumerInterestMarkup} {
		if r.IsNegative() {
			return shared.NewDomainError("INVALID_INTEREST_RATE", "Interest markups cannot be negative")
		}
	}
	if s.InterestRateFor(CustomerKindConsumer).IsNegative() || s.InterestRateFor(CustomerKindBusiness).IsNegative() {
		return shared.NewDomainError("INVALID_INTEREST_RATE", "Effective interest rate cannot be negative")
	}
	return nil
}

// ThresholdFor returns the days past due at which a level becomes due
func (s DunningSettings) ThresholdFor(level DunningLevel) int {
	switch level {
	case DunningLevelReminder:
		return s.ReminderDays
	case DunningLevelFirst:
		return s.FirstNoticeDays
	case DunningLevelSecond:
		return s.SecondNoticeDays
	case DunningLevelThird:
		return s.ThirdNoticeDays
	case DunningLevelCollection:
		return s.CollectionDays
	}
	return 0
}

// FeeFor returns the fee charged when a level is reached
func (s DunningSettings) FeeFor(level DunningLevel) decimal.Decimal {
	switch level {
	case DunningLevelReminder:
		return s.ReminderFee
	case DunningLevelFirst:
		return s.FirstNoticeFee
	case DunningLevelSecond:
		return s.SecondNoticeFee
	case DunningLevelThird:
		return s.ThirdNoticeFee
	case DunningLevelCollection:
		return s.CollectionFee
	}
	return decimal.Zero
}

// InterestRateFor returns the annual default interest rate (percent) for a debtor kind
func (s DunningSettings) InterestRateFor(kind CustomerKind) decimal.Decimal {
	if kind == CustomerKindConsumer {
		return s.BaseInterestRate.Add(s.ConsumerInterestMarkup)
	}
	return s.BaseInterestRate.Add(s.BusinessInterestMarkup)
}

// TargetLevel returns the highest level whose threshold daysOverdue has reached
func (s DunningSettings) TargetLevel(daysOverdue int) DunningLevel {
	target := DunningLevelNone
	for level := DunningLevelReminder; level <= DunningLevelCollection; level++ {
		if daysOverdue >= s.ThresholdFor(level) {
			target = level
		}
	}
	return target
}

// CalculateInterest returns simple default interest on principal for the days
// between from and to (act/365), rounded to cents
func CalculateInterest(principal, annualRatePercent decimal.Decimal, from, to time.Time) decimal.Decimal {
	days := DaysBetween(from, to)
	if days <= 0 || !principal.IsPositive() || !annualRatePercent.IsPositive() {
		return decimal.Zero
	}
	return principal.
		Mul(annualRatePercent).
		Mul(decimal.NewFromInt(int64(days))).
		Div(decimal.NewFromInt(36500)).
		Round(2)
}

// DunningDecision is the outcome of evaluating one invoice
type DunningDecision struct {
	Escalate      bool            `json:"escalate"`
	CurrentLevel  DunningLevel    `json:"current_level"`
	NextLevel     DunningLevel    `json:"next_level"`
	TargetLevel   DunningLevel    `json:"target_level"`
	DaysOverdue   int             `json:"days_overdue"`
	Fee           decimal.Decimal `json:"fee"`
	FlatFee       decimal.Decimal `json:"flat_fee"`
	Interest      decimal.Decimal `json:"interest"`
	InterestRate  decimal.Decimal `json:"interest_rate"`
	InterestUntil *time.Time      `json:"interest_until,omitempty"`
	Reason        string          `json:"reason"`
}

// Skip reasons reported by the policy
const (
	SkipNotDunnable     = "invoice is not open"
	SkipNothingOwed     = "nothing outstanding"
	SkipBlocked         = "dunning blocked"
	SkipNotDue          = "not overdue"
	SkipBelowThreshold  = "next threshold not reached"
	SkipTooSoon         = "previous notice too recent"
	SkipFinalLevel      = "already handed over to collection"
	SkipDunningDisabled = "dunning disabled for company"
)

// DunningPolicy decides escalations from a company's settings
type DunningPolicy struct {
	settings DunningSettings
}

// NewDunningPolicy creates a policy for the given settings
func NewDunningPolicy(settings DunningSettings) *DunningPolicy {
	return &DunningPolicy{settings: settings}
}

// Settings returns the policy configuration
func (p *DunningPolicy) Settings() DunningSettings {
	return p.settings
}

// Evaluate decides whether inv escalates on asOf. Escalation moves at most one
// level per evaluation and respects the minimum gap between notices, so every
// stage is actually sent before the next one.
func (p *DunningPolicy) Evaluate(inv *Invoice, asOf time.Time) DunningDecision {
	asOf = DateOnly(asOf)
	d := DunningDecision{
		CurrentLevel: inv.DunningLevel,
		NextLevel:    inv.DunningLevel,
		DaysOverdue:  inv.DaysOverdue(asOf),
		Fee:          decimal.Zero,
		FlatFee:      decimal.Zero,
		Interest:     decimal.Zero,
		InterestRate: decimal.Zero,
	}

	switch {
	case !p.settings.Enabled:
		d.Reason = SkipDunningDisabled
		return d
	case inv.Type != InvoiceTypeStandard || !inv.Status.IsDunnable():
		if inv.Status == InvoiceStatusInCollection {
			d.Reason = SkipFinalLevel
		} else {
			d.Reason = SkipNotDunnable
		}
		return d
	case !inv.OutstandingPrincipal().IsPositive():
		d.Reason = SkipNothingOwed
		return d
	case inv.DunningBlocked:
		d.Reason = SkipBlocked
		return d
	case d.DaysOverdue <= 0:
		d.Reason = SkipNotDue
		return d
	case inv.DunningLevel >= DunningLevelCollection:
		d.Reason = SkipFinalLevel
		return d
	}

	d.TargetLevel = p.settings.TargetLevel(d.DaysOverdue)
	if d.TargetLevel <= inv.DunningLevel {
		d.Reason = SkipBelowThreshold
		return d
	}
	if inv.LastDunnedAt != nil && DaysBetween(*inv.LastDunnedAt, asOf) < p.settings.MinDaysBetweenNotices {
		d.Reason = SkipTooSoon
		return d
	}

	next := inv.DunningLevel.Next()
	d.Escalate = true
	d.NextLevel = next
	d.Fee = p.settings.FeeFor(next)
	if next == DunningLevelFirst && p.settings.BusinessFlatFeeEnabled &&
		inv.Buyer.Kind == CustomerKindBusiness && !inv.FlatFeeCharged {
		d.FlatFee = StatutoryFlatFee
	}

	// Default interest runs from the due date but is only charged from the
	// first formal notice on; the friendly reminder is free of interest.
	if p.settings.InterestEnabled && next.IsFormal() {
		from := *inv.DueDate
		if inv.InterestAccruedUntil != nil {
			from = *inv.InterestAccruedUntil
		}
		d.InterestRate = p.settings.InterestRateFor(inv.Buyer.Kind)
		d.Interest = CalculateInterest(inv.OutstandingPrincipal(), d.InterestRate, from, asOf)
		until := asOf
		d.InterestUntil = &until
	}
	d.Reason = fmt.Sprintf("%d days overdue, escalating to %s", d.DaysOverdue, next)
	return d
}
