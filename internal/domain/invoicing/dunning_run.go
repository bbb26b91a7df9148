package invoicing

import (
	"fmt"
	"time"

	"github.com/faktura/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DunningRunStatus is the state of a batch dunning run
type DunningRunStatus string

const (
	DunningRunStatusRunning   DunningRunStatus = "running"
	DunningRunStatusCompleted DunningRunStatus = "completed"
	DunningRunStatusFailed    DunningRunStatus = "failed"
)

// DunningRunTrigger tells who started a run
type DunningRunTrigger string

const (
	DunningRunTriggerScheduled DunningRunTrigger = "scheduled"
	DunningRunTriggerManual    DunningRunTrigger = "manual"
)

// DunningRun is one evaluation of all open invoices of a tenant for a run date.
// There is at most one run per tenant and date.
type DunningRun struct {
	shared.BaseEntity
	TenantID   uuid.UUID
	RunDate    time.Time
	Trigger    DunningRunTrigger
	Status     DunningRunStatus
	Evaluated  int
	Escalated  int
	Skipped    int
	Failed     int
	StartedAt  time.Time
	FinishedAt *time.Time
	Error      string
}

// NewDunningRun starts a run for runDate
func NewDunningRun(tenantID uuid.UUID, runDate time.Time, trigger DunningRunTrigger) *DunningRun {
	return &DunningRun{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   tenantID,
		RunDate:    DateOnly(runDate),
		Trigger:    trigger,
		Status:     DunningRunStatusRunning,
		StartedAt:  time.Now().UTC(),
	}
}

// DunningRunKey is the idempotency key of a tenant's run for a date
func DunningRunKey(tenantID uuid.UUID, runDate time.Time) string {
	return fmt.Sprintf("dunning-run:%s:%s", tenantID, DateOnly(runDate).Format("2006-01-02"))
}

// Key returns the idempotency key of the run
func (r *DunningRun) Key() string {
	return DunningRunKey(r.TenantID, r.RunDate)
}

// RecordEscalated counts an escalated invoice
func (r *DunningRun) RecordEscalated() {
	r.Evaluated++
	r.Escalated++
}

// RecordSkipped counts an invoice left unchanged
func (r *DunningRun) RecordSkipped() {
	r.Evaluated++
	r.Skipped++
}

// RecordFailed counts an invoice whose escalation failed
func (r *DunningRun) RecordFailed() {
	r.Evaluated++
	r.Failed++
}

// Complete marks the run finished
func (r *DunningRun) Complete() {
	now := time.Now().UTC()
	r.Status = DunningRunStatusCompleted
	r.FinishedAt = &now
	r.UpdatedAt = now
}

// Fail marks the run as aborted
func (r *DunningRun) Fail(err error) {
	now := time.Now().UTC()
	r.Status = DunningRunStatusFailed
	r.FinishedAt = &now
	r.UpdatedAt = now
	if err != nil {
		r.Error = err.Error()
	}
}

// IsFinished reports whether the run has completed or failed
func (r *DunningRun) IsFinished() bool {
	return r.Status == DunningRunStatusCompleted || r.Status == DunningRunStatusFailed
}
