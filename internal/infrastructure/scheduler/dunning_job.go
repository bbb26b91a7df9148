package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DunningRunFunc performs the scheduled dunning run of one tenant
type DunningRunFunc func(ctx context.Context, tenantID uuid.UUID, runDate time.Time) error

// DunningJobExecutor executes DUNNING_RUN jobs
type DunningJobExecutor struct {
	run DunningRunFunc
}

var _ JobExecutor = (*DunningJobExecutor)(nil)

// NewDunningJobExecutor creates an executor calling run for each job
func NewDunningJobExecutor(run DunningRunFunc) *DunningJobExecutor {
	return &DunningJobExecutor{run: run}
}

// Execute runs the tenant's dunning for the job's run date
func (e *DunningJobExecutor) Execute(ctx context.Context, job *Job) error {
	if job.Kind != JobKindDunningRun {
		return fmt.Errorf("%w: %s", ErrUnknownJobKind, job.Kind)
	}
	return e.run(ctx, job.TenantID, job.RunDate)
}
