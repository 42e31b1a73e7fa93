package records

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/clerk/internal/entity"
)

var (
	// ErrTimesheetOngoing is returned when starting work for an employee
	// who already has an ongoing timesheet on the job.
	ErrTimesheetOngoing = errors.New("employee already has an ongoing timesheet on this job")

	// ErrNoOngoingTimesheet is returned when stopping work for an employee
	// with no ongoing timesheet on the job.
	ErrNoOngoingTimesheet = errors.New("employee has no ongoing timesheet on this job")
)

// StartTimesheet begins a timesheet for employeeID on jobID at now. Both
// records must exist.
func (r *Repo) StartTimesheet(ctx context.Context, jobID, employeeID uuid.UUID, now time.Time) (entity.Job, error) {
	job, err := r.Job(ctx, jobID)
	if err != nil {
		return entity.Job{}, err
	}
	if _, err := r.Employee(ctx, employeeID); err != nil {
		return entity.Job{}, err
	}
	if !job.DateClose.IsZero() {
		return entity.Job{}, fmt.Errorf("start timesheet: job %s closed on %s", jobID, job.DateClose.Format(time.DateOnly))
	}
	if job.OpenTimesheet(employeeID) >= 0 {
		return entity.Job{}, fmt.Errorf("start timesheet: %w", ErrTimesheetOngoing)
	}

	job.StartTimesheet(employeeID, now)
	if err := r.UpdateJob(ctx, job); err != nil {
		return entity.Job{}, err
	}
	r.logger.Info("timesheet started", "job", jobID, "employee", employeeID)
	return job, nil
}

// StopTimesheet ends the employee's ongoing timesheet on jobID at now,
// rounded up to a whole number of intervals.
func (r *Repo) StopTimesheet(ctx context.Context, jobID, employeeID uuid.UUID, now time.Time, interval time.Duration) (entity.Job, error) {
	job, err := r.Job(ctx, jobID)
	if err != nil {
		return entity.Job{}, err
	}

	i := job.OpenTimesheet(employeeID)
	if i < 0 {
		return entity.Job{}, fmt.Errorf("stop timesheet: %w", ErrNoOngoingTimesheet)
	}
	job.Timesheets[i].Stop(now, interval)

	if err := r.UpdateJob(ctx, job); err != nil {
		return entity.Job{}, err
	}
	r.logger.Info("timesheet stopped", "job", jobID, "employee", employeeID,
		"duration", job.Timesheets[i].Duration())
	return job, nil
}
