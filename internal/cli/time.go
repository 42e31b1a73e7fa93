package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/roach88/clerk/internal/entity"
	"github.com/roach88/clerk/internal/records"
)

// TimesheetResult is the output of the time subcommands.
type TimesheetResult struct {
	Job       string           `json:"job"`
	Timesheet entity.Timesheet `json:"timesheet"`
}

func (r TimesheetResult) String() string {
	t := r.Timesheet
	if t.TimeEnd.IsZero() {
		return fmt.Sprintf("✓ Started work on job %s at %s", r.Job, t.TimeBegin.Format(time.RFC3339))
	}
	return fmt.Sprintf("✓ Stopped work on job %s at %s (%s)", r.Job, t.TimeEnd.Format(time.RFC3339), t.Duration())
}

// NewTimeCommand creates the time command with start and stop
// subcommands.
func NewTimeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "time",
		Short: "Track time worked on a job",
	}

	cmd.AddCommand(newTimeSubcommand(rootOpts, "start"))
	cmd.AddCommand(newTimeSubcommand(rootOpts, "stop"))
	return cmd
}

func newTimeSubcommand(rootOpts *RootOptions, action string) *cobra.Command {
	var employee string

	short := "Start a timesheet on a job"
	if action == "stop" {
		short = "Stop the ongoing timesheet on a job, rounding up to the configured interval"
	}

	cmd := &cobra.Command{
		Use:           action + " <job-id>",
		Short:         short,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			jobID, err := parseID("job", args[0])
			if err != nil {
				return newFormatter(rootOpts, cmd).Fail(ErrCodeInvalidArgs, err)
			}

			s, err := openSession(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer s.close()

			employeeID, err := s.employee(employee)
			if err != nil {
				return s.fail(ErrCodeInvalidArgs, err)
			}

			var job entity.Job
			if action == "start" {
				job, err = s.repo.StartTimesheet(cmd.Context(), jobID, employeeID, s.now())
			} else {
				var interval time.Duration
				if interval, err = s.cfg.Interval(); err == nil {
					job, err = s.repo.StopTimesheet(cmd.Context(), jobID, employeeID, s.now(), interval)
				}
			}
			if err != nil {
				if errors.Is(err, records.ErrTimesheetOngoing) || errors.Is(err, records.ErrNoOngoingTimesheet) {
					return s.fail(ErrCodeInvalidArgs, err)
				}
				return s.fail("", err)
			}

			return s.out.Success(TimesheetResult{Job: job.ID.String(), Timesheet: lastTimesheet(job, employeeID)})
		},
	}

	cmd.Flags().StringVarP(&employee, "employee", "e", "", "employee id (default from config employees.default_id)")
	return cmd
}

// employee resolves the --employee flag, falling back to the configured
// default.
func (s *session) employee(flag string) (uuid.UUID, error) {
	if flag != "" {
		return parseID("employee", flag)
	}
	id, ok, err := s.cfg.DefaultEmployee()
	if err != nil {
		return uuid.Nil, err
	}
	if !ok {
		return uuid.Nil, errors.New("no --employee given and no employees.default_id configured")
	}
	return id, nil
}

// lastTimesheet returns the employee's most recently started timesheet.
func lastTimesheet(job entity.Job, employee uuid.UUID) entity.Timesheet {
	var last entity.Timesheet
	for _, t := range job.Timesheets {
		if t.EmployeeID == employee && !t.TimeBegin.Before(last.TimeBegin) {
			last = t
		}
	}
	return last
}
