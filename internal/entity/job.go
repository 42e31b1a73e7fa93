package entity

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultWorkNotes is the placeholder written into a freshly started
// timesheet.
const DefaultWorkNotes = "* Work which was done goes here\n* Supports markdown formatting"

// ErrJobState is wrapped by every refused job or invoice transition.
var ErrJobState = errors.New("invalid job state")

// Close marks the job closed at now. Ongoing timesheets must be stopped
// first.
func (j *Job) Close(now time.Time) error {
	now = NormalizeTime(now)
	switch {
	case !j.DateClose.IsZero():
		return fmt.Errorf("%w: job closed on %s", ErrJobState, j.DateClose.Format(time.DateOnly))
	case now.Before(j.DateOpen):
		return fmt.Errorf("%w: close time %s is before the job opened", ErrJobState, now.Format(time.RFC3339))
	}
	for _, t := range j.Timesheets {
		if t.TimeEnd.IsZero() {
			return fmt.Errorf("%w: employee %s has an ongoing timesheet", ErrJobState, t.EmployeeID)
		}
	}
	j.DateClose = now
	return nil
}

// IssueInvoice records that the invoice was sent to the client at now.
func (j *Job) IssueInvoice(now time.Time) error {
	if !j.Invoice.DateIssued.IsZero() {
		return fmt.Errorf("%w: invoice issued on %s", ErrJobState, j.Invoice.DateIssued.Format(time.DateOnly))
	}
	j.Invoice.DateIssued = NormalizeTime(now)
	return nil
}

// PayInvoice records that the client paid at now. The invoice must have
// been issued no later than now.
func (j *Job) PayInvoice(now time.Time) error {
	now = NormalizeTime(now)
	switch {
	case j.Invoice.DateIssued.IsZero():
		return fmt.Errorf("%w: invoice has not been issued", ErrJobState)
	case !j.Invoice.DatePaid.IsZero():
		return fmt.Errorf("%w: invoice paid on %s", ErrJobState, j.Invoice.DatePaid.Format(time.DateOnly))
	case now.Before(j.Invoice.DateIssued):
		return fmt.Errorf("%w: payment time %s is before the invoice was issued", ErrJobState, now.Format(time.RFC3339))
	}
	j.Invoice.DatePaid = now
	return nil
}

// AttachTimesheet appends a timesheet for work which was done previously.
func (j *Job) AttachTimesheet(employee uuid.UUID, expenses []Expense, begin, end time.Time, workNotes string) {
	j.Timesheets = append(j.Timesheets, Timesheet{
		EmployeeID: employee,
		Expenses:   expenses,
		TimeBegin:  NormalizeTime(begin),
		TimeEnd:    NormalizeTime(end),
		WorkNotes:  Normalize(workNotes),
	})
}

// StartTimesheet appends an ongoing timesheet beginning at now.
func (j *Job) StartTimesheet(employee uuid.UUID, now time.Time) {
	j.AttachTimesheet(employee, nil, now, time.Time{}, DefaultWorkNotes)
}

// OpenTimesheet returns the index of the employee's ongoing timesheet,
// or -1 if there is none.
func (j *Job) OpenTimesheet(employee uuid.UUID) int {
	for i := len(j.Timesheets) - 1; i >= 0; i-- {
		t := j.Timesheets[i]
		if t.EmployeeID == employee && t.TimeEnd.IsZero() {
			return i
		}
	}
	return -1
}

// Stop closes the timesheet at now. When interval is positive the end time
// is rounded up so the billed duration is a whole number of intervals.
func (t *Timesheet) Stop(now time.Time, interval time.Duration) {
	end := NormalizeTime(now)
	if interval > 0 {
		elapsed := end.Sub(t.TimeBegin)
		steps := elapsed / interval
		if elapsed%interval != 0 {
			steps++
		}
		end = t.TimeBegin.Add(steps * interval)
	}
	t.TimeEnd = end
}

// Duration returns the length of a closed timesheet, or zero if ongoing.
func (t Timesheet) Duration() time.Duration {
	if t.TimeEnd.IsZero() {
		return 0
	}
	return t.TimeEnd.Sub(t.TimeBegin)
}

// Total returns the amount owed by the client: the hourly rate for every
// closed timesheet plus the expenses recorded on them.
//
// Ongoing timesheets are not billed. All expenses must share the hourly
// rate's currency.
func (j Job) Total() (Money, error) {
	rate := j.Invoice.HourlyRate
	total := Money{Currency: rate.Currency}

	for i, t := range j.Timesheets {
		if t.TimeEnd.IsZero() {
			continue
		}

		seconds := int64(t.Duration() / time.Second)
		// round half up to the nearest cent
		total.Amount += (seconds*rate.Amount + 1800) / 3600

		for _, e := range t.Expenses {
			var err error
			total, err = total.Add(e.Cost)
			if err != nil {
				return Money{}, fmt.Errorf("timesheet %d: %w", i, err)
			}
		}
	}

	return total, nil
}
