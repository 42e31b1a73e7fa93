// Package export renders jobs as documents that can be sent to a client.
package export

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/roach88/clerk/internal/entity"
)

// TimeLayout is the format of every date written by Markdown.
const TimeLayout = "2006-01-02 15:04:05"

// markdown accumulates a document.
type markdown struct {
	b strings.Builder
}

func (m *markdown) heading(depth int, text string) {
	fmt.Fprintf(&m.b, "%s %s\n\n", strings.Repeat("#", depth), text)
}

func (m *markdown) item(depth int, label, value string) {
	fmt.Fprintf(&m.b, "%s- **%s**: %s\n", strings.Repeat("  ", depth), label, value)
}

// block writes free text, which is usually markdown already.
func (m *markdown) block(text string) {
	m.b.WriteString(strings.TrimRight(text, "\n"))
	m.b.WriteString("\n\n")
}

func (m *markdown) brk() {
	m.b.WriteString("\n")
}

func formatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// Markdown renders job with its client, invoice, objectives, notes and
// every timesheet. Only employee contacts flagged for export are written.
//
// An error is returned when the total cannot be computed, which happens
// when an expense is in a different currency than the hourly rate.
func Markdown(job entity.JobView) (string, error) {
	total, err := job.Job().Total()
	if err != nil {
		return "", fmt.Errorf("export job %s: %w", job.ID, err)
	}

	var m markdown

	m.heading(1, "Job #"+job.ID.String())
	m.item(0, "Client", job.Client.String())
	m.item(0, "Date Opened", formatTime(job.DateOpen))
	if !job.DateClose.IsZero() {
		m.item(0, "Date Closed", formatTime(job.DateClose))
	}
	m.brk()

	m.heading(2, "Invoice")
	m.item(0, "Hourly Rate", job.Invoice.HourlyRate.String())
	if status := invoiceStatus(job.Invoice); status != "" {
		m.item(0, "Status", status)
	}
	m.item(0, "Total Amount Owed", total.String())
	m.brk()

	m.heading(2, "Objectives")
	m.block(job.Objectives)

	if job.Notes != "" {
		m.heading(2, "Notes")
		m.block(job.Notes)
	}

	if len(job.Timesheets) > 0 {
		m.heading(2, "Timesheets")
		for _, t := range job.Timesheets {
			m.timesheet(t)
		}
	}

	return m.b.String(), nil
}

func invoiceStatus(inv entity.Invoice) string {
	if inv.DateIssued.IsZero() {
		return ""
	}
	status := "Issued on " + formatTime(inv.DateIssued)
	if inv.DatePaid.IsZero() {
		return status + ", outstanding"
	}
	return status + ", paid on " + formatTime(inv.DatePaid)
}

func (m *markdown) timesheet(t entity.TimesheetView) {
	end := "present"
	if !t.TimeEnd.IsZero() {
		end = formatTime(t.TimeEnd)
	}
	m.heading(3, formatTime(t.TimeBegin)+" to "+end)

	m.heading(4, "Employee Information")
	m.item(0, "Name", t.Employee.Person.Name)
	m.item(0, "Employer", t.Employee.Organization.String())
	m.item(0, "Title", t.Employee.Title)

	var labels []string
	for _, label := range slices.Sorted(maps.Keys(t.Employee.ContactInfo)) {
		if t.Employee.ContactInfo[label].Export {
			labels = append(labels, label)
		}
	}
	if len(labels) > 0 {
		fmt.Fprintf(&m.b, "- **Contact Information**:\n")
		for _, label := range labels {
			m.item(1, label, t.Employee.ContactInfo[label].String())
		}
	}
	m.brk()

	if len(t.Expenses) > 0 {
		m.heading(4, "Expenses")
		for _, e := range t.Expenses {
			m.heading(5, fmt.Sprintf("%s: %s", e.Category, e.Cost))
			m.block(e.Description)
		}
	}

	if t.WorkNotes != "" {
		m.heading(4, "Work Notes")
		m.block(t.WorkNotes)
	}
}
