package export

import (
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/clerk/internal/entity"
	"github.com/roach88/clerk/internal/testutil"
)

func street() entity.LocationView {
	earth := &entity.LocationView{ID: testutil.ID(1), Name: "Earth"}
	usa := &entity.LocationView{ID: testutil.ID(2), Name: "USA", Outer: earth}
	arizona := &entity.LocationView{ID: testutil.ID(3), Name: "Arizona", Outer: usa}
	phoenix := &entity.LocationView{ID: testutil.ID(4), Name: "Phoenix", Outer: arizona}
	return entity.LocationView{ID: testutil.ID(5), Name: "1337 Some Street", Outer: phoenix}
}

func fixtureJob() entity.JobView {
	org := entity.OrganizationView{ID: testutil.ID(10), Location: street(), Name: "Big Old Test"}
	return entity.JobView{
		ID:         testutil.ID(100),
		Client:     org,
		DateOpen:   testutil.Epoch,
		Invoice:    entity.Invoice{HourlyRate: entity.Money{Amount: 2000, Currency: "USD"}},
		Notes:      "- I tested the function.",
		Objectives: "- I want to test this function.",
	}
}

func fixtureTimesheets(org entity.OrganizationView) []entity.TimesheetView {
	home := street()
	testy := entity.EmployeeView{
		ID:           testutil.ID(20),
		Organization: org,
		Person:       entity.PersonView{ID: testutil.ID(21), Name: "Testy McTesterson"},
		Title:        "CEO of Tests",
		Status:       entity.StatusRepresentative,
		ContactInfo: map[string]entity.ContactView{
			"work": {Kind: entity.ContactEmail, Email: "foo@bar.io", Export: true},
			"home": {Kind: entity.ContactAddress, Location: &home},
			"cell": {Kind: entity.ContactPhone, Phone: "555-0100", Export: true},
		},
	}
	bob := entity.EmployeeView{
		ID:           testutil.ID(22),
		Organization: org,
		Person:       entity.PersonView{ID: testutil.ID(23), Name: "Bob"},
		Title:        "Janitor",
		Status:       entity.StatusEmployed,
	}

	return []entity.TimesheetView{
		{
			Employee:  testy,
			TimeBegin: testutil.Epoch.Add(2 * time.Hour),
			TimeEnd:   testutil.Epoch.Add(2*time.Hour + 30*time.Minute),
			WorkNotes: "- Wrote the test.",
		},
		{
			Employee: bob,
			Expenses: []entity.Expense{{
				Category:    entity.ExpenseOther,
				Cost:        entity.Money{Amount: 2000, Currency: "USD"},
				Description: "Paid for someone else to clean",
			}},
			TimeBegin: testutil.Epoch.Add(3 * time.Hour),
			TimeEnd:   testutil.Epoch.Add(3*time.Hour + 30*time.Minute),
			WorkNotes: "- Clean the deck.",
		},
	}
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestMarkdown_OpenJob(t *testing.T) {
	out, err := Markdown(fixtureJob())
	require.NoError(t, err)

	newGoldie(t).Assert(t, "job_open", []byte(out))
}

func TestMarkdown_ClosedJob(t *testing.T) {
	job := fixtureJob()
	job.DateClose = testutil.Epoch.Add(4*time.Hour + 30*time.Minute)
	job.Invoice.DateIssued = testutil.Epoch.Add(24 * time.Hour)
	job.Timesheets = fixtureTimesheets(job.Client)

	out, err := Markdown(job)
	require.NoError(t, err)

	newGoldie(t).Assert(t, "job_closed", []byte(out))
}

func TestMarkdown_OngoingTimesheet(t *testing.T) {
	job := fixtureJob()
	job.Timesheets = fixtureTimesheets(job.Client)[:1]
	job.Timesheets[0].TimeEnd = time.Time{}

	out, err := Markdown(job)
	require.NoError(t, err)
	assert.Contains(t, out, "### 2024-03-01 11:00:00 to present\n")
	assert.Contains(t, out, "- **Total Amount Owed**: 0.00 USD\n")
}

func TestMarkdown_PaidInvoice(t *testing.T) {
	job := fixtureJob()
	job.Invoice.DateIssued = testutil.Epoch.Add(24 * time.Hour)
	job.Invoice.DatePaid = testutil.Epoch.Add(48 * time.Hour)

	out, err := Markdown(job)
	require.NoError(t, err)
	assert.Contains(t, out, "- **Status**: Issued on 2024-03-02 09:00:00, paid on 2024-03-03 09:00:00\n")
}

func TestMarkdown_MixedCurrency(t *testing.T) {
	job := fixtureJob()
	job.Timesheets = fixtureTimesheets(job.Client)
	job.Timesheets[1].Expenses[0].Cost.Currency = "EUR"

	_, err := Markdown(job)
	require.Error(t, err)
	assert.Contains(t, err.Error(), job.ID.String())
}
