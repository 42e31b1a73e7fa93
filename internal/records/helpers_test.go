package records_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/roach88/clerk/internal/entity"
	"github.com/roach88/clerk/internal/records"
	"github.com/roach88/clerk/internal/testutil"
)

// world is a small record graph:
//
//	Earth ◀─ USA ◀─ Arizona
//	Big Old Test @ Earth
//	Testy McTesterson, employee of Big Old Test
//	one job for Big Old Test with one closed timesheet by the employee
type world struct {
	earth, usa, arizona entity.Location
	org                 entity.Organization
	person              entity.Person
	employee            entity.Employee
	job                 entity.Job
}

func seed(t *testing.T, r *records.Repo) world {
	t.Helper()
	ctx := context.Background()
	var w world
	var err error

	w.earth, err = r.CreateLocation(ctx, "Earth")
	require.NoError(t, err)
	w.usa, err = r.CreateInnerLocation(ctx, w.earth, "USA")
	require.NoError(t, err)
	w.arizona, err = r.CreateInnerLocation(ctx, w.usa, "Arizona")
	require.NoError(t, err)

	w.org, err = r.CreateOrganization(ctx, w.earth, "Big Old Test")
	require.NoError(t, err)

	w.person, err = r.CreatePerson(ctx, "Testy McTesterson", map[string]entity.Contact{
		"home": entity.Address(w.arizona.ID, false),
	})
	require.NoError(t, err)

	w.employee, err = r.CreateEmployee(ctx, w.org, w.person, "CEO of Tests", entity.StatusEmployed,
		map[string]entity.Contact{"work": entity.Email("foo@bar.io", true)})
	require.NoError(t, err)

	w.job, err = r.CreateJob(ctx, w.org, testutil.Epoch, entity.Money{Amount: 2000, Currency: "USD"}, "Test the job creation function")
	require.NoError(t, err)
	w.job.AttachTimesheet(w.employee.ID, nil, testutil.Epoch, testutil.Epoch.Add(time.Hour), "- Wrote the test.")
	require.NoError(t, r.UpdateJob(ctx, w.job))

	return w
}

// repos runs f against a flat-file repo and a SQLite repo.
func repos(t *testing.T, f func(t *testing.T, r *records.Repo), opts ...records.Option) {
	t.Run("flatfile", func(t *testing.T) {
		r, _ := testutil.NewRepo(t, opts...)
		f(t, r)
	})
	t.Run("sqlite", func(t *testing.T) {
		f(t, testutil.NewSQLiteRepo(t, opts...))
	})
}
