package records_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/clerk/internal/entity"
	"github.com/roach88/clerk/internal/match"
	"github.com/roach88/clerk/internal/query"
	"github.com/roach88/clerk/internal/records"
	"github.com/roach88/clerk/internal/testutil"
)

func TestJobView_EmbedsReferences(t *testing.T) {
	repos(t, func(t *testing.T, r *records.Repo) {
		ctx := context.Background()
		w := seed(t, r)

		jobs, err := r.RetrieveJobs(ctx, query.Job{Client: query.Organization{ID: match.EqualTo(w.org.ID)}})
		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, w.job.ID, jobs[0].ID)

		v, err := r.JobView(ctx, jobs[0])
		require.NoError(t, err)

		assert.Equal(t, w.org.ID, v.Client.ID)
		assert.Equal(t, "Big Old Test", v.Client.Name)
		assert.Equal(t, entity.LocationView{ID: w.earth.ID, Name: "Earth"}, v.Client.Location)

		require.Len(t, v.Timesheets, 1)
		ev := v.Timesheets[0].Employee
		assert.Equal(t, w.employee.ID, ev.ID)
		assert.Equal(t, "CEO of Tests", ev.Title)
		assert.Equal(t, "Testy McTesterson", ev.Person.Name)
		assert.Equal(t, "foo@bar.io", ev.ContactInfo["work"].String())

		home := ev.Person.ContactInfo["home"]
		require.NotNil(t, home.Location)
		assert.Equal(t, "Arizona, USA, Earth", home.String())

		assert.Equal(t, jobs[0], v.Job())
	})
}

func TestRetrieveJobViews_QueryByNestedField(t *testing.T) {
	repos(t, func(t *testing.T, r *records.Repo) {
		ctx := context.Background()
		w := seed(t, r)

		other, err := r.CreateOrganization(ctx, w.arizona, "Elsewhere Inc")
		require.NoError(t, err)
		_, err = r.CreateJob(ctx, other, testutil.Epoch, entity.Money{Amount: 5000, Currency: "USD"}, "Other work")
		require.NoError(t, err)

		// Clients at a location directly inside the USA.
		inUSA := query.Job{Client: query.Organization{Location: query.Location{
			Outer: query.Some(query.Location{ID: match.EqualTo(w.usa.ID)}),
		}}}
		views, err := r.RetrieveJobViews(ctx, inUSA)
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "Elsewhere Inc", views[0].Client.Name)

		// Raw retrieval compares only the direct client id.
		raw, err := r.RetrieveJobs(ctx, query.Job{Client: query.Organization{ID: match.EqualTo(other.ID)}})
		require.NoError(t, err)
		assert.Len(t, raw, 1)

		byTitle := query.Job{Timesheets: query.Timesheet{
			Employee: query.Employee{Title: match.EqualTo("CEO of Tests")},
		}}
		views, err = r.RetrieveJobViews(ctx, byTitle)
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, w.job.ID, views[0].ID)
	})
}

func TestJobView_DanglingClient(t *testing.T) {
	r, _ := testutil.NewRepo(t)
	ctx := context.Background()
	w := seed(t, r)

	w.job.ClientID = uuid.MustParse("11111111-1111-7111-8111-111111111111")
	require.NoError(t, r.UpdateJob(ctx, w.job))

	_, err := r.JobView(ctx, w.job)
	require.Error(t, err)

	var re *records.Error
	require.ErrorAs(t, err, &re)
	assert.Equal(t, records.ErrCodeDataIntegrity, re.Code)
	assert.Equal(t, entity.KindOrganization, re.Kind)
	assert.Equal(t, w.job.ClientID, re.ID)
	assert.Contains(t, re.Message, w.job.ID.String())
}

func TestJobView_DanglingEmployee(t *testing.T) {
	r, _ := testutil.NewRepo(t)
	ctx := context.Background()
	w := seed(t, r)

	ghost := uuid.MustParse("22222222-2222-7222-8222-222222222222")
	w.job.AttachTimesheet(ghost, nil, testutil.Epoch, testutil.Epoch, "")
	require.NoError(t, r.UpdateJob(ctx, w.job))

	_, err := r.RetrieveJobViews(ctx, query.Job{})
	require.Error(t, err)

	var re *records.Error
	require.ErrorAs(t, err, &re)
	assert.Equal(t, entity.KindEmployee, re.Kind)
	assert.Equal(t, ghost, re.ID)
}

func TestPersonView_DanglingAddress(t *testing.T) {
	r, _ := testutil.NewRepo(t)
	ctx := context.Background()
	w := seed(t, r)

	require.NoError(t, r.DeleteLocation(ctx, w.arizona.ID, false))

	_, err := r.PersonView(ctx, w.person)
	assert.True(t, records.IsDataIntegrity(err))

	// Raw retrieval is unaffected.
	p, err := r.Person(ctx, w.person.ID)
	require.NoError(t, err)
	assert.Equal(t, w.person, p)
}

func TestEmployeeView_ContactLabelsSorted(t *testing.T) {
	r, _ := testutil.NewRepo(t)
	ctx := context.Background()
	w := seed(t, r)

	// Both contacts dangle; the first label in order is reported.
	w.employee.ContactInfo = map[string]entity.Contact{
		"zz": entity.Address(uuid.MustParse("33333333-3333-7333-8333-333333333333"), false),
		"aa": entity.Address(uuid.MustParse("44444444-4444-7444-8444-444444444444"), false),
	}
	require.NoError(t, r.UpdateEmployee(ctx, w.employee))

	for range 3 {
		_, err := r.EmployeeView(ctx, w.employee)
		var re *records.Error
		require.ErrorAs(t, err, &re)
		assert.Equal(t, uuid.MustParse("44444444-4444-7444-8444-444444444444"), re.ID)
	}
}
