package records_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/clerk/internal/entity"
	"github.com/roach88/clerk/internal/records"
	"github.com/roach88/clerk/internal/testutil"
)

func TestTimesheet_StartStop(t *testing.T) {
	repos(t, func(t *testing.T, r *records.Repo) {
		ctx := context.Background()
		w := seed(t, r)
		clock := testutil.NewDeterministicClock(testutil.Epoch.Add(3*time.Hour), 50*time.Minute)

		job, err := r.StartTimesheet(ctx, w.job.ID, w.employee.ID, clock.Now())
		require.NoError(t, err)
		require.Len(t, job.Timesheets, 2)
		assert.True(t, job.Timesheets[1].TimeEnd.IsZero())
		assert.Equal(t, entity.DefaultWorkNotes, job.Timesheets[1].WorkNotes)

		job, err = r.StopTimesheet(ctx, w.job.ID, w.employee.ID, clock.Now(), 15*time.Minute)
		require.NoError(t, err)
		// 50 minutes rounds up to a whole hour of quarter hours.
		assert.Equal(t, time.Hour, job.Timesheets[1].Duration())

		stored, err := r.Job(ctx, w.job.ID)
		require.NoError(t, err)
		assert.Equal(t, job, stored)

		total, err := stored.Total()
		require.NoError(t, err)
		assert.Equal(t, entity.Money{Amount: 4000, Currency: "USD"}, total)
	})
}

func TestTimesheet_AlreadyOngoing(t *testing.T) {
	r, _ := testutil.NewRepo(t)
	ctx := context.Background()
	w := seed(t, r)

	_, err := r.StartTimesheet(ctx, w.job.ID, w.employee.ID, testutil.Epoch)
	require.NoError(t, err)

	_, err = r.StartTimesheet(ctx, w.job.ID, w.employee.ID, testutil.Epoch.Add(time.Minute))
	assert.ErrorIs(t, err, records.ErrTimesheetOngoing)
}

func TestTimesheet_NoneOngoing(t *testing.T) {
	r, _ := testutil.NewRepo(t)
	ctx := context.Background()
	w := seed(t, r)

	_, err := r.StopTimesheet(ctx, w.job.ID, w.employee.ID, testutil.Epoch, 0)
	assert.ErrorIs(t, err, records.ErrNoOngoingTimesheet)
}

func TestTimesheet_ClosedJob(t *testing.T) {
	r, _ := testutil.NewRepo(t)
	ctx := context.Background()
	w := seed(t, r)

	w.job.DateClose = testutil.Epoch.Add(24 * time.Hour)
	require.NoError(t, r.UpdateJob(ctx, w.job))

	_, err := r.StartTimesheet(ctx, w.job.ID, w.employee.ID, testutil.Epoch)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "closed")
}

func TestTimesheet_MissingRecords(t *testing.T) {
	r, _ := testutil.NewRepo(t)
	ctx := context.Background()
	w := seed(t, r)
	missing := uuid.MustParse("55555555-5555-7555-8555-555555555555")

	_, err := r.StartTimesheet(ctx, missing, w.employee.ID, testutil.Epoch)
	assert.True(t, records.IsNoData(err))

	_, err = r.StartTimesheet(ctx, w.job.ID, missing, testutil.Epoch)
	assert.True(t, records.IsNoData(err))

	_, err = r.StopTimesheet(ctx, missing, w.employee.ID, testutil.Epoch, 0)
	assert.True(t, records.IsNoData(err))
}
