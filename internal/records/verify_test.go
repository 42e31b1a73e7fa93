package records_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/clerk/internal/entity"
	"github.com/roach88/clerk/internal/records"
	"github.com/roach88/clerk/internal/testutil"
)

func TestVerify_Clean(t *testing.T) {
	repos(t, func(t *testing.T, r *records.Repo) {
		seed(t, r)

		report, err := r.Verify(context.Background())
		require.NoError(t, err)
		assert.True(t, report.OK())
		assert.Equal(t, map[entity.Kind]int{
			entity.KindEmployee:     1,
			entity.KindJob:          1,
			entity.KindLocation:     3,
			entity.KindOrganization: 1,
			entity.KindPerson:       1,
		}, report.Checked)
	})
}

func TestVerify_ReportsDanglingReferences(t *testing.T) {
	repos(t, func(t *testing.T, r *records.Repo) {
		ctx := context.Background()
		w := seed(t, r)

		require.NoError(t, r.DeleteLocation(ctx, w.usa.ID, false))

		report, err := r.Verify(ctx)
		require.NoError(t, err)
		require.False(t, report.OK())

		var got []entity.Kind
		for _, p := range report.Problems {
			assert.True(t, records.IsDataIntegrity(p.Err))
			got = append(got, p.Kind)
		}
		// Arizona lost its outer, the person's home address is Arizona, and
		// the employee and job embed that person.
		assert.Equal(t, []entity.Kind{
			entity.KindEmployee,
			entity.KindJob,
			entity.KindLocation,
			entity.KindPerson,
		}, got)
		assert.Equal(t, w.arizona.ID, report.Problems[2].ID)
	})
}

func TestVerify_OrderedByID(t *testing.T) {
	r, _ := testutil.NewRepo(t)
	ctx := context.Background()
	w := seed(t, r)

	for _, name := range []string{"Tempe", "Mesa", "Tucson"} {
		_, err := r.CreateInnerLocation(ctx, w.arizona, name)
		require.NoError(t, err)
	}
	require.NoError(t, r.DeleteLocation(ctx, w.arizona.ID, false))

	report, err := r.Verify(ctx)
	require.NoError(t, err)

	var ids []string
	for _, p := range report.Problems {
		if p.Kind == entity.KindLocation {
			ids = append(ids, p.ID.String())
		}
	}
	require.Len(t, ids, 3)
	assert.IsNonDecreasing(t, ids)
}
