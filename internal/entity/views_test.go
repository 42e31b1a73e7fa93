package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestLocationView_String(t *testing.T) {
	earth := &LocationView{ID: uuid.New(), Name: "Earth"}
	usa := &LocationView{ID: uuid.New(), Name: "USA", Outer: earth}
	arizona := &LocationView{ID: uuid.New(), Name: "Arizona", Outer: usa}
	phoenix := &LocationView{ID: uuid.New(), Name: "Phoenix", Outer: arizona}
	street := LocationView{ID: uuid.New(), Name: "1337 Some Street", Outer: phoenix}

	assert.Equal(t, "1337 Some Street, Phoenix, Arizona, USA, Earth", street.String())
	assert.Equal(t, "Earth", earth.String())
}

func TestLocationView_Location(t *testing.T) {
	earth := &LocationView{ID: uuid.New(), Name: "Earth"}
	usa := LocationView{ID: uuid.New(), Name: "USA", Outer: earth}

	l := usa.Location()
	assert.Equal(t, usa.ID, l.ID)
	if assert.NotNil(t, l.OuterID) {
		assert.Equal(t, earth.ID, *l.OuterID)
	}
	assert.Nil(t, earth.Location().OuterID)
}

func TestJobView_Job(t *testing.T) {
	employee := EmployeeView{ID: uuid.New()}
	view := JobView{
		ID:       uuid.New(),
		Client:   OrganizationView{ID: uuid.New(), Name: "Big Old Test"},
		DateOpen: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Timesheets: []TimesheetView{{
			Employee:  employee,
			TimeBegin: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			WorkNotes: "notes",
		}},
	}

	job := view.Job()
	assert.Equal(t, view.ID, job.ID)
	assert.Equal(t, view.Client.ID, job.ClientID)
	assert.Len(t, job.Timesheets, 1)
	assert.Equal(t, employee.ID, job.Timesheets[0].EmployeeID)
}

func TestNormalize(t *testing.T) {
	composed := "M\u0107testerson"
	decomposed := "Mc\u0301testerson"

	assert.NotEqual(t, composed, decomposed)
	assert.Equal(t, composed, Normalize(decomposed))
	assert.Equal(t, composed, Person{Name: decomposed}.Normalized().Name)
}

func TestJob_NormalizedDoesNotAlias(t *testing.T) {
	local := time.FixedZone("MST", -7*3600)
	job := Job{
		DateOpen:   time.Date(2024, 1, 1, 8, 0, 0, 999, local),
		Timesheets: []Timesheet{{TimeBegin: time.Date(2024, 1, 1, 9, 0, 0, 0, local)}},
	}

	n := job.Normalized()
	assert.Equal(t, time.UTC, n.DateOpen.Location())
	assert.Zero(t, n.DateOpen.Nanosecond())

	n.Timesheets[0].WorkNotes = "changed"
	assert.Empty(t, job.Timesheets[0].WorkNotes)
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{
		"location":  KindLocation,
		"Locations": KindLocation,
		"people":    KindPerson,
		"org":       KindOrganization,
		"job":       KindJob,
		"employee":  KindEmployee,
	} {
		got, err := ParseKind(in)
		assert.NoError(t, err)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseKind("invoice")
	assert.Error(t, err)
}

func TestContact_Validate(t *testing.T) {
	assert.NoError(t, Address(uuid.New(), true).Validate())
	assert.NoError(t, Email("foo@bar.io", false).Validate())
	assert.NoError(t, Phone("603-555-1234", false).Validate())

	assert.Error(t, Contact{Kind: ContactAddress}.Validate())
	assert.Error(t, Contact{Kind: ContactEmail}.Validate())
	assert.Error(t, Contact{Kind: "fax"}.Validate())
}
