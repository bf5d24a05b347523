package store

import (
	"testing"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"crown_transport/internal/models"
	"crown_transport/internal/schedule"
)

func TestToJob(t *testing.T) {
	school := uint(4)
	present := false
	m := models.Job{
		Model:          gorm.Model{ID: 11},
		Driver:         models.Driver{Model: gorm.Model{ID: 2}, Name: "Pat"},
		Vehicle:        models.Vehicle{Model: gorm.Model{ID: 3}, VehicleRegistration: "AB12 CDE"},
		OperatingDates: pq.StringArray{"2024-03-04"},
		ContractPrice:  decimal.NewNullDecimal(decimal.NewFromInt(80)),
		IsPANeeded:     true,
		Stops: []models.Stop{
			{Location: "12 Oak St", Students: pq.Int64Array{1, 0, 2}, TimeAM: "08:00"},
			{Location: "Elm Primary", IsSchool: true, SchoolID: &school, Students: pq.Int64Array{1, 2}, TimePM: "15:30"},
		},
		TemporaryAssignments: []models.TemporaryAssignment{
			{Date: "2024-03-04", Driver: models.Driver{Model: gorm.Model{ID: 9}, Name: "Cover"}, TimeOfDay: "EVENING"},
		},
		SpecialServices: []models.SpecialService{{StudentID: 1, DayOfWeek: "monday", AdditionalCharge: decimal.NewFromInt(5)}},
		Attendance:      []models.Attendance{{StudentID: 1, Date: "2024-03-04", MorningAttended: true, Present: &present}},
	}

	job := toJob(&m, "R12")
	assert.Equal(t, uint(11), job.ID)
	assert.Equal(t, "R12", job.RouteNo)
	assert.Equal(t, "Pat", job.Driver.Name)
	assert.Equal(t, "AB12 CDE", job.Vehicle.Registration)
	require.Len(t, job.Stops, 2)
	assert.Equal(t, []uint{1, 2}, job.Stops[0].Students)
	assert.Equal(t, &school, job.Stops[1].SchoolID)
	require.Len(t, job.TemporaryAssignments, 1)
	assert.Equal(t, schedule.Evening, job.TemporaryAssignments[0].TimeOfDay)
	assert.Equal(t, uint(9), job.TemporaryAssignments[0].Driver.ID)
	assert.True(t, job.Pricing.ContractPrice.Valid)
	assert.True(t, job.Pricing.IsPANeeded)
	require.Len(t, job.Attendance, 1)
	assert.False(t, *job.Attendance[0].Present)
}

func TestSplitAddress(t *testing.T) {
	assert.Equal(t, []string{"1 High St", "Leeds"}, splitAddress("1 High St\n\n Leeds \n"))
	assert.Nil(t, splitAddress(""))
}
