package schedule

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crown_transport/internal/calendar"
)

func uintPtr(v uint) *uint { return &v }

func oakJob() Job {
	return Job{
		ID:      7,
		RouteNo: "R12",
		Stops: []Stop{
			{Location: "12 Oak St", Students: []uint{1}, TimeAM: "08:00", TimePM: "15:50"},
			{Location: "Elm Primary", IsSchool: true, SchoolID: uintPtr(3), Students: []uint{1}, TimeAM: "08:40", TimePM: "15:30"},
		},
		OperatingDates: []string{"2024-03-04", "2024-03-05"},
		Driver:         Driver{ID: 1, Name: "Pat"},
		Vehicle:        Vehicle{ID: 1, Registration: "AB12 CDE"},
	}
}

func mustRange(t *testing.T, start, end string) calendar.Range {
	t.Helper()
	r, err := calendar.NewRange(start, end)
	require.NoError(t, err)
	return r
}

func TestExpand_TwoDatesFourLegs(t *testing.T) {
	events := Expand([]Job{oakJob()}, mustRange(t, "2024-03-01", "2024-03-31"))
	require.Len(t, events, 4)

	am := events[0]
	assert.Equal(t, LegAM, am.Leg)
	assert.Equal(t, "12 Oak St", am.From)
	assert.Equal(t, "Elm Primary", am.To)
	assert.Equal(t, "08:00", am.PickupTime)

	pm := events[1]
	assert.Equal(t, LegPM, pm.Leg)
	assert.Equal(t, "Elm Primary", pm.From)
	assert.Equal(t, "12 Oak St", pm.To)
	assert.Equal(t, "15:30", pm.PickupTime)
}

func TestExpand_RangeIntersection(t *testing.T) {
	job := oakJob()
	job.OperatingDates = append(job.OperatingDates, "not-a-date", "2024-03-05", "2024-04-01")
	events := Expand([]Job{job}, mustRange(t, "2024-03-05", "2024-03-05"))
	require.Len(t, events, 2)
	for _, ev := range events {
		assert.Equal(t, "2024-03-05", ev.Date)
	}
}

func TestExpand_SkipsAsymmetricStudents(t *testing.T) {
	job := oakJob()
	job.Stops[0].Students = []uint{1, 2} // 2 has no school stop
	job.Stops = append(job.Stops, Stop{Location: "Other School", IsSchool: true, Students: []uint{9}})
	events := Expand([]Job{job}, mustRange(t, "2024-03-04", "2024-03-04"))
	require.Len(t, events, 2)
	for _, ev := range events {
		assert.Equal(t, uint(1), ev.StudentID)
	}
}

func TestExpand_NeverSameFromTo(t *testing.T) {
	job := oakJob()
	job.Stops = append(job.Stops,
		Stop{Location: "Elm Primary", Students: []uint{4}, TimeAM: "08:10"},
		Stop{Location: "Elm Primary", IsSchool: true, Students: []uint{4}, TimePM: "15:30"},
	)
	events := Expand([]Job{job}, mustRange(t, "2024-03-04", "2024-03-05"))
	for _, ev := range events {
		assert.NotEqual(t, ev.From, ev.To)
		assert.NotEqual(t, uint(4), ev.StudentID)
	}
	assert.Len(t, events, 4)
}

func TestExpand_LocationsComparedExactly(t *testing.T) {
	job := oakJob()
	job.Stops = append(job.Stops,
		Stop{Location: "Elm Primary ", Students: []uint{4}, TimeAM: "08:10"},
		Stop{Location: "elm primary", IsSchool: true, Students: []uint{4}, TimePM: "15:30"},
	)
	events := Expand([]Job{job}, mustRange(t, "2024-03-04", "2024-03-04"))
	var legs int
	for _, ev := range events {
		if ev.StudentID == 4 {
			legs++
		}
	}
	assert.Equal(t, 2, legs)
}

func TestResolveOverlay(t *testing.T) {
	job := oakJob()
	job.TemporaryAssignments = []TemporaryAssignment{
		{StartDate: "2024-03-01", EndDate: "2024-03-10", Driver: Driver{ID: 2, Name: "Sam"}, TimeOfDay: Morning},
		{Date: "2024-03-05", Driver: Driver{ID: 3, Name: "Lee"}, TimeOfDay: Both},
		{StartDate: "bad", EndDate: "2024-04-10", Driver: Driver{ID: 4}},
	}

	got := ResolveOverlay(&job, calendar.MustParseDate("2024-03-05"))
	assert.True(t, got.Temporary)
	assert.Equal(t, uint(2), got.Driver.ID, "first declared match wins")
	assert.Equal(t, Morning, got.TimeOfDay)

	got = ResolveOverlay(&job, calendar.MustParseDate("2024-04-02"))
	assert.False(t, got.Temporary)
	assert.Equal(t, "Pat", got.Driver.Name)
}

func TestClassify(t *testing.T) {
	leg, ok := Classify(SpecialService{SpecialTime: "07:45"})
	assert.True(t, ok)
	assert.Equal(t, LegAM, leg)

	leg, ok = Classify(SpecialService{SpecialTime: "12:00"})
	assert.True(t, ok)
	assert.Equal(t, LegPM, leg)

	_, ok = Classify(SpecialService{})
	assert.False(t, ok)
	_, ok = Classify(SpecialService{SpecialTime: "late"})
	assert.False(t, ok)
}

func TestBuildPickupList_OverlaysAndOrder(t *testing.T) {
	job := oakJob()
	job.Stops[0].Students = []uint{1, 2}
	job.Stops[1].Students = []uint{1, 2}
	job.Stops = append([]Stop{{Location: "3 Ash Rd", Students: []uint{5}, TimeAM: "07:30"}}, job.Stops...)
	job.Stops[2].Students = append(job.Stops[2].Students, 5)
	job.TemporaryAssignments = []TemporaryAssignment{
		{Date: "2024-03-05", Driver: Driver{ID: 9, Name: "Cover"}, Vehicle: Vehicle{ID: 9}, TimeOfDay: Evening},
	}
	job.SchoolHolidays = []SchoolHoliday{{Date: "2024-03-05", SchoolID: 3}, {Date: "2024-03-05", SchoolID: 8}}
	job.SpecialServices = []SpecialService{
		{StudentID: 2, DayOfWeek: "Monday", SpecialTime: "07:15", AdditionalCharge: decimal.NewFromInt(5)},
		{StudentID: 2, DayOfWeek: "monday", SpecialTime: "07:20", AdditionalCharge: decimal.NewFromInt(5)},
		{StudentID: 1, DayOfWeek: "monday", SpecialTime: "13:00", AdditionalCharge: decimal.NewFromInt(5)},
	}

	events := BuildPickupList([]Job{job}, mustRange(t, "2024-03-04", "2024-03-05"))
	require.Len(t, events, 12)

	// 2024-03-04 AM: student 5 at 07:30 then 1 and 2 at 08:00.
	assert.Equal(t, "2024-03-04", events[0].Date)
	assert.Equal(t, LegAM, events[0].Leg)
	assert.Equal(t, uint(5), events[0].StudentID)
	for i := 0; i < 3; i++ {
		assert.Equal(t, LegAM, events[i].Leg)
	}
	for i := 3; i < 6; i++ {
		assert.Equal(t, LegPM, events[i].Leg)
		assert.Equal(t, "2024-03-04", events[i].Date)
	}

	var student2AM, student1PM PickupEvent
	for _, ev := range events[:6] {
		if ev.StudentID == 2 && ev.Leg == LegAM {
			student2AM = ev
		}
		if ev.StudentID == 1 && ev.Leg == LegPM {
			student1PM = ev
		}
	}
	assert.Equal(t, "07:15", student2AM.SpecialPickupTime, "first special time wins")
	assert.Len(t, student2AM.SpecialServices, 2)
	assert.Equal(t, "13:00", student1PM.SpecialPickupTime)
	assert.False(t, student2AM.Assignment.Temporary)

	for _, ev := range events[6:] {
		assert.Equal(t, "2024-03-05", ev.Date)
		assert.True(t, ev.Assignment.Temporary, "overlay applies to both legs")
		assert.Equal(t, uint(9), ev.Assignment.Driver.ID)
		require.Len(t, ev.SchoolHolidays, 1)
		assert.Equal(t, uint(3), ev.SchoolHolidays[0].SchoolID)
		assert.Empty(t, ev.SpecialServices)
	}
}

func TestSortPickups_MalformedTimesLast(t *testing.T) {
	events := []PickupEvent{
		{Date: "2024-03-04", Leg: LegAM, PickupTime: "?"},
		{Date: "2024-03-04", Leg: LegPM, PickupTime: "09:00"},
		{Date: "2024-03-04", Leg: LegAM, PickupTime: "10:00"},
		{Date: "2024-03-03", Leg: LegPM, PickupTime: "16:00"},
	}
	SortPickups(events)
	assert.Equal(t, "2024-03-03", events[0].Date)
	assert.Equal(t, "10:00", events[1].PickupTime)
	assert.Equal(t, "?", events[2].PickupTime)
	assert.Equal(t, LegPM, events[3].Leg)
}
