package eventfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/AlekSi/pointer"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ics "github.com/pmcal/golang-ical"
)

const weeklyYAML = `
uid: weekly@proton.me
start: 2024-06-10T15:00:00
end: 2024-06-10T16:00:00
start_timezone: America/New_York
sequence: 2
created: 2024-05-01T08:00:00Z
title: "1:1"
status: tentative
organizer:
  email: alice@proton.me
  name: Alice
participants:
  - email: bob@proton.me
    name: Bob
    role: opt-participant
    status: accepted
    token: tok-bob
shared_event_id: evt-1
recurrence:
  frequency: weekly
  interval: 2
  count: 5
  weekdays: [mo, Wednesday]
recurrence_id:
  date: 2024-06-24T15:00:00
exdates:
  - date: 2024-07-08T15:00:00
  - date: 2024-07-22T21:00:00
    timezone: Europe/Zurich
`

func TestParseRequiresStart(t *testing.T) {
	_, err := Parse([]byte("uid: x@proton.me\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("start: [oops"))
	assert.Error(t, err)
}

func TestEvent(t *testing.T) {
	f, err := Parse([]byte(weeklyYAML))
	require.NoError(t, err)

	wkst := time.Monday
	e, err := f.Event("Europe/Zurich", &wkst)
	require.NoError(t, err)

	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	zurich, err := time.LoadLocation("Europe/Zurich")
	require.NoError(t, err)

	assert.Equal(t, "weekly@proton.me", e.ICSUID)
	assert.True(t, e.StartDate.Equal(time.Date(2024, 6, 10, 15, 0, 0, 0, newYork)))
	assert.True(t, e.EndDate.Equal(time.Date(2024, 6, 10, 16, 0, 0, 0, newYork)))
	assert.Equal(t, "America/New_York", e.StartTimeZoneID)
	assert.Equal(t, "America/New_York", e.EndTimeZoneID)
	assert.Equal(t, time.Monday, *e.RecommendedWKST)
	assert.Equal(t, 2, e.Sequence)
	assert.True(t, e.CreatedTime.Equal(time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)))
	assert.Equal(t, "1:1", pointer.GetString(e.Title))
	assert.Nil(t, e.Notes)
	require.NotNil(t, e.Status)
	assert.Equal(t, ics.EventStatusTentative, *e.Status)
	assert.Equal(t, "evt-1", pointer.GetString(e.SharedEventID))

	assert.Equal(t, &ics.Organizer{Email: "alice@proton.me", CommonName: "Alice"}, e.Organizer)
	assert.Equal(t, []ics.Participant{{
		Email:      "bob@proton.me",
		CommonName: "Bob",
		Role:       ics.ParticipationRoleOptParticipant,
		Status:     ics.ParticipationStatusAccepted,
		Token:      "tok-bob",
	}}, e.Participants)

	want := ics.Recurrence{
		DoesRepeat:     true,
		Frequency:      ics.FrequencyWeekly,
		Interval:       2,
		EndsAfterCount: pointer.ToInt(5),
		WeekDays:       []time.Weekday{time.Monday, time.Wednesday},
	}
	if diff := cmp.Diff(want, e.Recurrence); diff != "" {
		t.Error(diff)
	}

	require.NotNil(t, e.RecurrenceID)
	assert.True(t, e.RecurrenceID.Equal(time.Date(2024, 6, 24, 15, 0, 0, 0, newYork)))
	assert.Equal(t, "America/New_York", *e.RecurrenceIDTimeZoneID)
	assert.False(t, *e.RecurrenceIDIsAllDay)

	require.Len(t, e.ExDates, 2)
	assert.True(t, e.ExDates[0].Equal(time.Date(2024, 7, 8, 15, 0, 0, 0, newYork)))
	assert.True(t, e.ExDates[1].Equal(time.Date(2024, 7, 22, 21, 0, 0, 0, zurich)))
	assert.Equal(t, []string{"America/New_York", "Europe/Zurich"}, e.ExDateTimeZoneIDs)
}

func TestEventAllDayDefaults(t *testing.T) {
	f, err := Parse([]byte("start: 2024-12-24\nend: 2024-12-25\nall_day: true\nrecurrence:\n  frequency: yearly\n"))
	require.NoError(t, err)

	e, err := f.Event("", nil)
	require.NoError(t, err)

	assert.NotEmpty(t, e.ICSUID)
	assert.True(t, e.IsAllDay)
	assert.Equal(t, time.Date(2024, 12, 24, 0, 0, 0, 0, time.UTC), e.StartDate)
	assert.Equal(t, time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC), e.EndDate)
	assert.Equal(t, "UTC", e.StartTimeZoneID)
	assert.Nil(t, e.RecommendedWKST)
	assert.Nil(t, e.Status)
	assert.Nil(t, e.Organizer)
	assert.True(t, e.Recurrence.EndsNever)
	assert.Equal(t, ics.FrequencyYearly, e.Recurrence.Frequency)
}

func TestEventWithoutEndStartsAndEndsTogether(t *testing.T) {
	f, err := Parse([]byte("start: 2024-06-03T09:00:00Z\n"))
	require.NoError(t, err)

	e, err := f.Event("Europe/Zurich", nil)
	require.NoError(t, err)
	assert.True(t, e.StartDate.Equal(e.EndDate))
	assert.Equal(t, "Europe/Zurich", e.StartTimeZoneID)
}

func TestEventMonthlyLast(t *testing.T) {
	f, err := Parse([]byte(`
start: 2024-01-31T10:00:00Z
recurrence:
  frequency: monthly
  until: 2024-12-31T10:00:00Z
  month_ordinal: -1
  month_weekday: fr
`))
	require.NoError(t, err)

	e, err := f.Event("UTC", nil)
	require.NoError(t, err)
	require.NotNil(t, e.Recurrence.MonthOnIth)
	assert.Equal(t, ics.MonthOrdinalLast, *e.Recurrence.MonthOnIth)
	assert.Equal(t, time.Friday, *e.Recurrence.MonthOnWeekDay)
	assert.False(t, e.Recurrence.EndsNever)
	assert.True(t, e.Recurrence.EndsOn.Equal(time.Date(2024, 12, 31, 10, 0, 0, 0, time.UTC)))
}

func TestEventAllDayUntilKeepsLastDayInStartZone(t *testing.T) {
	f, err := Parse([]byte(`
start: 2024-03-01
end: 2024-03-02
all_day: true
start_timezone: America/New_York
recurrence:
  frequency: daily
  until: 2024-03-10
`))
	require.NoError(t, err)

	e, err := f.Event("UTC", nil)
	require.NoError(t, err)
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	require.NotNil(t, e.Recurrence.EndsOn)
	assert.True(t, e.Recurrence.EndsOn.Equal(time.Date(2024, 3, 10, 23, 59, 59, 0, newYork)), e.Recurrence.EndsOn)

	ve, err := ics.NewVEventWriter(e).Build(ics.AllParts)
	require.NoError(t, err)
	rule := ve.GetProperty(ics.ComponentPropertyRrule)
	require.NotNil(t, rule)
	assert.Equal(t, "FREQ=DAILY;UNTIL=20240310", rule.Value)
	assert.Equal(t, "20240301", ve.GetProperty(ics.ComponentPropertyDtStart).Value)
}

func TestEventErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown zone", "start: 2024-06-03T09:00:00\nstart_timezone: Nowhere/City\n"},
		{"bad start", "start: tomorrow\n"},
		{"bad end", "start: 2024-06-03T09:00:00Z\nend: later\n"},
		{"bad frequency", "start: 2024-06-03T09:00:00Z\nrecurrence:\n  frequency: hourly\n"},
		{"bad weekday", "start: 2024-06-03T09:00:00Z\nrecurrence:\n  frequency: weekly\n  weekdays: [funday]\n"},
		{"bad exdate", "start: 2024-06-03T09:00:00Z\nexdates:\n  - date: soon\n"},
		{"bad all-day date", "start: 24.12.2024\nall_day: true\n"},
		{"unknown role", "start: 2024-06-03T09:00:00Z\nparticipants:\n  - email: bob@proton.me\n    role: foo\n"},
		{"unknown participation status", "start: 2024-06-03T09:00:00Z\nparticipants:\n  - email: bob@proton.me\n    status: maybe\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f, err := Parse([]byte(test.yaml))
			require.NoError(t, err)
			_, err = f.Event("UTC", nil)
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "event.yaml")
	require.NoError(t, os.WriteFile(path, []byte(weeklyYAML), 0o600))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "weekly@proton.me", f.UID)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
