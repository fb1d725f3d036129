// Package eventfile reads the YAML event descriptions given to icswriter.
package eventfile

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/AlekSi/pointer"
	"gopkg.in/yaml.v3"

	ics "github.com/pmcal/golang-ical"
)

// File is one event. Times are RFC 3339 text, or local "2006-01-02T15:04:05"
// text in the given time zone, or "2006-01-02" dates for all-day events.
type File struct {
	UID           string `yaml:"uid"`
	Start         string `yaml:"start"`
	End           string `yaml:"end"`
	StartTimezone string `yaml:"start_timezone"`
	EndTimezone   string `yaml:"end_timezone"`
	AllDay        bool   `yaml:"all_day"`
	Sequence      int    `yaml:"sequence"`
	Created       string `yaml:"created"`

	Title    *string `yaml:"title"`
	Notes    *string `yaml:"notes"`
	Location *string `yaml:"location"`
	Status   string  `yaml:"status"`

	Organizer    *Person  `yaml:"organizer"`
	Participants []Person `yaml:"participants"`

	ProtonToProton bool    `yaml:"proton_to_proton"`
	SharedEventID  *string `yaml:"shared_event_id"`

	Recurrence   *Recurrence  `yaml:"recurrence"`
	RecurrenceID *Occurrence  `yaml:"recurrence_id"`
	ExDates      []Occurrence `yaml:"exdates"`
}

type Person struct {
	Email  string `yaml:"email"`
	Name   string `yaml:"name"`
	Role   string `yaml:"role"`
	Status string `yaml:"status"`
	Token  string `yaml:"token"`
}

type Recurrence struct {
	// Frequency is daily, weekly, monthly or yearly.
	Frequency string   `yaml:"frequency"`
	Interval  int      `yaml:"interval"`
	Count     *int     `yaml:"count"`
	Until     string   `yaml:"until"`
	Weekdays  []string `yaml:"weekdays"`
	// MonthOrdinal is 1 to 4, or -1 for the last.
	MonthOrdinal *int   `yaml:"month_ordinal"`
	MonthWeekday string `yaml:"month_weekday"`
}

type Occurrence struct {
	Date     string `yaml:"date"`
	Timezone string `yaml:"timezone"`
	AllDay   bool   `yaml:"all_day"`
}

func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse event: %w", err)
	}
	if f.Start == "" {
		return nil, errors.New("parse event: start is required")
	}
	return &f, nil
}

// Event converts f. Zones left empty in the file default to defaultTimezone,
// and wkst becomes the recurrence WKST hint.
func (f *File) Event(defaultTimezone string, wkst *time.Weekday) (*ics.Event, error) {
	startTZ := firstNonEmpty(f.StartTimezone, defaultTimezone, "UTC")
	endTZ := firstNonEmpty(f.EndTimezone, startTZ)
	startLoc, err := time.LoadLocation(startTZ)
	if err != nil {
		return nil, fmt.Errorf("start timezone: %w", err)
	}
	endLoc, err := time.LoadLocation(endTZ)
	if err != nil {
		return nil, fmt.Errorf("end timezone: %w", err)
	}

	start, err := parseTime(f.Start, startLoc, f.AllDay)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	end := start
	if f.End != "" {
		if end, err = parseTime(f.End, endLoc, f.AllDay); err != nil {
			return nil, fmt.Errorf("end: %w", err)
		}
	}

	e := &ics.Event{
		ICSUID:                     f.UID,
		StartDate:                  start,
		EndDate:                    end,
		StartTimeZone:              startLoc,
		EndTimeZone:                endLoc,
		StartTimeZoneID:            startTZ,
		EndTimeZoneID:              endTZ,
		IsAllDay:                   f.AllDay,
		RecommendedWKST:            wkst,
		Sequence:                   f.Sequence,
		Title:                      f.Title,
		Notes:                      f.Notes,
		Location:                   f.Location,
		IsProtonToProtonInvitation: f.ProtonToProton,
		SharedEventID:              f.SharedEventID,
		CreatedTime:                time.Now(),
	}
	if e.ICSUID == "" {
		e.ICSUID = ics.NewUID()
	}
	if f.Created != "" {
		if e.CreatedTime, err = parseTime(f.Created, time.UTC, false); err != nil {
			return nil, fmt.Errorf("created: %w", err)
		}
	}
	if f.Status != "" {
		status := ics.EventStatus(strings.ToUpper(f.Status))
		e.Status = &status
	}
	if f.Organizer != nil {
		e.Organizer = &ics.Organizer{Email: f.Organizer.Email, CommonName: f.Organizer.Name}
	}
	for i, p := range f.Participants {
		role := ics.ParticipationRole(strings.ToUpper(strings.TrimSpace(p.Role)))
		if role != "" && !roles[role] {
			return nil, fmt.Errorf("participant %d: unknown role %q", i, p.Role)
		}
		status := ics.ParticipationStatus(strings.ToUpper(strings.TrimSpace(p.Status)))
		if status != "" && !participationStatuses[status] {
			return nil, fmt.Errorf("participant %d: unknown status %q", i, p.Status)
		}
		e.Participants = append(e.Participants, ics.Participant{
			Email:      p.Email,
			CommonName: p.Name,
			Role:       role,
			Status:     status,
			Token:      p.Token,
		})
	}

	if f.Recurrence != nil {
		if e.Recurrence, err = f.Recurrence.recurrence(startLoc, f.AllDay); err != nil {
			return nil, fmt.Errorf("recurrence: %w", err)
		}
	}

	if o := f.RecurrenceID; o != nil {
		tz := firstNonEmpty(o.Timezone, startTZ)
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("recurrence id timezone: %w", err)
		}
		t, err := parseTime(o.Date, loc, o.AllDay)
		if err != nil {
			return nil, fmt.Errorf("recurrence id: %w", err)
		}
		e.RecurrenceID = &t
		e.RecurrenceIDTimeZoneID = pointer.ToString(tz)
		e.RecurrenceIDIsAllDay = pointer.ToBool(o.AllDay)
	}

	if len(f.ExDates) > 0 {
		e.ExDates = make([]time.Time, 0, len(f.ExDates))
		e.ExDateTimeZoneIDs = make([]string, 0, len(f.ExDates))
		for i, o := range f.ExDates {
			tz := firstNonEmpty(o.Timezone, startTZ)
			loc, err := time.LoadLocation(tz)
			if err != nil {
				return nil, fmt.Errorf("exdate %d timezone: %w", i, err)
			}
			t, err := parseTime(o.Date, loc, f.AllDay)
			if err != nil {
				return nil, fmt.Errorf("exdate %d: %w", i, err)
			}
			e.ExDates = append(e.ExDates, t)
			e.ExDateTimeZoneIDs = append(e.ExDateTimeZoneIDs, tz)
		}
	}
	return e, nil
}

var frequencies = map[string]ics.Frequency{
	"daily":   ics.FrequencyDaily,
	"weekly":  ics.FrequencyWeekly,
	"monthly": ics.FrequencyMonthly,
	"yearly":  ics.FrequencyYearly,
}

var roles = map[ics.ParticipationRole]bool{
	ics.ParticipationRoleChair:          true,
	ics.ParticipationRoleReqParticipant: true,
	ics.ParticipationRoleOptParticipant: true,
	ics.ParticipationRoleNonParticipant: true,
}

var participationStatuses = map[ics.ParticipationStatus]bool{
	ics.ParticipationStatusNeedsAction: true,
	ics.ParticipationStatusAccepted:    true,
	ics.ParticipationStatusDeclined:    true,
	ics.ParticipationStatusTentative:   true,
	ics.ParticipationStatusDelegated:   true,
}

var weekdays = map[string]time.Weekday{
	"su": time.Sunday, "sunday": time.Sunday,
	"mo": time.Monday, "monday": time.Monday,
	"tu": time.Tuesday, "tuesday": time.Tuesday,
	"we": time.Wednesday, "wednesday": time.Wednesday,
	"th": time.Thursday, "thursday": time.Thursday,
	"fr": time.Friday, "friday": time.Friday,
	"sa": time.Saturday, "saturday": time.Saturday,
}

func parseWeekday(s string) (time.Weekday, error) {
	d, ok := weekdays[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("unknown weekday %q", s)
	}
	return d, nil
}

func (r *Recurrence) recurrence(loc *time.Location, allDay bool) (ics.Recurrence, error) {
	freq, ok := frequencies[strings.ToLower(r.Frequency)]
	if !ok {
		return ics.Recurrence{}, fmt.Errorf("unknown frequency %q", r.Frequency)
	}
	rec := ics.Recurrence{
		DoesRepeat:     true,
		Frequency:      freq,
		Interval:       r.Interval,
		EndsNever:      r.Count == nil && r.Until == "",
		EndsAfterCount: r.Count,
	}
	if r.Until != "" {
		until, err := parseTime(r.Until, loc, allDay)
		if err != nil {
			return ics.Recurrence{}, fmt.Errorf("until: %w", err)
		}
		if allDay {
			// The series ends with the last second of that day in the start zone.
			y, m, d := until.Date()
			until = time.Date(y, m, d, 23, 59, 59, 0, loc)
		}
		rec.EndsOn = &until
	}
	for _, s := range r.Weekdays {
		d, err := parseWeekday(s)
		if err != nil {
			return ics.Recurrence{}, err
		}
		rec.WeekDays = append(rec.WeekDays, d)
	}
	if r.MonthOrdinal != nil {
		ord := ics.MonthOrdinal(*r.MonthOrdinal)
		rec.MonthOnIth = &ord
	}
	if r.MonthWeekday != "" {
		d, err := parseWeekday(r.MonthWeekday)
		if err != nil {
			return ics.Recurrence{}, err
		}
		rec.MonthOnWeekDay = &d
	}
	return rec, nil
}

// parseTime reads RFC 3339 text, local date-time text in loc or, for all-day
// values, a date which becomes midnight UTC of that day.
func parseTime(s string, loc *time.Location, allDay bool) (time.Time, error) {
	s = strings.TrimSpace(s)
	if allDay {
		d, err := time.Parse(time.DateOnly, s[:min(len(s), len(time.DateOnly))])
		if err != nil {
			return time.Time{}, err
		}
		return d, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02T15:04:05", s, loc)
}

func firstNonEmpty(s ...string) string {
	for _, v := range s {
		if v != "" {
			return v
		}
	}
	return ""
}
