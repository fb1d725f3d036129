package ics

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

type Frequency int

const (
	FrequencyDaily Frequency = iota
	FrequencyWeekly
	FrequencyMonthly
	FrequencyYearly
)

func (f Frequency) String() string {
	switch f {
	case FrequencyDaily:
		return "DAILY"
	case FrequencyWeekly:
		return "WEEKLY"
	case FrequencyMonthly:
		return "MONTHLY"
	case FrequencyYearly:
		return "YEARLY"
	}
	return "Frequency(" + strconv.Itoa(int(f)) + ")"
}

// MonthOrdinal selects a weekday occurrence inside a month, as in "the third
// Tuesday" or "the last Friday".
type MonthOrdinal int

const (
	MonthOrdinalFirst  MonthOrdinal = 1
	MonthOrdinalSecond MonthOrdinal = 2
	MonthOrdinalThird  MonthOrdinal = 3
	MonthOrdinalFourth MonthOrdinal = 4
	MonthOrdinalLast   MonthOrdinal = -1
)

// Recurrence describes how an event repeats. The zero value does not repeat.
//
// The end of the series is EndsAfterCount when set, else EndsOn, unless
// EndsNever is true. WeekDays takes precedence over the monthly
// MonthOnIth/MonthOnWeekDay pair. MonthOnIth alone is only meaningful as
// MonthOrdinalLast on a monthly rule and selects the last day of the month.
type Recurrence struct {
	DoesRepeat bool
	Frequency  Frequency
	// Interval below 2 means every period.
	Interval int

	EndsNever      bool
	EndsAfterCount *int
	EndsOn         *time.Time

	WeekDays       []time.Weekday
	MonthOnIth     *MonthOrdinal
	MonthOnWeekDay *time.Weekday
}

var errNoRecurrence = errors.New("event does not repeat")

var weekdayText = [...]string{
	time.Sunday:    "SU",
	time.Monday:    "MO",
	time.Tuesday:   "TU",
	time.Wednesday: "WE",
	time.Thursday:  "TH",
	time.Friday:    "FR",
	time.Saturday:  "SA",
}

func weekdayString(d time.Weekday) (string, error) {
	if d < time.Sunday || d > time.Saturday {
		return "", fmt.Errorf("invalid weekday %d", int(d))
	}
	return weekdayText[d], nil
}

// recurrenceRule renders r as the value of an RRULE property. UNTIL is a UTC
// date-time, or for all-day events the date of EndsOn in the start zone. The
// result is parsed back with rrule-go and any rule it refuses is an error.
func recurrenceRule(r Recurrence, startLoc *time.Location, isAllDay bool, wkst *time.Weekday) (string, error) {
	if !r.DoesRepeat {
		return "", errNoRecurrence
	}
	if r.Frequency < FrequencyDaily || r.Frequency > FrequencyYearly {
		return "", fmt.Errorf("unsupported frequency %v", r.Frequency)
	}
	parts := []string{"FREQ=" + r.Frequency.String()}

	if !r.EndsNever {
		switch {
		case r.EndsAfterCount != nil:
			parts = append(parts, "COUNT="+strconv.Itoa(*r.EndsAfterCount))
		case r.EndsOn != nil:
			if isAllDay {
				if startLoc == nil {
					startLoc = time.UTC
				}
				parts = append(parts, "UNTIL="+r.EndsOn.In(startLoc).Format(icalDateFormatLocal))
			} else {
				parts = append(parts, "UNTIL="+zuluTimestamp(*r.EndsOn))
			}
		}
	}

	if r.Interval > 1 {
		parts = append(parts, "INTERVAL="+strconv.Itoa(r.Interval))
	}

	switch {
	case r.WeekDays != nil:
		days := make([]string, 0, len(r.WeekDays))
		for _, d := range r.WeekDays {
			s, err := weekdayString(d)
			if err != nil {
				return "", err
			}
			days = append(days, s)
		}
		parts = append(parts, "BYDAY="+strings.Join(days, ","))
	case r.MonthOnIth != nil && r.MonthOnWeekDay != nil:
		s, err := weekdayString(*r.MonthOnWeekDay)
		if err != nil {
			return "", err
		}
		parts = append(parts, "BYDAY="+s, "BYSETPOS="+strconv.Itoa(int(*r.MonthOnIth)))
	case r.MonthOnIth != nil && *r.MonthOnIth == MonthOrdinalLast && r.Frequency == FrequencyMonthly:
		parts = append(parts, "BYMONTHDAY="+strconv.Itoa(int(MonthOrdinalLast)))
	}

	if wkst != nil {
		s, err := weekdayString(*wkst)
		if err != nil {
			return "", err
		}
		parts = append(parts, "WKST="+s)
	}

	value := strings.Join(parts, ";")
	opt, err := rrule.StrToROption(value)
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", value, err)
	}
	if _, err := rrule.NewRRule(*opt); err != nil {
		return "", fmt.Errorf("validate %q: %w", value, err)
	}
	return value, nil
}
