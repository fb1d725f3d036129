package ics

import (
	"time"
)

const (
	icalTimestampFormatUtc   = "20060102T150405Z"
	icalTimestampFormatLocal = "20060102T150405"
	icalDateFormatLocal      = "20060102"
)

// timestampString is the text an instant is compared by. All-day values are
// calendar dates in the location the time carries; part-day values are UTC
// date-times.
func timestampString(t time.Time, isAllDay bool) string {
	if isAllDay {
		return t.Format(icalDateFormatLocal)
	}
	return t.UTC().Format(icalTimestampFormatUtc)
}

func zuluTimestamp(t time.Time) string {
	return t.UTC().Format(icalTimestampFormatUtc)
}

// eventDateValue renders DTSTART and DTEND. Part-day values in UTC are
// written in the Zulu form without TZID, other part-day values as local time
// with TZID.
func eventDateValue(t time.Time, loc *time.Location, tzid string, isAllDay bool) (string, []PropertyParameter) {
	switch {
	case isAllDay:
		return t.Format(icalDateFormatLocal), []PropertyParameter{WithValue(ValueDataTypeDate)}
	case isUTC(loc):
		return zuluTimestamp(t), nil
	default:
		return t.In(loc).Format(icalTimestampFormatLocal), []PropertyParameter{WithTZID(tzidFor(loc, tzid))}
	}
}

// zonedDateValue renders RECURRENCE-ID and EXDATE values. Unlike
// eventDateValue a TZID is attached to every part-day value, UTC included.
func zonedDateValue(t time.Time, loc *time.Location, tzid string, isAllDay bool) (string, []PropertyParameter) {
	if isAllDay {
		return t.Format(icalDateFormatLocal), []PropertyParameter{WithValue(ValueDataTypeDate)}
	}
	return t.In(loc).Format(icalTimestampFormatLocal), []PropertyParameter{WithTZID(tzidFor(loc, tzid))}
}

func tzidFor(loc *time.Location, tzid string) string {
	if tzid != "" {
		return tzid
	}
	return loc.String()
}
