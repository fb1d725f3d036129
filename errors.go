package ics

import (
	"errors"
	"fmt"
)

var (
	ErrSummaryTooLong     = errors.New("summary too long")
	ErrLocationTooLong    = errors.New("location too long")
	ErrDescriptionTooLong = errors.New("description too long")
	// ErrStartDateIsAfterEndDate is returned when DTEND would be written and
	// the start of the event is not strictly before its end.
	ErrStartDateIsAfterEndDate = errors.New("start date is after end date")
	ErrMissingSharedEventID    = errors.New("missing shared event id")
	ErrFailToBuildOrganizer    = errors.New("fail to build organizer")
	ErrFailToBuildAttendee     = errors.New("fail to build attendee")

	// ErrWriterAlreadyUsed is returned when Build is called a second time on
	// the same VEventWriter.
	ErrWriterAlreadyUsed = errors.New("vevent writer already used")
	// ErrInvalidVTimezone is returned when a pre-rendered time zone block is
	// not framed by BEGIN:VTIMEZONE and END:VTIMEZONE.
	ErrInvalidVTimezone = errors.New("invalid vtimezone block")
)

// WriteError describes a failed build: the property being written and the
// sentinel error explaining why.
type WriteError struct {
	Property ComponentProperty
	Detail   string
	Err      error
}

func (e *WriteError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("ics write %s: %v: %s", e.Property, e.Err, e.Detail)
	}
	return fmt.Sprintf("ics write %s: %v", e.Property, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

func newWriteError(property ComponentProperty, err error, format string, args ...any) *WriteError {
	return &WriteError{
		Property: property,
		Detail:   fmt.Sprintf(format, args...),
		Err:      err,
	}
}
