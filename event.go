package ics

import (
	"time"

	"github.com/google/uuid"
)

// Event is the input of the writers. It is never modified by a build, so a
// single Event may be shared by the writers producing the different parts of
// the same invitation.
type Event struct {
	// ICSUID is identical in every partial document of the event.
	ICSUID string

	StartDate time.Time
	EndDate   time.Time
	// StartTimeZone and EndTimeZone may be left nil, the writer then resolves
	// them from the identifiers through its TimeZoneProvider.
	StartTimeZone   *time.Location
	EndTimeZone     *time.Location
	StartTimeZoneID string
	EndTimeZoneID   string
	IsAllDay        bool

	Recurrence      Recurrence
	RecommendedWKST *time.Weekday

	// An overridden occurrence may use other time semantics than its main
	// event, so RECURRENCE-ID carries its own zone and all-day flag. The three
	// fields are only used together.
	RecurrenceID           *time.Time
	RecurrenceIDTimeZoneID *string
	RecurrenceIDIsAllDay   *bool

	// ExDates and ExDateTimeZoneIDs are parallel and must have the same length.
	ExDates           []time.Time
	ExDateTimeZoneIDs []string

	Sequence int

	Title    *string
	Notes    *string
	Location *string
	Status   *EventStatus

	Organizer    *Organizer
	Participants []Participant

	IsProtonToProtonInvitation bool
	SharedEventID              *string

	CreatedTime time.Time
}

type Organizer struct {
	Email      string
	CommonName string
}

type Participant struct {
	Email      string
	CommonName string
	Role       ParticipationRole
	Status     ParticipationStatus
	// Token is the X-PM-TOKEN identifying the attendee in the sharing protocol.
	Token string
}

// NewUID returns a UID suitable for a new event.
func NewUID() string {
	return uuid.NewString() + "@proton.me"
}
