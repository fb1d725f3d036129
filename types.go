package ics

// ComponentType enumerates the component names this package writes.
type ComponentType string

const (
	// ComponentVCalendar is the VCALENDAR container component.
	ComponentVCalendar ComponentType = "VCALENDAR"
	// ComponentVEvent represents a VEVENT component.
	ComponentVEvent ComponentType = "VEVENT"
	// ComponentVTimezone represents a VTIMEZONE component. Time zone blocks
	// are supplied pre-rendered, see VCalendarWriter.AddVTimezone.
	ComponentVTimezone ComponentType = "VTIMEZONE"
)

type Property string

// Property enumerates the iCalendar property names used by the writers.
// Standard names are defined in RFC 5545 section 3.7 and 3.8, the X-PM-*
// names are extensions of the Proton sharing protocol.
const (
	PropertyCalscale     Property = "CALSCALE"
	PropertyMethod       Property = "METHOD"
	PropertyProductId    Property = "PRODID"
	PropertyVersion      Property = "VERSION"
	PropertyUid          Property = "UID"
	PropertyDtstamp      Property = "DTSTAMP"
	PropertyDtstart      Property = "DTSTART"
	PropertyDtend        Property = "DTEND"
	PropertyRrule        Property = "RRULE"
	PropertyRecurrenceId Property = "RECURRENCE-ID"
	PropertyExdate       Property = "EXDATE"
	PropertySequence     Property = "SEQUENCE"
	PropertyOrganizer    Property = "ORGANIZER"
	PropertyAttendee     Property = "ATTENDEE"
	PropertySummary      Property = "SUMMARY"     // TEXT
	PropertyDescription  Property = "DESCRIPTION" // TEXT
	PropertyLocation     Property = "LOCATION"    // TEXT
	PropertyStatus       Property = "STATUS"
	PropertyTransp       Property = "TRANSP"
	PropertyCreated      Property = "CREATED"
	PropertyLastModified Property = "LAST-MODIFIED"

	// PropertyXPMProtonReply marks a reply sent between two Proton users.
	// It is BOOLEAN valued and only present on reply documents.
	PropertyXPMProtonReply Property = "X-PM-PROTON-REPLY"
	// PropertyXPMSharedEventID carries the server side identifier of the
	// shared event on invite and cancel documents.
	PropertyXPMSharedEventID Property = "X-PM-SHARED-EVENT-ID"
	// PropertyXPMSessionKey carries the base64 text of the unencrypted shared
	// session key packet on invite documents.
	PropertyXPMSessionKey Property = "X-PM-SESSION-KEY"
)

// ComponentProperty is a Property as used inside a component. The distinct
// type keeps calendar level properties (PRODID, VERSION, ...) apart from
// event properties at call sites.
type ComponentProperty Property

const (
	ComponentPropertyUniqueId     = ComponentProperty(PropertyUid) // TEXT
	ComponentPropertyDtstamp      = ComponentProperty(PropertyDtstamp)
	ComponentPropertyDtStart      = ComponentProperty(PropertyDtstart)
	ComponentPropertyDtEnd        = ComponentProperty(PropertyDtend)
	ComponentPropertyRrule        = ComponentProperty(PropertyRrule)
	ComponentPropertyRecurrenceId = ComponentProperty(PropertyRecurrenceId)
	ComponentPropertyExdate       = ComponentProperty(PropertyExdate)
	ComponentPropertySequence     = ComponentProperty(PropertySequence)
	ComponentPropertyOrganizer    = ComponentProperty(PropertyOrganizer)
	ComponentPropertyAttendee     = ComponentProperty(PropertyAttendee)
	ComponentPropertySummary      = ComponentProperty(PropertySummary)     // TEXT
	ComponentPropertyDescription  = ComponentProperty(PropertyDescription) // TEXT
	ComponentPropertyLocation     = ComponentProperty(PropertyLocation)    // TEXT
	ComponentPropertyStatus       = ComponentProperty(PropertyStatus)
	ComponentPropertyTransp       = ComponentProperty(PropertyTransp)
	ComponentPropertyCreated      = ComponentProperty(PropertyCreated)
	ComponentPropertyLastModified = ComponentProperty(PropertyLastModified)

	ComponentPropertyXPMProtonReply   = ComponentProperty(PropertyXPMProtonReply)
	ComponentPropertyXPMSharedEventID = ComponentProperty(PropertyXPMSharedEventID)
	ComponentPropertyXPMSessionKey    = ComponentProperty(PropertyXPMSessionKey)
)

type Parameter string

// IsQuoted reports whether the parameter value is always a quoted string.
func (p Parameter) IsQuoted() bool {
	switch p {
	case ParameterDelegatedFrom, ParameterDelegatedTo, ParameterDir, ParameterMember, ParameterSentBy:
		return true
	}
	return false
}

const (
	ParameterCn                  Parameter = "CN"
	ParameterCutype              Parameter = "CUTYPE"
	ParameterDelegatedFrom       Parameter = "DELEGATED-FROM"
	ParameterDelegatedTo         Parameter = "DELEGATED-TO"
	ParameterDir                 Parameter = "DIR"
	ParameterMember              Parameter = "MEMBER"
	ParameterParticipationStatus Parameter = "PARTSTAT"
	ParameterRole                Parameter = "ROLE"
	ParameterRsvp                Parameter = "RSVP"
	ParameterSentBy              Parameter = "SENT-BY"
	ParameterTzid                Parameter = "TZID"
	ParameterValue               Parameter = "VALUE"
	// ParameterXPMToken is the per attendee token of the Proton protocol.
	ParameterXPMToken Parameter = "X-PM-TOKEN"
)

type ValueDataType string

// ValueDataType enumerates the VALUE parameter values the writers emit
// (RFC 5545 section 3.2.20).
const (
	ValueDataTypeBoolean  ValueDataType = "BOOLEAN"
	ValueDataTypeDate     ValueDataType = "DATE"
	ValueDataTypeDateTime ValueDataType = "DATE-TIME"
)

type ParticipationStatus string

// ParticipationStatus enumerates the PARTSTAT parameter values from RFC 5545 section 3.2.12.
const (
	// ParticipationStatusNeedsAction indicates a pending reply.
	ParticipationStatusNeedsAction ParticipationStatus = "NEEDS-ACTION"
	// ParticipationStatusAccepted indicates acceptance.
	ParticipationStatusAccepted ParticipationStatus = "ACCEPTED"
	// ParticipationStatusDeclined indicates the invitation was declined.
	ParticipationStatusDeclined ParticipationStatus = "DECLINED"
	// ParticipationStatusTentative indicates a tentative reply.
	ParticipationStatusTentative ParticipationStatus = "TENTATIVE"
	// ParticipationStatusDelegated indicates delegation to another party.
	ParticipationStatusDelegated ParticipationStatus = "DELEGATED"
)

func (ps ParticipationStatus) KeyValue(_ ...interface{}) (string, []string) {
	return string(ParameterParticipationStatus), []string{string(ps)}
}

type ParticipationRole string

// ParticipationRole enumerates the ROLE parameter values for participants
// (RFC 5545 section 3.2.16).
const (
	// ParticipationRoleChair designates the chair of the meeting.
	ParticipationRoleChair ParticipationRole = "CHAIR"
	// ParticipationRoleReqParticipant indicates a required participant.
	ParticipationRoleReqParticipant ParticipationRole = "REQ-PARTICIPANT"
	// ParticipationRoleOptParticipant indicates an optional participant.
	ParticipationRoleOptParticipant ParticipationRole = "OPT-PARTICIPANT"
	// ParticipationRoleNonParticipant indicates a non-participant observer.
	ParticipationRoleNonParticipant ParticipationRole = "NON-PARTICIPANT"
)

func (pr ParticipationRole) KeyValue(_ ...interface{}) (string, []string) {
	return string(ParameterRole), []string{string(pr)}
}

type EventStatus string

// EventStatus enumerates the STATUS values allowed on a VEVENT
// (RFC 5545 section 3.8.1.11).
const (
	EventStatusTentative EventStatus = "TENTATIVE"
	EventStatusConfirmed EventStatus = "CONFIRMED"
	EventStatusCancelled EventStatus = "CANCELLED"
)

type TimeTransparency string

const (
	TransparencyOpaque      TimeTransparency = "OPAQUE" // default
	TransparencyTransparent TimeTransparency = "TRANSPARENT"
)

type Method string

// Method enumerates METHOD property values used with scheduling messages
// (RFC 5546 section 1.4).
const (
	// MethodPublish publishes a calendar.
	MethodPublish Method = "PUBLISH"
	// MethodRequest requests scheduling.
	MethodRequest Method = "REQUEST"
	// MethodReply sends a scheduling reply.
	MethodReply Method = "REPLY"
	// MethodCancel cancels a previously scheduled object.
	MethodCancel Method = "CANCEL"
)
