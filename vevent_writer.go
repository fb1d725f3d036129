package ics

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/AlekSi/pointer"
)

type BuildKind int

const (
	BuildKindAllParts BuildKind = iota
	BuildKindSharedSigned
	BuildKindSharedEncrypted
	BuildKindCalendarSigned
	BuildKindAttendeesEncrypted
	BuildKindReply
	BuildKindInvite
	BuildKindCancel
)

var buildKindNames = map[BuildKind]string{
	BuildKindAllParts:           "all-parts",
	BuildKindSharedSigned:       "shared-signed",
	BuildKindSharedEncrypted:    "shared-encrypted",
	BuildKindCalendarSigned:     "calendar-signed",
	BuildKindAttendeesEncrypted: "attendees-encrypted",
	BuildKindReply:              "reply",
	BuildKindInvite:             "invite",
	BuildKindCancel:             "cancel",
}

func (k BuildKind) String() string {
	if s, ok := buildKindNames[k]; ok {
		return s
	}
	return "BuildKind(" + strconv.Itoa(int(k)) + ")"
}

// BuildType selects which subset of the event a Build writes. Only an invite
// carries data of its own, the session key.
type BuildType struct {
	Kind       BuildKind
	SessionKey string
}

var (
	AllParts           = BuildType{Kind: BuildKindAllParts}
	SharedSigned       = BuildType{Kind: BuildKindSharedSigned}
	SharedEncrypted    = BuildType{Kind: BuildKindSharedEncrypted}
	CalendarSigned     = BuildType{Kind: BuildKindCalendarSigned}
	AttendeesEncrypted = BuildType{Kind: BuildKindAttendeesEncrypted}
	Reply              = BuildType{Kind: BuildKindReply}
	Cancel             = BuildType{Kind: BuildKindCancel}
)

// Invite returns the build type of an invitation carrying sessionKey, the
// base64 text of the unencrypted shared session key packet.
func Invite(sessionKey string) BuildType {
	return BuildType{Kind: BuildKindInvite, SessionKey: sessionKey}
}

func (bt BuildType) String() string {
	return bt.Kind.String()
}

// IsEssential reports whether a build of this type is returned even when no
// property was written.
func (bt BuildType) IsEssential() bool {
	return bt.Kind == BuildKindSharedSigned || bt.Kind == BuildKindSharedEncrypted
}

// Properties lists the properties a build of this type may write, in output
// order. UID and DTSTAMP close every list.
func (bt BuildType) Properties() []ComponentProperty {
	steps := buildSteps[bt.Kind]
	r := make([]ComponentProperty, 0, len(steps)+2)
	for _, s := range steps {
		r = append(r, s.property)
	}
	return append(r, ComponentPropertyUniqueId, ComponentPropertyDtstamp)
}

// ParseBuildType maps a build kind name such as "shared-signed" to its build
// type. sessionKey is only used by "invite".
func ParseBuildType(name, sessionKey string) (BuildType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, s := range buildKindNames {
		if s == name {
			if k == BuildKindInvite {
				return Invite(sessionKey), nil
			}
			return BuildType{Kind: k}, nil
		}
	}
	return BuildType{}, fmt.Errorf("unknown build type %q", name)
}

type step struct {
	property ComponentProperty
	write    func(w *VEventWriter, ve *VEvent, bt BuildType) error
}

var (
	dtStartStep       = step{ComponentPropertyDtStart, (*VEventWriter).writeDtStart}
	dtEndStep         = step{ComponentPropertyDtEnd, (*VEventWriter).writeDtEnd}
	rruleStep         = step{ComponentPropertyRrule, (*VEventWriter).writeRrule}
	recurrenceIDStep  = step{ComponentPropertyRecurrenceId, (*VEventWriter).writeRecurrenceID}
	exdateStep        = step{ComponentPropertyExdate, (*VEventWriter).writeExdates}
	sequenceStep      = step{ComponentPropertySequence, (*VEventWriter).writeSequence}
	organizerStep     = step{ComponentPropertyOrganizer, (*VEventWriter).writeOrganizer}
	statusStep        = step{ComponentPropertyStatus, (*VEventWriter).writeStatus}
	transpStep        = step{ComponentPropertyTransp, (*VEventWriter).writeTransp}
	createdStep       = step{ComponentPropertyCreated, (*VEventWriter).writeCreated}
	lastModifiedStep  = step{ComponentPropertyLastModified, (*VEventWriter).writeLastModified}
	protonReplyStep   = step{ComponentPropertyXPMProtonReply, (*VEventWriter).writeProtonReply}
	sharedEventIDStep = step{ComponentPropertyXPMSharedEventID, (*VEventWriter).writeSharedEventID}
	sessionKeyStep    = step{ComponentPropertyXPMSessionKey, (*VEventWriter).writeSessionKey}

	summaryStep        = textStep(ComponentPropertySummary, func(e *Event) *string { return e.Title }, false)
	summaryDefaultStep = textStep(ComponentPropertySummary, func(e *Event) *string { return e.Title }, true)
	descriptionStep    = textStep(ComponentPropertyDescription, func(e *Event) *string { return e.Notes }, false)
	locationStep       = textStep(ComponentPropertyLocation, func(e *Event) *string { return e.Location }, false)

	invitationAttendeesStep = attendeesStep(AttendeeTypeInvitation)
	replyAttendeesStep      = attendeesStep(AttendeeTypeReply)
)

// buildSteps is the content of every build type, in output order.
var buildSteps = map[BuildKind][]step{
	BuildKindAllParts: {
		dtStartStep, dtEndStep, rruleStep, recurrenceIDStep, exdateStep, sequenceStep, organizerStep,
		summaryStep, descriptionStep, locationStep, statusStep, transpStep,
	},
	BuildKindSharedSigned: {
		dtStartStep, dtEndStep, rruleStep, recurrenceIDStep, exdateStep, sequenceStep, organizerStep,
		createdStep, lastModifiedStep,
	},
	BuildKindSharedEncrypted: {
		summaryStep, descriptionStep, locationStep,
	},
	BuildKindCalendarSigned: {
		statusStep, transpStep,
	},
	BuildKindAttendeesEncrypted: {
		invitationAttendeesStep,
	},
	BuildKindReply: {
		dtStartStep, dtEndStep, rruleStep, recurrenceIDStep, sequenceStep, organizerStep,
		summaryStep, locationStep, protonReplyStep, replyAttendeesStep,
	},
	// SUMMARY is mandatory on scheduling messages.
	BuildKindInvite: {
		dtStartStep, dtEndStep, rruleStep, recurrenceIDStep, sequenceStep, organizerStep,
		summaryDefaultStep, descriptionStep, locationStep, statusStep, invitationAttendeesStep, transpStep,
		sharedEventIDStep, sessionKeyStep,
	},
	BuildKindCancel: {
		dtStartStep, dtEndStep, rruleStep, recurrenceIDStep, sequenceStep, organizerStep,
		summaryDefaultStep, descriptionStep, locationStep, statusStep, transpStep,
		sharedEventIDStep,
	},
}

// VEventWriter renders one partial VEVENT of an Event. A writer is single
// use: create one per Build.
type VEventWriter struct {
	writerOptions
	event *Event
	now   time.Time
	used  bool
}

func NewVEventWriter(event *Event, opts ...Option) *VEventWriter {
	return newVEventWriter(event, newWriterOptions(opts))
}

func newVEventWriter(event *Event, o writerOptions) *VEventWriter {
	return &VEventWriter{
		writerOptions: o,
		event:         event,
	}
}

// Build writes the properties of bt followed by UID and DTSTAMP. It returns
// nil and no error when nothing was written for a non essential build type.
// On error nothing is returned and the partial tree is released.
func (w *VEventWriter) Build(bt BuildType) (*VEvent, error) {
	if w.used {
		return nil, ErrWriterAlreadyUsed
	}
	w.used = true

	steps, ok := buildSteps[bt.Kind]
	if !ok {
		return nil, fmt.Errorf("ics: unknown build type %v", bt)
	}
	w.now = w.timestamp()

	ve := &VEvent{}
	for _, s := range steps {
		if err := s.write(w, ve, bt); err != nil {
			ve.Release()
			w.observe(bt, BuildResultError)
			return nil, err
		}
	}

	if !bt.IsEssential() && ve.IsEmpty() {
		ve.Release()
		w.observe(bt, BuildResultEmpty)
		return nil, nil
	}

	ve.AddProperty(ComponentPropertyUniqueId, w.event.ICSUID)
	ve.AddProperty(ComponentPropertyDtstamp, zuluTimestamp(w.now))
	w.observe(bt, BuildResultBuilt)
	return ve, nil
}

func (w *VEventWriter) observe(bt BuildType, result BuildResult) {
	if w.observer != nil {
		w.observer.ObserveBuild(bt, result)
	}
}

func (w *VEventWriter) startLocation() *time.Location {
	if w.event.StartTimeZone != nil {
		return w.event.StartTimeZone
	}
	return w.timeZones.TimeZone(w.event.StartTimeZoneID)
}

func (w *VEventWriter) endLocation() *time.Location {
	if w.event.EndTimeZone != nil {
		return w.event.EndTimeZone
	}
	return w.timeZones.TimeZone(w.event.EndTimeZoneID)
}

func (w *VEventWriter) writeDtStart(ve *VEvent, _ BuildType) error {
	e := w.event
	value, params := eventDateValue(e.StartDate, w.startLocation(), e.StartTimeZoneID, e.IsAllDay)
	ve.AddProperty(ComponentPropertyDtStart, value, params...)
	return nil
}

// writeDtEnd skips events that end when they start.
func (w *VEventWriter) writeDtEnd(ve *VEvent, _ BuildType) error {
	e := w.event
	if timestampString(e.StartDate, e.IsAllDay) == timestampString(e.EndDate, e.IsAllDay) {
		return nil
	}
	if !e.StartDate.Before(e.EndDate) {
		return newWriteError(ComponentPropertyDtEnd, ErrStartDateIsAfterEndDate,
			"start %s, end %s", zuluTimestamp(e.StartDate), zuluTimestamp(e.EndDate))
	}
	value, params := eventDateValue(e.EndDate, w.endLocation(), e.EndTimeZoneID, e.IsAllDay)
	ve.AddProperty(ComponentPropertyDtEnd, value, params...)
	return nil
}

func (w *VEventWriter) writeRrule(ve *VEvent, _ BuildType) error {
	e := w.event
	rule, err := recurrenceRule(e.Recurrence, w.startLocation(), e.IsAllDay, e.RecommendedWKST)
	if err != nil {
		if !errors.Is(err, errNoRecurrence) {
			loggerOrDefault(w.logger).Debug("recurrence rule omitted", "uid", e.ICSUID, "error", err)
		}
		return nil
	}
	ve.AddProperty(ComponentPropertyRrule, rule)
	return nil
}

func (w *VEventWriter) writeRecurrenceID(ve *VEvent, _ BuildType) error {
	e := w.event
	if e.RecurrenceID == nil || e.RecurrenceIDTimeZoneID == nil || e.RecurrenceIDIsAllDay == nil {
		return nil
	}
	loc := w.timeZones.TimeZone(*e.RecurrenceIDTimeZoneID)
	value, params := zonedDateValue(*e.RecurrenceID, loc, *e.RecurrenceIDTimeZoneID, *e.RecurrenceIDIsAllDay)
	ve.AddProperty(ComponentPropertyRecurrenceId, value, params...)
	return nil
}

func (w *VEventWriter) writeExdates(ve *VEvent, _ BuildType) error {
	e := w.event
	if e.ExDates == nil || e.ExDateTimeZoneIDs == nil {
		return nil
	}
	if len(e.ExDates) != len(e.ExDateTimeZoneIDs) {
		loggerOrDefault(w.logger).Warn("exception dates and their time zones differ in length, EXDATE omitted",
			"uid", e.ICSUID, "exdates", len(e.ExDates), "tzids", len(e.ExDateTimeZoneIDs))
		return nil
	}
	for i, d := range e.ExDates {
		tzid := e.ExDateTimeZoneIDs[i]
		value, params := zonedDateValue(d, w.timeZones.TimeZone(tzid), tzid, e.IsAllDay)
		ve.AddProperty(ComponentPropertyExdate, value, params...)
	}
	return nil
}

func (w *VEventWriter) writeSequence(ve *VEvent, _ BuildType) error {
	ve.AddProperty(ComponentPropertySequence, strconv.Itoa(w.event.Sequence))
	return nil
}

func (w *VEventWriter) writeOrganizer(ve *VEvent, _ BuildType) error {
	if w.event.Organizer == nil {
		return nil
	}
	value, params, err := organizerProperty(*w.event.Organizer)
	if err != nil {
		return err
	}
	ve.AddProperty(ComponentPropertyOrganizer, value, params...)
	return nil
}

// textStep writes a TEXT property from field. With defaultEmpty an absent
// field is written as an empty value instead of being skipped.
func textStep(property ComponentProperty, field func(*Event) *string, defaultEmpty bool) step {
	return step{
		property: property,
		write: func(w *VEventWriter, ve *VEvent, _ BuildType) error {
			s := field(w.event)
			if s == nil && !defaultEmpty {
				return nil
			}
			value := pointer.GetString(s)
			if err := checkTextLength(property, value); err != nil {
				return err
			}
			ve.AddProperty(property, ToText(value))
			return nil
		},
	}
}

func attendeesStep(t AttendeeType) step {
	return step{
		property: ComponentPropertyAttendee,
		write: func(w *VEventWriter, ve *VEvent, _ BuildType) error {
			type attendee struct {
				value  string
				params []PropertyParameter
			}
			attendees := make([]attendee, 0, len(w.event.Participants))
			for _, p := range w.event.Participants {
				value, params, err := attendeeProperty(p, t)
				if err != nil {
					return err
				}
				attendees = append(attendees, attendee{value, params})
			}
			for _, a := range attendees {
				ve.AddProperty(ComponentPropertyAttendee, a.value, a.params...)
			}
			return nil
		},
	}
}

func (w *VEventWriter) writeStatus(ve *VEvent, _ BuildType) error {
	status := EventStatusConfirmed
	if s := w.event.Status; s != nil {
		switch *s {
		case EventStatusTentative, EventStatusConfirmed, EventStatusCancelled:
			status = *s
		}
	}
	ve.AddProperty(ComponentPropertyStatus, string(status))
	return nil
}

func (w *VEventWriter) writeTransp(ve *VEvent, _ BuildType) error {
	ve.AddProperty(ComponentPropertyTransp, string(TransparencyOpaque))
	return nil
}

func (w *VEventWriter) writeCreated(ve *VEvent, _ BuildType) error {
	ve.AddProperty(ComponentPropertyCreated, zuluTimestamp(w.event.CreatedTime))
	return nil
}

func (w *VEventWriter) writeLastModified(ve *VEvent, _ BuildType) error {
	ve.AddProperty(ComponentPropertyLastModified, zuluTimestamp(w.now))
	return nil
}

func (w *VEventWriter) writeProtonReply(ve *VEvent, _ BuildType) error {
	if !w.event.IsProtonToProtonInvitation {
		return nil
	}
	ve.AddProperty(ComponentPropertyXPMProtonReply, "TRUE", WithValue(ValueDataTypeBoolean))
	return nil
}

func (w *VEventWriter) writeSharedEventID(ve *VEvent, _ BuildType) error {
	if w.event.SharedEventID == nil {
		return newWriteError(ComponentPropertyXPMSharedEventID, ErrMissingSharedEventID, "uid %s", w.event.ICSUID)
	}
	ve.AddProperty(ComponentPropertyXPMSharedEventID, *w.event.SharedEventID)
	return nil
}

func (w *VEventWriter) writeSessionKey(ve *VEvent, bt BuildType) error {
	ve.AddProperty(ComponentPropertyXPMSessionKey, bt.SessionKey)
	return nil
}
