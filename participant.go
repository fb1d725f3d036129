package ics

import (
	"fmt"
	"net/mail"
	"strings"
)

// AttendeeType selects the parameters written on each ATTENDEE line.
type AttendeeType int

const (
	// AttendeeTypeInvitation writes what the organizer knows about an
	// attendee: CN, ROLE, RSVP, PARTSTAT and X-PM-TOKEN.
	AttendeeTypeInvitation AttendeeType = iota
	// AttendeeTypeReply writes what an attendee states in an answer: CN,
	// PARTSTAT and X-PM-TOKEN.
	AttendeeTypeReply
)

func (t AttendeeType) String() string {
	switch t {
	case AttendeeTypeInvitation:
		return "invitation"
	case AttendeeTypeReply:
		return "reply"
	}
	return fmt.Sprintf("AttendeeType(%d)", int(t))
}

// calAddress returns the CAL-ADDRESS value of a bare e-mail address. A
// leading mailto: is accepted, display names are not.
func calAddress(email string) (string, error) {
	email = strings.TrimSpace(email)
	if len(email) >= 7 && strings.EqualFold(email[:7], "mailto:") {
		email = email[7:]
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return "", err
	}
	if addr.Address != email {
		return "", fmt.Errorf("%q is not a bare address", email)
	}
	return "mailto:" + addr.Address, nil
}

func organizerProperty(o Organizer) (string, []PropertyParameter, error) {
	value, err := calAddress(o.Email)
	if err != nil {
		return "", nil, newWriteError(ComponentPropertyOrganizer, ErrFailToBuildOrganizer, "%v", err)
	}
	var params []PropertyParameter
	if o.CommonName != "" {
		params = append(params, WithCN(o.CommonName))
	}
	return value, params, nil
}

func attendeeProperty(p Participant, t AttendeeType) (string, []PropertyParameter, error) {
	value, err := calAddress(p.Email)
	if err != nil {
		return "", nil, newWriteError(ComponentPropertyAttendee, ErrFailToBuildAttendee, "%v", err)
	}
	var params []PropertyParameter
	if p.CommonName != "" {
		params = append(params, WithCN(p.CommonName))
	}
	status := p.Status
	if status == "" {
		status = ParticipationStatusNeedsAction
	}
	if t == AttendeeTypeInvitation {
		role := p.Role
		if role == "" {
			role = ParticipationRoleReqParticipant
		}
		params = append(params, role, WithRSVP(true))
	}
	params = append(params, status)
	if p.Token != "" {
		params = append(params, WithPMToken(p.Token))
	}
	return value, params, nil
}
