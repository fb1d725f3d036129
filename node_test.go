package ics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// releaseRecorder is a VEvent logging the order in which releases happen.
type releaseRecorder struct {
	VEvent
	name string
	log  *[]string
}

func (r *releaseRecorder) Release() {
	wasReleased := r.IsReleased()
	r.VEvent.Release()
	if !wasReleased {
		*r.log = append(*r.log, r.name)
	}
}

func TestReleaseIsPostOrderAndIdempotent(t *testing.T) {
	var log []string
	root := &releaseRecorder{name: "root", log: &log}
	child := &releaseRecorder{name: "child", log: &log}
	grandchild := &releaseRecorder{name: "grandchild", log: &log}
	sibling := &releaseRecorder{name: "sibling", log: &log}
	child.AddSubComponent(grandchild)
	root.AddSubComponent(child)
	root.AddSubComponent(sibling)
	root.AddProperty(ComponentPropertySummary, "x")

	root.Release()
	root.Release()
	child.Release()

	assert.Equal(t, []string{"grandchild", "child", "sibling", "root"}, log)
	assert.True(t, root.IsReleased())
	assert.True(t, grandchild.IsReleased())
	assert.True(t, root.IsEmpty())
}

func TestUseAfterReleasePanics(t *testing.T) {
	ve := &VEvent{}
	ve.Release()

	assert.Panics(t, func() { ve.AddProperty(ComponentPropertySummary, "x") })
	assert.Panics(t, func() { ve.AddSubComponent(&VEvent{}) })
}

func TestIsEmpty(t *testing.T) {
	ve := &VEvent{}
	assert.True(t, ve.IsEmpty())

	ve.AddSubComponent(&RawComponent{Type: ComponentVTimezone, Text: "BEGIN:VTIMEZONE\nEND:VTIMEZONE"})
	assert.False(t, ve.IsEmpty())

	ve = &VEvent{}
	ve.AddProperty(ComponentPropertySummary, "")
	assert.False(t, ve.IsEmpty())
}

func TestPropertyOrderIsInsertionOrder(t *testing.T) {
	ve := &VEvent{}
	ve.AddProperty(ComponentPropertyUniqueId, "1")
	ve.AddProperty(ComponentPropertyAttendee, "mailto:b@proton.me", WithRSVP(true), WithCN("B"))
	ve.AddProperty(ComponentPropertyAttendee, "mailto:a@proton.me")
	ve.SetProperty(ComponentPropertyUniqueId, "2")

	assert.Equal(t, `BEGIN:VEVENT
UID:2
ATTENDEE;RSVP=TRUE;CN=B:mailto:b@proton.me
ATTENDEE:mailto:a@proton.me
END:VEVENT
`, ve.Serialize(WithNewLine("\n")))

	values, ok := ve.GetProperty(ComponentPropertyAttendee).Parameter(ParameterRsvp)
	require.True(t, ok)
	assert.Equal(t, []string{"TRUE"}, values)
	assert.Len(t, ve.GetProperties(ComponentPropertyAttendee), 2)
}

func TestRawComponentSerialize(t *testing.T) {
	rc := &RawComponent{
		Type: ComponentVTimezone,
		Text: "\nBEGIN:VTIMEZONE\r\nTZID:Europe/Zurich\nEND:VTIMEZONE\n\n",
	}
	b := &strings.Builder{}
	require.NoError(t, rc.SerializeTo(b, defaultSerializationOptions()))
	assert.Equal(t, "BEGIN:VTIMEZONE\r\nTZID:Europe/Zurich\r\nEND:VTIMEZONE\r\n", b.String())

	rc.Release()
	b.Reset()
	require.NoError(t, rc.SerializeTo(b, defaultSerializationOptions()))
	assert.Empty(t, b.String())
	assert.True(t, rc.IsEmpty())
}
