package ics

import (
	"fmt"
	"io"
	"reflect"
	"strings"
)

// Calendar represents a VCALENDAR object. RFC 5545 section 3.6 says:
// "A 'VCALENDAR' object MUST include the 'PRODID' and 'VERSION' properties".
// VCalendarWriter adds them on request, NewCalendar leaves the envelope empty.
type Calendar struct {
	ComponentBase
}

func NewCalendar() *Calendar {
	return &Calendar{}
}

func (cal *Calendar) Serialize(ops ...any) string {
	b := &strings.Builder{}
	// We are intentionally ignoring the return value. _ used to communicate this to lint.
	_ = cal.SerializeTo(b, ops...)
	return b.String()
}

type WithLineLength int
type WithNewLine string

func (cal *Calendar) SerializeTo(w io.Writer, ops ...any) error {
	serializeConfig, err := parseSerializeOps(ops)
	if err != nil {
		return err
	}
	return cal.serializeThis(w, ComponentVCalendar, serializeConfig)
}

// SerializationConfiguration controls how calendars and components are written
// out. PropertyMaxLength is the 75 octet line length of RFC 5545 section 3.1,
// content lines longer than that are folded. NewLine selects the line
// termination sequence.
type SerializationConfiguration struct {
	NewLine           string
	PropertyMaxLength int
}

// parseSerializeOps interprets the optional arguments provided to Serialize or
// SerializeTo. It accepts WithLineLength, WithNewLine or a
// *SerializationConfiguration. Unsupported types return an error.
func parseSerializeOps(ops []any) (*SerializationConfiguration, error) {
	serializeConfig := defaultSerializationOptions()
	for opi, op := range ops {
		switch op := op.(type) {
		case WithLineLength:
			serializeConfig.PropertyMaxLength = int(op)
		case WithNewLine:
			serializeConfig.NewLine = string(op)
		case *SerializationConfiguration:
			return op, nil
		case error:
			return nil, op
		default:
			return nil, fmt.Errorf("unknown op %d of type %s", opi, reflect.TypeOf(op))
		}
	}
	return serializeConfig, nil
}

// defaultSerializationOptions folds at 75 octets and ends lines with CRLF as
// RFC 5545 requires, whatever the platform.
func defaultSerializationOptions() *SerializationConfiguration {
	return &SerializationConfiguration{
		PropertyMaxLength: 75,
		NewLine:           "\r\n",
	}
}

func (cal *Calendar) SetMethod(method Method, params ...PropertyParameter) {
	cal.setProperty(PropertyMethod, string(method), params...)
}

func (cal *Calendar) SetVersion(s string, params ...PropertyParameter) {
	cal.setProperty(PropertyVersion, s, params...)
}

func (cal *Calendar) SetProductId(s string, params ...PropertyParameter) {
	cal.setProperty(PropertyProductId, s, params...)
}

func (cal *Calendar) SetCalscale(s string, params ...PropertyParameter) {
	cal.setProperty(PropertyCalscale, s, params...)
}

func (cal *Calendar) setProperty(property Property, value string, params ...PropertyParameter) {
	cal.SetProperty(ComponentProperty(property), value, params...)
}

// CalendarProperty returns the first envelope property with the given name.
func (cal *Calendar) CalendarProperty(property Property) *IANAProperty {
	return cal.GetProperty(ComponentProperty(property))
}

func (cal *Calendar) Events() (r []*VEvent) {
	r = []*VEvent{}
	for i := range cal.Components {
		switch event := cal.Components[i].(type) {
		case *VEvent:
			r = append(r, event)
		}
	}
	return
}

// Timezones returns the pre-rendered VTIMEZONE blocks of the calendar.
func (cal *Calendar) Timezones() (r []*RawComponent) {
	for i := range cal.Components {
		if tz, ok := cal.Components[i].(*RawComponent); ok && tz.Type == ComponentVTimezone {
			r = append(r, tz)
		}
	}
	return
}

// ProductID returns the PRODID value used by Proton clients.
func ProductID(productName, productVersion string) string {
	return "-//Proton Technologies//" + productName + " " + productVersion + "//EN"
}

// VCalendarWriter assembles a VCALENDAR envelope around partial VEVENTs. The
// Add methods set singular properties, calling them twice keeps one
// property with the latest value.
type VCalendarWriter struct {
	writerOptions
	productVersion string
	calendar       *Calendar
}

func NewVCalendarWriter(productVersion string, opts ...Option) *VCalendarWriter {
	return &VCalendarWriter{
		writerOptions:  newWriterOptions(opts),
		productVersion: productVersion,
		calendar:       NewCalendar(),
	}
}

func (w *VCalendarWriter) AddProdID() *VCalendarWriter {
	w.calendar.SetProductId(ProductID(w.productName, w.productVersion))
	return w
}

func (w *VCalendarWriter) AddVersion() *VCalendarWriter {
	w.calendar.SetVersion(w.iCalVersion)
	return w
}

func (w *VCalendarWriter) AddCalscale() *VCalendarWriter {
	w.calendar.SetCalscale(w.calscale)
	return w
}

func (w *VCalendarWriter) AddMethod(method Method) *VCalendarWriter {
	w.calendar.SetMethod(method)
	return w
}

// AddVEvent builds bt for event with a fresh VEventWriter and attaches the
// result. It reports false when the build produced nothing, in which case the
// envelope is unchanged.
func (w *VCalendarWriter) AddVEvent(event *Event, bt BuildType) (bool, error) {
	ve, err := newVEventWriter(event, w.writerOptions).Build(bt)
	if err != nil {
		return false, err
	}
	if ve == nil {
		return false, nil
	}
	w.calendar.AddSubComponent(ve)
	return true, nil
}

// AddVTimezone attaches a VTIMEZONE block rendered elsewhere, typically from
// a time zone database, without interpreting it.
func (w *VCalendarWriter) AddVTimezone(text string) error {
	lines := strings.Split(strings.ReplaceAll(strings.TrimSpace(text), "\r\n", "\n"), "\n")
	if len(lines) < 2 ||
		!strings.EqualFold(strings.TrimSpace(lines[0]), "BEGIN:"+string(ComponentVTimezone)) ||
		!strings.EqualFold(strings.TrimSpace(lines[len(lines)-1]), "END:"+string(ComponentVTimezone)) {
		return ErrInvalidVTimezone
	}
	w.calendar.AddSubComponent(&RawComponent{Type: ComponentVTimezone, Text: text})
	return nil
}

func (w *VCalendarWriter) Calendar() *Calendar {
	return w.calendar
}
