package ics

import (
	"io"
	"strings"
)

// Component is a node of the iCalendar tree. To determine what this is please
// use a type switch or typecast to each of:
// - *VEvent
// - *RawComponent
type Component interface {
	IsEmpty() bool
	Release()
	SerializeTo(w io.Writer, serialConfig *SerializationConfiguration) error
}

var (
	_ Component = (*VEvent)(nil)
	_ Component = (*RawComponent)(nil)
)

// ComponentBase exclusively owns its properties and sub components. A
// component attached to a parent must not be attached anywhere else.
type ComponentBase struct {
	Properties []IANAProperty
	Components []Component

	released bool
}

// IsEmpty reports whether nothing has been attached to the component.
func (cb *ComponentBase) IsEmpty() bool {
	return len(cb.Properties) == 0 && len(cb.Components) == 0
}

// IsReleased reports whether Release has been called.
func (cb *ComponentBase) IsReleased() bool {
	return cb.released
}

// Release releases every sub component, children before parents, then drops
// the properties. Calling it again is a no-op.
func (cb *ComponentBase) Release() {
	if cb.released {
		return
	}
	for _, c := range cb.Components {
		c.Release()
	}
	cb.Components = nil
	cb.Properties = nil
	cb.released = true
}

func (cb *ComponentBase) mustBeLive() {
	if cb.released {
		panic("ics: component used after release")
	}
}

// AddSubComponent attaches c. Ownership of c moves to cb.
func (cb *ComponentBase) AddSubComponent(c Component) {
	cb.mustBeLive()
	cb.Components = append(cb.Components, c)
}

// AddProperty appends a property
func (cb *ComponentBase) AddProperty(property ComponentProperty, value string, params ...PropertyParameter) {
	cb.mustBeLive()
	r := IANAProperty{
		BaseProperty{
			IANAToken: string(property),
			Value:     value,
		},
	}
	for _, p := range params {
		k, v := p.KeyValue()
		r.setParameter(k, v)
	}
	cb.Properties = append(cb.Properties, r)
}

// SetProperty replaces the first match for the particular property you're setting, otherwise adds it.
func (cb *ComponentBase) SetProperty(property ComponentProperty, value string, params ...PropertyParameter) {
	cb.mustBeLive()
	for i := range cb.Properties {
		if cb.Properties[i].IANAToken == string(property) {
			cb.Properties[i].Value = value
			cb.Properties[i].ICalParameters = nil
			for _, p := range params {
				k, v := p.KeyValue()
				cb.Properties[i].setParameter(k, v)
			}
			return
		}
	}
	cb.AddProperty(property, value, params...)
}

// GetProperty returns the first match for the particular property you're after.
func (cb *ComponentBase) GetProperty(componentProperty ComponentProperty) *IANAProperty {
	for i := range cb.Properties {
		if cb.Properties[i].IANAToken == string(componentProperty) {
			return &cb.Properties[i]
		}
	}
	return nil
}

// GetProperties returns all matches for the particular property you're after.
func (cb *ComponentBase) GetProperties(componentProperty ComponentProperty) []*IANAProperty {
	var result []*IANAProperty
	for i := range cb.Properties {
		if cb.Properties[i].IANAToken == string(componentProperty) {
			result = append(result, &cb.Properties[i])
		}
	}
	return result
}

// HasProperty returns true if a component property is in the component.
func (cb *ComponentBase) HasProperty(componentProperty ComponentProperty) bool {
	return cb.GetProperty(componentProperty) != nil
}

func (cb *ComponentBase) serializeThis(writer io.Writer, componentType ComponentType, serialConfig *SerializationConfiguration) error {
	if _, err := io.WriteString(writer, "BEGIN:"+string(componentType)+serialConfig.NewLine); err != nil {
		return err
	}
	for _, p := range cb.Properties {
		if err := p.serialize(writer, serialConfig); err != nil {
			return err
		}
	}
	for _, c := range cb.Components {
		if err := c.SerializeTo(writer, serialConfig); err != nil {
			return err
		}
	}
	_, err := io.WriteString(writer, "END:"+string(componentType)+serialConfig.NewLine)
	return err
}

type VEvent struct {
	ComponentBase
}

func (event *VEvent) SerializeTo(w io.Writer, serialConfig *SerializationConfiguration) error {
	return event.ComponentBase.serializeThis(w, ComponentVEvent, serialConfig)
}

func (event *VEvent) Serialize(ops ...any) string {
	serialConfig, err := parseSerializeOps(ops)
	if err != nil {
		return ""
	}
	b := &strings.Builder{}
	_ = event.SerializeTo(b, serialConfig)
	return b.String()
}

// RawComponent is a pre-rendered component, such as a VTIMEZONE block coming
// from the time zone database, kept as text and written out unchanged apart
// from line endings.
type RawComponent struct {
	Type ComponentType
	Text string
}

func (rc *RawComponent) IsEmpty() bool {
	return rc.Text == ""
}

func (rc *RawComponent) Release() {
	rc.Text = ""
}

func (rc *RawComponent) SerializeTo(w io.Writer, serialConfig *SerializationConfiguration) error {
	text := strings.ReplaceAll(strings.TrimSpace(rc.Text), "\r\n", "\n")
	if text == "" {
		return nil
	}
	for _, l := range strings.Split(text, "\n") {
		if _, err := io.WriteString(w, l+serialConfig.NewLine); err != nil {
			return err
		}
	}
	return nil
}
