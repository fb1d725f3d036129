package ics

import (
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

type BaseProperty struct {
	IANAToken      string
	ICalParameters []KeyValues
	Value          string
}

type PropertyParameter interface {
	KeyValue(s ...interface{}) (string, []string)
}

type KeyValues struct {
	Key   string
	Value []string
}

func (kv *KeyValues) KeyValue(s ...interface{}) (string, []string) {
	return kv.Key, kv.Value
}

func WithCN(cn string) PropertyParameter {
	return &KeyValues{
		Key:   string(ParameterCn),
		Value: []string{cn},
	}
}

func WithValue(kind ValueDataType) PropertyParameter {
	return &KeyValues{
		Key:   string(ParameterValue),
		Value: []string{string(kind)},
	}
}

func WithRSVP(b bool) PropertyParameter {
	return &KeyValues{
		Key:   string(ParameterRsvp),
		Value: []string{strings.ToUpper(strconv.FormatBool(b))},
	}
}

// WithTZID attaches the time zone identifier a local DATE-TIME value is
// expressed in (RFC 5545 section 3.2.19).
func WithTZID(tzid string) PropertyParameter {
	return &KeyValues{
		Key:   string(ParameterTzid),
		Value: []string{tzid},
	}
}

func WithPMToken(token string) PropertyParameter {
	return &KeyValues{
		Key:   string(ParameterXPMToken),
		Value: []string{token},
	}
}

// Parameter returns the values of the first parameter named key.
func (property *BaseProperty) Parameter(key Parameter) ([]string, bool) {
	for _, kv := range property.ICalParameters {
		if kv.Key == string(key) {
			return kv.Value, true
		}
	}
	return nil, false
}

// setParameter replaces an existing parameter in place so the original
// position in the content line is kept.
func (property *BaseProperty) setParameter(k string, v []string) {
	for i := range property.ICalParameters {
		if property.ICalParameters[i].Key == k {
			property.ICalParameters[i].Value = v
			return
		}
	}
	property.ICalParameters = append(property.ICalParameters, KeyValues{Key: k, Value: v})
}

func trimUT8StringUpTo(maxLength int, s string) string {
	length := 0
	for _, r := range s {
		newLength := length + utf8.RuneLen(r)
		if newLength > maxLength {
			break
		}
		length = newLength
	}
	return s[:length]
}

func (property *BaseProperty) contentLine() string {
	b := &strings.Builder{}
	b.WriteString(property.IANAToken)
	for _, kv := range property.ICalParameters {
		b.WriteString(";")
		b.WriteString(kv.Key)
		b.WriteString("=")
		for vi, v := range kv.Value {
			if vi > 0 {
				b.WriteString(",")
			}
			b.WriteString(quoteParameterValue(Parameter(kv.Key), v))
		}
	}
	b.WriteString(":")
	b.WriteString(property.Value)
	return b.String()
}

// quoteParameterValue wraps values containing COLON, SEMICOLON or COMMA in
// DQUOTEs (RFC 5545 section 3.2). DQUOTE itself may not appear in a
// parameter value, quoted or not, so it is dropped.
func quoteParameterValue(p Parameter, v string) string {
	v = strings.ReplaceAll(v, `"`, "")
	if p.IsQuoted() || strings.ContainsAny(v, ";:,") {
		return `"` + v + `"`
	}
	return v
}

func (property *BaseProperty) serialize(w io.Writer, serialConfig *SerializationConfiguration) error {
	r := property.contentLine()
	maxLength := serialConfig.PropertyMaxLength
	if maxLength > 1 && len(r) > maxLength {
		l := trimUT8StringUpTo(maxLength, r)
		if _, err := io.WriteString(w, l+serialConfig.NewLine); err != nil {
			return err
		}
		r = r[len(l):]

		for len(r) > maxLength-1 {
			l := trimUT8StringUpTo(maxLength-1, r)
			if _, err := io.WriteString(w, " "+l+serialConfig.NewLine); err != nil {
				return err
			}
			r = r[len(l):]
		}
		r = " " + r
	}
	_, err := io.WriteString(w, r+serialConfig.NewLine)
	return err
}

type IANAProperty struct {
	BaseProperty
}

var textEscaper = strings.NewReplacer(
	`\`, `\\`,
	"\r\n", `\n`,
	"\n", `\n`,
	`;`, `\;`,
	`,`, `\,`,
)

func ToText(s string) string {
	// Some special characters for iCalendar format should be escaped while
	// setting a value of a property with a TEXT type.
	return textEscaper.Replace(s)
}
