package knit

import (
	"encoding/json"
	"fmt"
)

// MetaKind discriminates the value held by a MetaValue.
type MetaKind int

const (
	MetaString MetaKind = iota
	MetaNumber
	MetaBool
	MetaStrings
)

// MetaValue holds a single typed metadata value attached to a component.
// The zero value is an empty string.
type MetaValue struct {
	kind MetaKind
	str  string
	num  float64
	flag bool
	list []string
}

// Meta maps metadata keys to typed values.
type Meta map[string]MetaValue

// String builds a string metadata value.
func String(v string) MetaValue {
	return MetaValue{kind: MetaString, str: v}
}

// Number builds a numeric metadata value.
func Number(v float64) MetaValue {
	return MetaValue{kind: MetaNumber, num: v}
}

// Bool builds a boolean metadata value.
func Bool(v bool) MetaValue {
	return MetaValue{kind: MetaBool, flag: v}
}

// Strings builds a string-list metadata value.
func Strings(v ...string) MetaValue {
	list := make([]string, len(v))
	copy(list, v)
	return MetaValue{kind: MetaStrings, list: list}
}

// Kind returns the discriminator of the value.
func (m MetaValue) Kind() MetaKind {
	return m.kind
}

// AsString returns the string payload when the value holds one.
func (m MetaValue) AsString() (string, bool) {
	return m.str, m.kind == MetaString
}

// AsNumber returns the numeric payload when the value holds one.
func (m MetaValue) AsNumber() (float64, bool) {
	return m.num, m.kind == MetaNumber
}

// AsBool returns the boolean payload when the value holds one.
func (m MetaValue) AsBool() (bool, bool) {
	return m.flag, m.kind == MetaBool
}

// AsStrings returns the list payload when the value holds one.
func (m MetaValue) AsStrings() ([]string, bool) {
	if m.kind != MetaStrings {
		return nil, false
	}
	out := make([]string, len(m.list))
	copy(out, m.list)
	return out, true
}

// MarshalJSON emits the bare payload without a kind wrapper.
func (m MetaValue) MarshalJSON() ([]byte, error) {
	switch m.kind {
	case MetaString:
		return json.Marshal(m.str)
	case MetaNumber:
		return json.Marshal(m.num)
	case MetaBool:
		return json.Marshal(m.flag)
	case MetaStrings:
		if m.list == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(m.list)
	}
	return nil, fmt.Errorf("unknown meta kind %d", m.kind)
}

// UnmarshalJSON accepts a bare string, number, bool or string list.
func (m *MetaValue) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*m = String(str)
		return nil
	}
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*m = Number(num)
		return nil
	}
	var flag bool
	if err := json.Unmarshal(data, &flag); err == nil {
		*m = Bool(flag)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*m = Strings(list...)
		return nil
	}
	return fmt.Errorf("unsupported metadata value %s", string(data))
}

// UnmarshalYAML accepts the same shapes as UnmarshalJSON from YAML config.
func (m *MetaValue) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var str string
	if err := unmarshal(&str); err == nil {
		*m = String(str)
		return nil
	}
	var num float64
	if err := unmarshal(&num); err == nil {
		*m = Number(num)
		return nil
	}
	var flag bool
	if err := unmarshal(&flag); err == nil {
		*m = Bool(flag)
		return nil
	}
	var list []string
	if err := unmarshal(&list); err == nil {
		*m = Strings(list...)
		return nil
	}
	return fmt.Errorf("unsupported metadata value")
}
