package models

import (
	"bytes"
	"encoding/json"
)

// NullableString is a JSON string field that records whether it was present.
type NullableString struct {
	Set   bool
	Value *string
}

// StringValue builds a present, non-null NullableString.
func StringValue(v string) NullableString {
	return NullableString{Set: true, Value: &v}
}

// Null builds a present, explicitly null NullableString.
func Null() NullableString {
	return NullableString{Set: true}
}

// UnmarshalJSON implements json.Unmarshaler. It only runs when the key is present.
func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n NullableString) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

// ValidationValue exposes the underlying value to struct validators; nil when
// absent or null so that omitempty rules skip it.
func (n NullableString) ValidationValue() any {
	if n.Value == nil {
		return nil
	}
	return *n.Value
}
