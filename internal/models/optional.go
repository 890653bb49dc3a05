package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Optional marks a value as explicitly provided. JSON null and a missing key
// both leave it unset, so "false" and "0" stay distinguishable from "absent".
type Optional[T any] struct {
	Value T
	Set   bool
}

// Some returns a set Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Get returns the value and whether it was provided.
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Set
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = Optional[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		// A quoted scalar ("100", "true") is retried as its unquoted form.
		var quoted string
		if json.Unmarshal(data, &quoted) != nil {
			return err
		}
		quoted = strings.TrimSpace(quoted)
		if quoted == "" {
			*o = Optional[T]{}
			return nil
		}
		if json.Unmarshal([]byte(quoted), &v) != nil {
			return err
		}
	}
	*o = Some(v)
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// FlexString holds a numeric-like field that may arrive as a JSON string or
// a JSON number. Falsy inputs (null, "", 0, false) decode to the empty string.
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*s = ""
		return nil
	}

	switch data[0] {
	case 'n':
		*s = ""
		return nil
	case '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	case 't':
		*s = "true"
		return nil
	case 'f':
		*s = ""
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("unsupported value %s: %w", string(data), err)
	}
	if f, err := n.Float64(); err == nil && f == 0 {
		*s = ""
		return nil
	}
	*s = FlexString(n.String())
	return nil
}

// String returns the canonical string form.
func (s FlexString) String() string {
	return string(s)
}

// IsZero reports whether the field is absent.
func (s FlexString) IsZero() bool {
	return s == ""
}

// Keywords is a comma-joined keyword string. A JSON array of strings is
// accepted as well and joined with ", ".
type Keywords string

func (k *Keywords) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		parts := make([]string, 0, len(list))
		for _, item := range list {
			if item = strings.TrimSpace(item); item != "" {
				parts = append(parts, item)
			}
		}
		*k = Keywords(strings.Join(parts, ", "))
		return nil
	}

	var v *string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v == nil {
		*k = ""
		return nil
	}
	*k = Keywords(*v)
	return nil
}

// flexInt decodes an integer sent as a JSON number or a quoted number.
// null and "" decode to 0.
type flexInt int

func (n *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		data = []byte(strings.TrimSpace(s))
		if len(data) == 0 {
			*n = 0
			return nil
		}
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("invalid integer %s", string(data))
	}
	if i, err := num.Int64(); err == nil {
		*n = flexInt(i)
		return nil
	}
	f, err := num.Float64()
	if err != nil || f != math.Trunc(f) {
		return fmt.Errorf("invalid integer %s", string(data))
	}
	*n = flexInt(f)
	return nil
}
