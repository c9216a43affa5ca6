package normalize

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// List is a string list column. It reads any stored shape through Strings
// with the comma delimiter and always writes a JSON array.
type List []string

// UnmarshalJSON accepts an array, a JSON-encoded array inside a string, a
// delimited string, or null.
func (l *List) UnmarshalJSON(data []byte) error {
	*l = List(fromRaw(data, Comma))
	return nil
}

// MarshalJSON writes a JSON array, [] for a nil list.
func (l List) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// Scan implements sql.Scanner for json/jsonb and text columns.
func (l *List) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = List{}
	case []byte:
		*l = List(fromRaw(v, Comma))
	case string:
		*l = List(fromString(v, Comma))
	default:
		return fmt.Errorf("normalize: cannot scan %T into List", src)
	}
	return nil
}

// Value implements driver.Valuer, storing the list as JSON array text.
func (l List) Value() (driver.Value, error) {
	b, err := l.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Strings returns the list as a plain slice, never nil.
func (l List) Strings() []string {
	if l == nil {
		return []string{}
	}
	return []string(l)
}

// Form selects the storage representation used by Encode.
type Form int

const (
	// FormArray keeps the native list; PostgREST json/array columns.
	FormArray Form = iota
	// FormJSON encodes the list as JSON array text.
	FormJSON
	// FormDelimited joins the list with ", ".
	FormDelimited
)

// Encode serializes list into the representation the storage layer expects.
func Encode(list []string, form Form) any {
	cleaned := clean(list)
	switch form {
	case FormJSON:
		b, _ := json.Marshal(cleaned)
		return string(b)
	case FormDelimited:
		return Join(cleaned)
	default:
		return cleaned
	}
}
