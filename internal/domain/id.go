package domain

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is an opaque identifier. Callers may send it as a JSON string or a
// JSON number; it is written back in the same form it was read.
type ID struct {
	value   string
	numeric bool
}

func StringID(s string) ID {
	return ID{value: s}
}

func IntID(n int64) ID {
	return ID{value: strconv.FormatInt(n, 10), numeric: true}
}

func (id ID) String() string {
	return id.value
}

func (id ID) IsZero() bool {
	return id.value == ""
}

// IsNumber reports whether the id is written back as a JSON number.
func (id ID) IsNumber() bool {
	return id.numeric
}

// AsNumber returns the id marked to be written back as a JSON number.
func (id ID) AsNumber() ID {
	id.numeric = true
	return id
}

// Int64 reports the identifier as an integer when it has one.
func (id ID) Int64() (int64, bool) {
	n, err := strconv.ParseInt(id.value, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (id ID) MarshalJSON() ([]byte, error) {
	if id.IsZero() {
		return []byte("null"), nil
	}
	if id.numeric {
		return []byte(id.value), nil
	}
	return json.Marshal(id.value)
}

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ID{}
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID{value: s}
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or a number")
	}
	*id = ID{value: n.String(), numeric: true}
	return nil
}

func (id *ID) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*id = ID{}
	case int64:
		*id = IntID(v)
	case string:
		*id = ID{value: v}
	case []byte:
		*id = ID{value: string(v)}
	default:
		return fmt.Errorf("cannot scan %T into domain.ID", src)
	}
	return nil
}

func (id ID) Value() (driver.Value, error) {
	return id.value, nil
}
