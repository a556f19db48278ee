package types

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ValueKind identifies which variant a Value holds.
type ValueKind int

const (
	// IntKind is a 64-bit signed integer value
	IntKind ValueKind = iota
	// TextKind is a UTF-8 string value
	TextKind
)

func (k ValueKind) String() string {
	switch k {
	case IntKind:
		return "INT"
	case TextKind:
		return "TEXT"
	}
	return fmt.Sprintf("ValueKind(%d)", int(k))
}

// MarshalJSON encodes the kind as its SQL type name.
func (k ValueKind) MarshalJSON() ([]byte, error) {
	switch k {
	case IntKind, TextKind:
		return json.Marshal(k.String())
	}
	return nil, fmt.Errorf("unknown value kind %d", int(k))
}

// UnmarshalJSON decodes a SQL type name back into a kind.
func (k *ValueKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "INT":
		*k = IntKind
	case "TEXT":
		*k = TextKind
	default:
		return fmt.Errorf("unknown column type %q", s)
	}
	return nil
}

// Value is a tagged union of an integer or a text value. Only the field
// matching Kind is meaningful; keeping both fields inline leaves Value
// comparable, so it can key the constraint index sets directly.
type Value struct {
	Kind ValueKind
	Int  int64
	Text string
}

// NewInt creates an integer value.
func NewInt(v int64) Value {
	return Value{Kind: IntKind, Int: v}
}

// NewText creates a text value.
func NewText(s string) Value {
	return Value{Kind: TextKind, Text: s}
}

// Equal reports structural equality. Values of different kinds are never
// equal; there is no implicit coercion between INT and TEXT.
func (v Value) Equal(o Value) bool {
	return v == o
}

func (v Value) String() string {
	switch v.Kind {
	case IntKind:
		return strconv.FormatInt(v.Int, 10)
	case TextKind:
		return v.Text
	}
	return fmt.Sprintf("Value(%d)", int(v.Kind))
}

type jsonValue struct {
	Int  *int64  `json:"int,omitempty"`
	Text *string `json:"text,omitempty"`
}

// MarshalJSON encodes the value as a one-key object, {"int": n} or
// {"text": s}, so the durable form is self-describing.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case IntKind:
		return json.Marshal(jsonValue{Int: &v.Int})
	case TextKind:
		return json.Marshal(jsonValue{Text: &v.Text})
	}
	return nil, fmt.Errorf("unknown value kind %d", int(v.Kind))
}

// UnmarshalJSON decodes the tagged form. Exactly one variant key must be
// present; anything else surfaces as corruption at the store boundary.
func (v *Value) UnmarshalJSON(data []byte) error {
	var jv jsonValue
	if err := json.Unmarshal(data, &jv); err != nil {
		return err
	}
	switch {
	case jv.Int != nil && jv.Text == nil:
		*v = NewInt(*jv.Int)
	case jv.Text != nil && jv.Int == nil:
		*v = NewText(*jv.Text)
	default:
		return fmt.Errorf("value %s is not a tagged int or text", string(data))
	}
	return nil
}

// Column describes one column of a table schema, including its uniqueness
// constraints. Primary implies unique.
type Column struct {
	Name    string    `json:"name"`
	Kind    ValueKind `json:"kind"`
	Primary bool      `json:"primary,omitempty"`
	Unique  bool      `json:"unique,omitempty"`
}

// Constrained reports whether the column carries a uniqueness constraint and
// therefore owns an index set.
func (c Column) Constrained() bool {
	return c.Primary || c.Unique
}

// Schema is the ordered column list of a table. Order defines the positional
// row layout and the projection order for SELECT *.
type Schema []Column

// ColumnIndex returns the position of the named column, or -1.
func (s Schema) ColumnIndex(name string) int {
	for i, c := range s {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Names returns the column names in schema order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = c.Name
	}
	return names
}
