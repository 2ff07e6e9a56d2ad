package object

import "strconv"

type String struct {
	value string
}

// NewString creates a String.
func NewString(s string) *String {
	return &String{value: s}
}

func (s *String) sealed() {}

func (s *String) Type() Type {
	return STRING
}

func (s *String) Value() string {
	return s.value
}

// Inspect returns the quoted form of the string.
func (s *String) Inspect() string {
	return strconv.Quote(s.value)
}

// String returns the raw string value.
func (s *String) String() string {
	return s.value
}

func (s *String) Interface() any {
	return s.value
}

func (s *String) Equals(other Object) bool {
	o, ok := other.(*String)
	return ok && o.value == s.value
}

// Concat returns a new String holding s followed by other.
func (s *String) Concat(other *String) *String {
	return NewString(s.value + other.value)
}

type Unit struct{}

func (u *Unit) sealed() {}

func (u *Unit) Type() Type {
	return UNIT
}

func (u *Unit) Inspect() string {
	return "()"
}

func (u *Unit) String() string {
	return u.Inspect()
}

func (u *Unit) Interface() any {
	return nil
}

func (u *Unit) Equals(other Object) bool {
	_, ok := other.(*Unit)
	return ok
}
