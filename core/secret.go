package core

const redacted = "[REDACTED]"

// Secret holds a credential, such as a box's basic-auth password, and keeps
// it out of logs. fmt verbs, JSON and text marshaling all print a redacted
// placeholder; only Expose returns the value.
//
//	pass := NewSecret(os.Getenv("MB_BASICAUTH_PASS"))
//	fmt.Println(pass)   // [REDACTED]
//	pass.Expose()       // the real value
type Secret struct {
	value string
}

// NewSecret wraps value.
func NewSecret(value string) Secret {
	return Secret{value: value}
}

// String implements fmt.Stringer.
func (s Secret) String() string {
	return redacted
}

// GoString implements fmt.GoStringer for %#v.
func (s Secret) GoString() string {
	return "core.Secret{" + redacted + "}"
}

// MarshalJSON implements json.Marshaler.
func (s Secret) MarshalJSON() ([]byte, error) {
	return []byte(`"` + redacted + `"`), nil
}

// MarshalText implements encoding.TextMarshaler, which also covers YAML.
func (s Secret) MarshalText() ([]byte, error) {
	return []byte(redacted), nil
}

// Expose returns the wrapped value. Use it only where the value is sent
// on the wire, such as an Authorization header.
func (s Secret) Expose() string {
	return s.value
}

// IsEmpty reports whether no value is held.
func (s Secret) IsEmpty() bool {
	return s.value == ""
}
