package kernel

import (
	"fmt"

	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating the zero UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID or parsed from a non-nil value")

// UUID is an immutable identifier wrapping github.com/google/uuid.
//
// It implements encoding.TextMarshaler and encoding.TextUnmarshaler so it can be
// used directly in JSON payloads and query parameters.
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random (version 4) identifier.
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses the canonical, braced, urn and hyphen-less forms.
// The nil UUID is rejected.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("uuid", fmt.Errorf("%q: %w", s, err))
	}
	return UUIDFrom(id)
}

// UUIDFrom wraps an already parsed uuid, e.g. a column read by gorm.
func UUIDFrom(id uuid.UUID) (UUID, error) {
	u := UUID{id: id}
	if err := u.Validate(); err != nil {
		return UUID{}, err
	}
	return u, nil
}

// MustUUIDFromString is UUIDFromString for constants and fixtures; it panics on bad input.
func MustUUIDFromString(s string) UUID {
	u, err := UUIDFromString(s)
	if err != nil {
		panic(err)
	}
	return u
}

// String returns the canonical hyphenated form.
func (u UUID) String() string {
	return u.id.String()
}

// Raw returns the underlying google uuid for persistence adapters.
func (u UUID) Raw() uuid.UUID {
	return u.id
}

// IsEqual reports whether both identifiers hold the same value.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate fails for the zero value.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (u UUID) MarshalText() ([]byte, error) {
	return []byte(u.id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It rejects the nil UUID.
func (u *UUID) UnmarshalText(text []byte) error {
	parsed, err := UUIDFromString(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
