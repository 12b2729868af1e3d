package idx

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ID is the canonical lowercase UUID string used for accounts and quiz
// instances.
type ID string

// Zero represents the zero value ID, don't use this unless its a placeholder.
const Zero ID = ""

// ErrInvalid reports a malformed UUID string.
var ErrInvalid = errors.New("idx: invalid uuid")

// New returns a fresh random (v4) ID.
func New() ID {
	return ID(uuid.NewString())
}

// Parse parses a UUID string into its canonical form. Braced and urn forms
// are accepted by uuid.Parse but normalised here.
func Parse(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, ErrInvalid
	}

	u, err := uuid.Parse(s)
	if err != nil {
		return Zero, ErrInvalid
	}

	return ID(u.String()), nil
}

// MustParse parses or panics. Useful for hard-coded IDs in tests.
func MustParse(s string) ID {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

// IsZero reports whether id is the zero value.
func (id ID) IsZero() bool { return id == Zero }

// String returns the canonical string form.
func (id ID) String() string { return string(id) }
