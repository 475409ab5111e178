package kernel

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// LocationMaxLength is the longest location name accepted, in runes.
const LocationMaxLength = 255

// ErrLocationIsNotConstructed is returned when a zero-value Location is used.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation constructor")

// Location is a named delivery area, e.g. "NYC". Orders are grouped by it and
// couriers list the locations they serve.
//
// Location is comparable and can be used as a map key. The zero value is
// invalid.
//
// Example:
//
//	loc, err := kernel.NewLocation("NYC")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(loc) // NYC
type Location struct { //nolint:recvcheck //using for validation
	name  string
	guard guard.ConstructorGuard
}

// NewLocation trims surrounding whitespace and validates the name.
// The name must be non-empty and at most LocationMaxLength runes.
func NewLocation(name string) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := loc.setName(name); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// MustNewLocation is NewLocation for literals known to be valid. It panics
// on an invalid name.
func MustNewLocation(name string) Location {
	loc, err := NewLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// Validate reports whether the Location was built by NewLocation.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// Name returns the normalized location name.
func (l Location) Name() string {
	return l.name
}

// IsEqual compares two locations by name.
func (l Location) IsEqual(other Location) bool {
	return l.name == other.name
}

// String implements fmt.Stringer.
func (l Location) String() string {
	return l.name
}

func (l *Location) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("location")
	}

	if n := utf8.RuneCountInString(name); n > LocationMaxLength {
		return errs.NewValueIsInvalidErrorWithCause(
			"location",
			fmt.Errorf("%d runes exceeds the limit of %d", n, LocationMaxLength),
		)
	}

	l.name = name
	return nil
}
