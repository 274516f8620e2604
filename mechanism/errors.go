package mechanism

import "github.com/pkg/errors"

// NewInvalidLengthError returns an error indicating a link was given a
// length that is zero, negative, or not finite.
func NewInvalidLengthError(link string, length float64) error {
	return errors.Errorf("link %q must have a positive finite length, got %v", link, length)
}

// NewUnsupportedTypeError returns an error for mechanism types that are
// recognized but have no constructor yet.
func NewUnsupportedTypeError(mechType Type) error {
	return errors.Errorf("mechanism type %q is not supported yet", mechType)
}

// NewUnknownTypeError returns an error for mechanism types this package has
// never heard of.
func NewUnknownTypeError(mechType Type) error {
	return errors.Errorf("unknown mechanism type %q", mechType)
}

// NewDuplicateJointError returns an error indicating two joints in one
// mechanism share a name.
func NewDuplicateJointError(name string) error {
	return errors.Errorf("duplicate joint name %q", name)
}

// NewUnknownJointError returns an error indicating a link references a joint
// that does not exist in the mechanism.
func NewUnknownJointError(link, joint string) error {
	return errors.Errorf("link %q references unknown joint %q", link, joint)
}
