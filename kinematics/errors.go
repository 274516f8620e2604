package kinematics

import "github.com/pkg/errors"

var (
	// ErrUnreachable indicates the driving input places joints outside the
	// geometrically possible range for the mechanism's link lengths.
	ErrUnreachable = errors.New("unreachable configuration")

	// ErrSingular indicates a solve was attempted at or near a singular
	// configuration where a formula denominator vanishes.
	ErrSingular = errors.New("singular configuration")

	// ErrNotImplemented indicates the requested analysis has no derivation
	// for this mechanism type.
	ErrNotImplemented = errors.New("no closed-form solution implemented")
)
