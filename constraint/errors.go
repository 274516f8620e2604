package constraint

import "github.com/pkg/errors"

var (
	// ErrNoConvergence indicates the iteration budget ran out with the
	// total error still above tolerance. The accompanying result carries
	// the final iterate.
	ErrNoConvergence = errors.New("constraint solver did not converge")

	// ErrUnsupported indicates an enabled constraint has a kind this
	// solver cannot evaluate.
	ErrUnsupported = errors.New("unsupported constraint kind")

	// ErrDegenerate indicates a constraint's geometry leaves its
	// adjustment direction undefined, such as a distance constraint
	// between coincident points.
	ErrDegenerate = errors.New("degenerate constraint geometry")

	// ErrBadPointIndex indicates a constraint references a point index
	// outside the supplied point list.
	ErrBadPointIndex = errors.New("constraint references point outside the point list")

	// ErrBadWeight indicates a constraint weight is not positive and
	// finite.
	ErrBadWeight = errors.New("constraint weight must be positive and finite")
)
