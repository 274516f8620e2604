package mechanism

import "github.com/golang/geo/r3"

// FourBar is the classic planar four-bar linkage: ground, input (crank),
// coupler, and output (rocker) links joined in a closed loop. The ground
// link lies on the x axis from the origin to (groundLength, 0, 0).
type FourBar struct {
	groundLength  float64
	inputLength   float64
	couplerLength float64
	outputLength  float64
	joints        []Joint
	links         []Link
}

// NewFourBar constructs a four-bar linkage from its four link lengths.
func NewFourBar(groundLength, inputLength, couplerLength, outputLength float64) (*FourBar, error) {
	err := validateLengths(map[string]float64{
		"ground":  groundLength,
		"input":   inputLength,
		"coupler": couplerLength,
		"output":  outputLength,
	})
	if err != nil {
		return nil, err
	}

	groundStart := defaultJoint("ground_start", FixedJoint)
	inputJoint := defaultJoint("input_joint", RevoluteJoint)
	couplerJoint := defaultJoint("coupler_joint", RevoluteJoint)
	groundEnd := defaultJoint("ground_end", FixedJoint)
	groundEnd.Position = r3.Vector{X: groundLength}

	fb := &FourBar{
		groundLength:  groundLength,
		inputLength:   inputLength,
		couplerLength: couplerLength,
		outputLength:  outputLength,
		joints:        []Joint{groundStart, inputJoint, couplerJoint, groundEnd},
		links: []Link{
			defaultLink("ground", groundLength, "ground_start", "ground_end"),
			defaultLink("input", inputLength, "ground_start", "input_joint"),
			defaultLink("coupler", couplerLength, "input_joint", "coupler_joint"),
			defaultLink("output", outputLength, "coupler_joint", "ground_end"),
		},
	}
	if err := validateTopology(fb.joints, fb.links); err != nil {
		return nil, err
	}
	return fb, nil
}

// Type returns TypeFourBar.
func (fb *FourBar) Type() Type {
	return TypeFourBar
}

// Joints returns copies of the four joint definitions in the order
// ground_start, input_joint, coupler_joint, ground_end.
func (fb *FourBar) Joints() []Joint {
	joints := make([]Joint, len(fb.joints))
	copy(joints, fb.joints)
	return joints
}

// Links returns copies of the link definitions in the order ground, input,
// coupler, output.
func (fb *FourBar) Links() []Link {
	links := make([]Link, len(fb.links))
	copy(links, fb.links)
	return links
}

// GroundLength returns the fixed frame length.
func (fb *FourBar) GroundLength() float64 {
	return fb.groundLength
}

// InputLength returns the driving crank length.
func (fb *FourBar) InputLength() float64 {
	return fb.inputLength
}

// CouplerLength returns the coupler length.
func (fb *FourBar) CouplerLength() float64 {
	return fb.couplerLength
}

// OutputLength returns the output rocker length.
func (fb *FourBar) OutputLength() float64 {
	return fb.outputLength
}
