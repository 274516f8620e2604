package mechanism

import "github.com/golang/geo/r3"

// SliderCrank converts crank rotation into linear slider travel through a
// connecting rod. The crank center sits at the origin and the slider runs
// along the positive x axis.
type SliderCrank struct {
	crankLength         float64
	connectingRodLength float64
	joints              []Joint
	links               []Link
}

// NewSliderCrank constructs a slider-crank from its crank and connecting
// rod lengths. A rod shorter than the crank is geometrically legal but only
// reachable for part of the crank cycle; solvers report those failures per
// call rather than at construction.
func NewSliderCrank(crankLength, connectingRodLength float64) (*SliderCrank, error) {
	err := validateLengths(map[string]float64{
		"crank":          crankLength,
		"connecting_rod": connectingRodLength,
	})
	if err != nil {
		return nil, err
	}

	crankCenter := defaultJoint("crank_center", FixedJoint)
	crankPin := defaultJoint("crank_pin", RevoluteJoint)
	slider := defaultJoint("slider", PrismaticJoint)
	slider.Axis = r3.Vector{X: 1}

	sc := &SliderCrank{
		crankLength:         crankLength,
		connectingRodLength: connectingRodLength,
		joints:              []Joint{crankCenter, crankPin, slider},
		links: []Link{
			defaultLink("crank", crankLength, "crank_center", "crank_pin"),
			defaultLink("connecting_rod", connectingRodLength, "crank_pin", "slider"),
		},
	}
	if err := validateTopology(sc.joints, sc.links); err != nil {
		return nil, err
	}
	return sc, nil
}

// Type returns TypeSliderCrank.
func (sc *SliderCrank) Type() Type {
	return TypeSliderCrank
}

// Joints returns copies of the joint definitions in the order crank_center,
// crank_pin, slider.
func (sc *SliderCrank) Joints() []Joint {
	joints := make([]Joint, len(sc.joints))
	copy(joints, sc.joints)
	return joints
}

// Links returns copies of the link definitions in the order crank,
// connecting_rod.
func (sc *SliderCrank) Links() []Link {
	links := make([]Link, len(sc.links))
	copy(links, sc.links)
	return links
}

// CrankLength returns the crank length.
func (sc *SliderCrank) CrankLength() float64 {
	return sc.crankLength
}

// ConnectingRodLength returns the connecting rod length.
func (sc *SliderCrank) ConnectingRodLength() float64 {
	return sc.connectingRodLength
}
