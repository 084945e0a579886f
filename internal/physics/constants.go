package physics

const (
	// MinLookDirection is the shortest horizontal direction a look rotation is
	// built from. Anything shorter has no defined heading.
	MinLookDirection = 1e-6

	// SlerpDotThreshold flips the target quaternion onto the near hemisphere
	// when the dot product falls below it, keeping interpolation on the short arc.
	SlerpDotThreshold = 0.0

	VectorTolerance = 1e-9
)

var (
	WorldUp      = [3]float64{0, 1, 0}
	WorldForward = [3]float64{0, 0, 1}
)
