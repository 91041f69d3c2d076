package common

import "math"

const (
	DefaultFPS             = 60
	DefaultTransitionSteps = 100
	DefaultGravity         = 0.4
	DisplaySize            = 700
	SideMargin             = 50
)

// FloorDiv mirrors integer floor division for non-integral operands.
func FloorDiv(a, b float64) float64 {
	return math.Floor(a / b)
}
