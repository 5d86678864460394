package sim

import (
	"fmt"
	"math"

	"github.com/cockroachdb/errors"
)

// DiningTime is an inclusive range of dining durations, in simulated time
// units. It is an immutable value and may be shared by any number of people.
type DiningTime struct {
	lower float64
	upper float64
}

// NewDiningTime returns the range [lower, upper]. It fails with
// ErrInvalidRange when lower > upper or either bound is negative, NaN or
// infinite.
func NewDiningTime(lower, upper float64) (DiningTime, error) {
	if !validBound(lower) || !validBound(upper) || lower > upper {
		return DiningTime{}, errors.Wrapf(ErrInvalidRange,
			"lower %g, upper %g", lower, upper)
	}
	return DiningTime{lower: lower, upper: upper}, nil
}

func validBound(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// Lower returns the lower bound.
func (d DiningTime) Lower() float64 { return d.lower }

// Upper returns the upper bound.
func (d DiningTime) Upper() float64 { return d.upper }

// Interpolate maps a uniform sample u in [0, 1) onto the range. When both
// bounds are equal the result is that constant regardless of u.
func (d DiningTime) Interpolate(u float64) float64 {
	return d.lower + u*(d.upper-d.lower)
}

func (d DiningTime) String() string {
	return fmt.Sprintf("[%g, %g]", d.lower, d.upper)
}
