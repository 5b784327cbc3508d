package floorplan

import (
	"fmt"

	"github.com/askeland/pinplace/pkg/assign"
)

// Cost is the estimated wirelength of placing a pin at a candidate
// position. It is either a finite value or infeasible, meaning "this
// position is not acceptable for this pin".
//
// The numeric sentinel only exists at the solver boundary (see
// [Cost.Sentinel]); everything above it must not do arithmetic on
// infeasible values.
type Cost struct {
	value      int64
	infeasible bool
}

// Infeasible is the Cost marking an unacceptable pin/position pairing.
var Infeasible = Cost{infeasible: true}

// Finite returns a feasible cost with the given value.
func Finite(v int64) Cost { return Cost{value: v} }

// IsInfeasible reports whether the cost marks an unacceptable pairing.
func (c Cost) IsInfeasible() bool { return c.infeasible }

// Value returns the finite cost value. It is only meaningful when
// IsInfeasible is false; infeasible costs return 0.
func (c Cost) Value() int64 {
	if c.infeasible {
		return 0
	}
	return c.value
}

// Add returns the sum of two costs. The sum saturates: if either operand
// is infeasible, so is the result.
func (c Cost) Add(o Cost) Cost {
	if c.infeasible || o.infeasible {
		return Infeasible
	}
	return Cost{value: c.value + o.value}
}

// Sentinel converts the cost to the numeric solver's representation:
// the finite value, or [assign.Infeasible].
func (c Cost) Sentinel() int64 {
	if c.infeasible {
		return assign.Infeasible
	}
	return c.value
}

// String formats the cost for diagnostics.
func (c Cost) String() string {
	if c.infeasible {
		return "infeasible"
	}
	return fmt.Sprintf("%d", c.value)
}

// Coster is the external cost oracle. Cost must be deterministic and free
// of side effects; the matrix builder calls it once per (pin, slot) pair,
// which can be many thousands of calls per section.
type Coster interface {
	// Cost scores placing the pin with the given table index at pos.
	Cost(pin int, pos Point) Cost
}

// CosterFunc adapts a plain function to the Coster interface.
type CosterFunc func(pin int, pos Point) Cost

// Cost calls f.
func (f CosterFunc) Cost(pin int, pos Point) Cost { return f(pin, pos) }
