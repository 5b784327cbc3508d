package ioplace

import (
	"fmt"

	"github.com/askeland/pinplace/pkg/errors"
	"github.com/askeland/pinplace/pkg/floorplan"
)

// Severity classifies a diagnostic emitted during materialization.
type Severity int

const (
	// SeverityWarning marks a recoverable fault: the placement proceeded
	// anyway and a later pass or the caller may relocate the pin.
	SeverityWarning Severity = iota

	// SeverityError marks a fault that aborted the affected placement.
	// Other placements in the same section are unaffected.
	SeverityError
)

// String returns "warning" or "error".
func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Diagnostic is one placement fault surfaced to the caller.
type Diagnostic struct {
	Severity Severity    `json:"severity"`
	Code     errors.Code `json:"code"`
	Pin      string      `json:"pin"`
	Message  string      `json:"message"`
}

// String formats the diagnostic for log output.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s [%s] pin %s: %s", d.Severity, d.Code, d.Pin, d.Message)
}

// insufficientSpace builds the soft-infeasibility warning for a pin that
// was force-matched to a slot its cost oracle rejected.
func insufficientSpace(pin string) Diagnostic {
	return Diagnostic{
		Severity: SeverityWarning,
		Code:     errors.ErrCodeInsufficientSpace,
		Pin:      pin,
		Message:  "pin cannot be placed in the specified region; insufficient space",
	}
}

// mirrorSlotNotFound builds the geometry-inconsistency error for a
// mirrored pin whose reflected position has no exact slot. This points at
// an upstream slot-generation fault, not solver infeasibility.
func mirrorSlotNotFound(pin string, pos floorplan.Point, layer int) Diagnostic {
	return Diagnostic{
		Severity: SeverityError,
		Code:     errors.ErrCodeMirrorSlotNotFound,
		Pin:      pin,
		Message: fmt.Sprintf("mirrored position %s at layer %d is not a valid position for pin placement",
			pos, layer),
	}
}
