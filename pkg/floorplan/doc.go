// Package floorplan models the chip-boundary geometry the pin placer
// operates on: slots, sections, pins, pin groups, and the die core.
//
// The package is a data model with light bookkeeping. Candidate slot
// generation, net-length estimation, and the assignment optimization
// itself live elsewhere; this package only defines the records they share
// and the two external contracts they consume:
//
//   - [Coster], the cost oracle scoring a pin at a candidate position
//   - [Reflector], the pure geometric transform for mirrored pin pairs
//
// # Ownership
//
// Slots and pins are owned by the caller (typically loaded by pkg/design).
// The optimizer in pkg/ioplace reads slot position/layer/blocked state and
// pin metadata, and is the only writer of slot Used/Blocked flags and pin
// placement fields. Sections are created per optimization pass and
// discarded after it.
//
// # Units
//
// All coordinates are integer database units (DBU). Layers are routing
// layer numbers, 1-based from the bottom of the stack.
package floorplan
