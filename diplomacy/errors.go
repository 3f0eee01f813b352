package diplomacy

import "fmt"

// MalformedInputError reports a programmer error in the caller's input,
// such as an order document that cannot be parsed. The resolve functions
// in this package never return it and do not check their inputs for
// malformed data: an order for a unit not on the board is recorded as an
// illegal order, and a board state that violates a core invariant is
// adjudicated as given.
type MalformedInputError struct {
	Reason string
}

func (e *MalformedInputError) Error() string {
	return "malformed input: " + e.Reason
}

// InvariantViolationError reports that the adjudicator itself would have
// produced (or found itself handed) a state where a core invariant cannot
// hold. This is always a defect in the engine or a caller that bypassed
// validation; treat it as fatal. No function in this package returns it.
type InvariantViolationError struct {
	Invariant string
	Reason    string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("invariant %s violated: %s", e.Invariant, e.Reason)
}

// IllegalOrderError describes why a submitted order failed static
// well-formedness checks against the board. It is never returned as a Go
// error from the public resolve functions — illegal orders are data,
// recorded in Diagnostics.IllegalOrders and replaced with Hold — but it
// implements error so callers can format or log it uniformly.
type IllegalOrderError struct {
	Order   Order
	Message string
}

func (e *IllegalOrderError) Error() string {
	return fmt.Sprintf("illegal order %s: %s", e.Order.Describe(), e.Message)
}
