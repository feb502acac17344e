package dynamic_amm

import "errors"

var (
	// ErrConvergenceFailure is returned when the stable-swap solve does not
	// converge within CurveMaxIterations.
	ErrConvergenceFailure = errors.New("swap curve did not converge")

	// ErrReserveExceeded is returned when a computed swap output would meet
	// or exceed the output-side reserve.
	ErrReserveExceeded = errors.New("swap output exceeds reserve")

	// ErrUnsupportedCurve is returned for an unknown curve variant.
	ErrUnsupportedCurve = errors.New("unsupported curve type")
)
