package greenops

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors; compare with errors.Is.
var (
	// ErrNegativeValue indicates a negative carbon mass passed to Calculate.
	ErrNegativeValue = constError("negative carbon value")

	// ErrCalculationOverflow indicates a non-finite input or result.
	ErrCalculationOverflow = constError("calculation overflow")

	// ErrUnknownMaterial indicates a material ID with no computed row.
	ErrUnknownMaterial = constError("material not in row set")

	// ErrNoBaseline indicates savings were requested without a baseline row.
	ErrNoBaseline = constError("no baseline available")
)
