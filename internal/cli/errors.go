package cli

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors returned by commands; compare with errors.Is.
var (
	errUnknownMaterial = constError("unknown material")

	// ErrCatalogIssues is returned by `catalog validate --strict` when any
	// record was dropped or adjusted.
	ErrCatalogIssues = constError("catalog has issues")

	// ErrNotTerminal is returned by `tui` when stdout is not a terminal.
	ErrNotTerminal = constError("the terminal UI needs an interactive terminal")
)
