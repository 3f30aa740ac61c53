package catalog

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors returned by the loader. Compare with errors.Is.
var (
	// ErrUnsupportedFormat indicates a catalog file extension the loader cannot parse.
	ErrUnsupportedFormat = constError("unsupported catalog format")

	// ErrSchemaVersion indicates a schema_version outside the supported range.
	ErrSchemaVersion = constError("unsupported catalog schema version")

	// ErrEmptyCatalog indicates a document that yielded no usable materials.
	ErrEmptyCatalog = constError("catalog contains no usable materials")
)
