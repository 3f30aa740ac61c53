// Package pagination provides the shared --limit/--offset/--page/--page-size
// and --sort handling for commands that list computed rows.
//
// This package contains:
//   - PaginationParams: CLI flag parsing and validation
//   - PaginationMeta: metadata for paginated JSON output
//   - RowSorter: sort expression validation against the engine's sort keys
package pagination
