package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rshade/binderlca/internal/engine"
)

// Document is the JSON export shape.
type Document struct {
	Inputs   engine.DesignInputs `json:"inputs"`
	Baseline *engine.Baseline    `json:"baseline,omitempty"`
	BestID   string              `json:"best_id,omitempty"`
	Count    int                 `json:"count"`
	Rows     []engine.Row        `json:"rows"`
}

// NewDocument builds the export document for a computation result, using the
// full sorted set rather than the current page.
func NewDocument(res engine.Result) Document {
	doc := Document{
		Inputs: res.Inputs.Normalized(),
		BestID: res.View.BestID,
		Count:  len(res.View.All),
		Rows:   res.View.All,
	}
	if res.HasBaseline {
		b := res.Baseline
		doc.Baseline = &b
	}
	if doc.Rows == nil {
		doc.Rows = []engine.Row{}
	}
	return doc
}

// WriteJSON writes the result as an indented JSON document.
func WriteJSON(w io.Writer, res engine.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(res)); err != nil {
		return fmt.Errorf("encoding JSON export: %w", err)
	}
	return nil
}
