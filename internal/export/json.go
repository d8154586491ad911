package export

import (
	"encoding/json"
	"fmt"
	"io"

	"task-dashboard/internal/board"
)

type JSONExporter struct {
	board *board.Board
}

func NewJSONExporter(b *board.Board) *JSONExporter {
	return &JSONExporter{board: b}
}

// Export writes the full snapshot, readable back with Importer.
func (e *JSONExporter) Export(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(e.board.Snapshot()); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}
	return nil
}
