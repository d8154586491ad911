package export

import (
	"io"
	"time"

	"task-dashboard/internal/board"
)

type Exporter interface {
	Export(w io.Writer) error
}

func New(format Format, b *board.Board, now time.Time) (Exporter, error) {
	switch format {
	case FormatJSON:
		return NewJSONExporter(b), nil
	case FormatCSV:
		return NewCSVExporter(b), nil
	case FormatMarkdown:
		return NewMarkdownExporter(b, now), nil
	case FormatTOML:
		return NewTOMLExporter(b), nil
	default:
		return nil, ErrUnknownFormat
	}
}
