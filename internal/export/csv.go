package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"task-dashboard/internal/board"
	"task-dashboard/internal/display"
)

type CSVExporter struct {
	board *board.Board
}

func NewCSVExporter(b *board.Board) *CSVExporter {
	return &CSVExporter{board: b}
}

// Export writes one row per task in storage order.
func (e *CSVExporter) Export(w io.Writer) error {
	writer := csv.NewWriter(w)

	header := []string{"ID", "Title", "Folder", "Path", "Priority", "Start Date", "End Date", "Leave Days", "Members", "Subtasks", "Completed", "Completed At", "Created At", "Notes"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, task := range e.board.Tasks.All() {
		row := []string{
			strconv.FormatInt(task.ID, 10),
			task.Title,
			e.board.FolderName(task),
			e.board.Tree.Path(task.FolderID),
			string(task.Priority),
			task.StartDate,
			task.EndDate,
			strconv.Itoa(task.LeaveDays),
			strings.Join(e.board.MemberNames(task), ";"),
			display.FormatSubtasks(task),
			strconv.FormatBool(task.Completed),
			"",
			task.CreatedAt.Format("2006-01-02 15:04:05"),
			task.Notes,
		}

		if task.CompletedAt != nil {
			row[11] = task.CompletedAt.In(time.Local).Format("2006-01-02 15:04:05")
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
