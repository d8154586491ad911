package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"task-dashboard/internal/config"
	"task-dashboard/internal/domain"
	"task-dashboard/internal/theme"
)

func loadTheme(cfg *config.Config) *theme.Theme {
	if cfg == nil {
		return theme.Resolve(theme.DefaultName)
	}
	return theme.Resolve(cfg.ThemeName)
}

func loadStyles(cfg *config.Config) *theme.Styles {
	return theme.NewStyles(loadTheme(cfg))
}

func printSuccess(w io.Writer, styles *theme.Styles, msg string) {
	fmt.Fprintln(w, styles.Success.Render("✓ "+msg))
}

func printError(w io.Writer, styles *theme.Styles, msg string) {
	fmt.Fprintln(w, styles.Error.Render("✗ "+msg))
}

func printWarning(w io.Writer, styles *theme.Styles, msg string) {
	fmt.Fprintln(w, styles.Warning.Render("⚠ "+msg))
}

func printInfo(w io.Writer, styles *theme.Styles, msg string) {
	fmt.Fprintln(w, styles.Info.Render(msg))
}

// reportError prints a user-facing error; a missing target is informational.
func reportError(w io.Writer, styles *theme.Styles, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		printInfo(w, styles, fmt.Sprintf("Nothing changed: %v", err))
		return
	}
	printError(w, styles, err.Error())
}

func parseTaskID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimSpace(arg), "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}

func parseIndex(arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid subtask number %q (counting from 1)", arg)
	}
	return n - 1, nil
}

// direction maps the up/down subcommand names onto a reorder step.
func direction(name string) int {
	if name == "up" {
		return -1
	}
	return 1
}
