package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"task-dashboard/internal/config"
	"task-dashboard/internal/theme"
	"task-dashboard/internal/tui"
)

func newThemeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Manage application theme",
		Long: `Manage application theme settings.

Run without arguments to launch the interactive theme selector.
Use subcommands for direct theme management.

Examples:
  taskdash theme              # Launch interactive selector
  taskdash theme set dracula  # Set theme directly
  taskdash theme list         # List available themes
  taskdash theme show         # Show current theme`,
		RunE: runThemeTUI,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set [theme-name]",
		Short: "Set application theme",
		Long: `Set the application theme.

Available themes:
  - default
  - dark
  - light
  - dracula
  - nord
  - gruvbox`,
		Args: cobra.ExactArgs(1),
		RunE: runThemeSet,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List available themes",
		Args:  cobra.NoArgs,
		RunE:  runThemeList,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current theme",
		Long:  `Display the currently selected theme and its color palette.`,
		Args:  cobra.NoArgs,
		RunE:  runThemeShow,
	})
	return cmd
}

func runThemeTUI(cmd *cobra.Command, args []string) error {
	model := tui.NewSetupModel(updateTheme)
	p := tea.NewProgram(model, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("failed to run theme selector: %w", err)
	}

	if m, ok := final.(tui.SetupModel); ok && m.Selected() != "" {
		styles := loadStyles(currentConfig())
		fmt.Fprintln(cmd.OutOrStdout())
		printSuccess(cmd.OutOrStdout(), styles, fmt.Sprintf("Theme set to '%s'", m.Selected()))
	}
	return nil
}

func runThemeSet(cmd *cobra.Command, args []string) error {
	themeName := args[0]

	if !theme.ThemeExists(themeName) {
		return fmt.Errorf("%w: '%s'. Run 'taskdash theme list' to see available themes", theme.ErrThemeNotFound, themeName)
	}

	if err := updateTheme(themeName); err != nil {
		return fmt.Errorf("failed to update theme: %w", err)
	}

	styles := loadStyles(currentConfig())
	printSuccess(cmd.OutOrStdout(), styles, fmt.Sprintf("Theme set to '%s'", themeName))
	return nil
}

func runThemeList(cmd *cobra.Command, args []string) error {
	cfg := currentConfig()
	themeName := cfg.ThemeName
	if themeName == "" {
		themeName = "default"
	}
	styles := loadStyles(cfg)
	out := cmd.OutOrStdout()

	fmt.Fprintln(out)
	fmt.Fprintln(out, styles.Header.Render(" Available Themes "))
	fmt.Fprintln(out)

	for _, name := range theme.ListThemes() {
		prefix := "  "
		if name == themeName {
			prefix = "▶ "
			name = styles.Success.Render(name + " (current)")
		}
		fmt.Fprintf(out, "%s%s\n", prefix, name)
	}

	fmt.Fprintln(out)
	return nil
}

func runThemeShow(cmd *cobra.Command, args []string) error {
	cfg := currentConfig()
	themeName := cfg.ThemeName
	if themeName == "" {
		themeName = "default"
	}

	themeObj, err := theme.GetTheme(themeName)
	if err != nil {
		return fmt.Errorf("failed to load theme: %w", err)
	}
	styles := theme.NewStyles(themeObj)
	out := cmd.OutOrStdout()

	fmt.Fprintln(out)
	fmt.Fprintln(out, styles.Header.Render(fmt.Sprintf(" Current Theme: %s ", themeName)))
	fmt.Fprintln(out)
	fmt.Fprintln(out, styles.Info.Render("Color Palette:"))
	fmt.Fprintln(out)

	colors := []struct {
		name  string
		color string
	}{
		{"Primary", themeObj.Primary},
		{"Success", themeObj.Success},
		{"Error", themeObj.Error},
		{"Warning", themeObj.Warning},
		{"Info", themeObj.Info},
		{"Text", themeObj.TextPrimary},
		{"Border", themeObj.BorderColor},
		{"Critical", themeObj.PriorityCritical},
		{"Urgent", themeObj.PriorityUrgent},
		{"Overdue", themeObj.StatusOverdue},
	}

	for _, c := range colors {
		sample := styles.Cell.
			Background(lipgloss.Color(c.color)).
			Foreground(lipgloss.Color(c.color)).
			Render("  ████  ")
		fmt.Fprintf(out, "  %-12s %s %s\n", c.name+":", sample, c.color)
	}

	fmt.Fprintln(out)
	return nil
}

// currentConfig loads the config, falling back to defaults.
func currentConfig() *config.Config {
	cfg, err := loadConfig()
	if err != nil {
		return config.GetDefaultConfig()
	}
	return cfg
}
