// Package settings provides the interactive editor for termctl settings.
package settings

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"termctl/internal/config"
)

// Run launches an interactive form to edit settings.json and saves on submit.
func Run() error {
	current, err := config.Load()
	if err != nil {
		return err
	}

	fontSize := strconv.Itoa(current.FontSize)
	theme := current.Theme
	cursorBlink := current.CursorBlink
	initialCommand := current.InitialCommand
	server := current.Server

	green := lipgloss.Color("#03BF87")
	formTheme := huh.ThemeCharm()
	formTheme.FieldSeparator = lipgloss.NewStyle()
	formTheme.Blurred.Title = formTheme.Blurred.Title.Width(18).Foreground(lipgloss.Color("7"))
	formTheme.Focused.Title = formTheme.Focused.Title.Width(18).Foreground(green).Bold(true)
	formTheme.Blurred.SelectedOption = formTheme.Blurred.SelectedOption.Foreground(lipgloss.Color("243"))
	formTheme.Focused.SelectedOption = lipgloss.NewStyle().Foreground(green)
	formTheme.Focused.Base.BorderForeground(green)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title("Settings").Description("Terminal pane options, saved to settings.json"),
			huh.NewInput().
				Title("Font size").
				Value(&fontSize).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 1 {
						return fmt.Errorf("font size must be a positive integer")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Theme").
				Options(
					huh.NewOption("Dark", "dark"),
					huh.NewOption("Light", "light"),
				).
				Value(&theme),
			huh.NewConfirm().
				Title("Cursor blink").
				Value(&cursorBlink),
			huh.NewInput().
				Title("Initial command").
				Placeholder("run once when a session becomes ready").
				Value(&initialCommand),
			huh.NewInput().
				Title("Server").
				Placeholder("host:port of a session server").
				Value(&server),
		),
	).WithTheme(formTheme).WithWidth(60)

	if err := form.Run(); err != nil {
		return err // form canceled or failed
	}

	n, _ := strconv.Atoi(strings.TrimSpace(fontSize))
	next := config.Settings{
		FontSize:       n,
		Theme:          theme,
		CursorBlink:    cursorBlink,
		InitialCommand: strings.TrimSpace(initialCommand),
		Server:         strings.TrimSpace(server),
	}
	if err := config.Save(next); err != nil {
		return err
	}
	fmt.Printf("\n✓ settings.json saved\n\n")
	return nil
}
