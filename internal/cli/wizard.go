package cli

import (
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/simibol/planpoint/internal/cli/formatter"
)

// planpointHuhTheme matches huh prompts to the formatter palette.
func planpointHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorOrange).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorOrange).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// huhConfirm runs a single yes/no prompt on the terminal.
func huhConfirm(title string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).WithTheme(planpointHuhTheme()).WithShowHelp(false).Run()
	return ok, err
}

var snoozeChoices = []time.Duration{15 * time.Minute, time.Hour, 3 * time.Hour, 24 * time.Hour}

// huhSnoozeSelect asks how long to snooze a notification.
func huhSnoozeSelect() (time.Duration, error) {
	opts := make([]huh.Option[time.Duration], len(snoozeChoices))
	for i, d := range snoozeChoices {
		opts[i] = huh.NewOption(formatter.FormatMinutes(int(d.Minutes())), d)
	}
	choice := time.Hour
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[time.Duration]().
				Title("Snooze for").
				Options(opts...).
				Value(&choice),
		),
	).WithTheme(planpointHuhTheme()).WithShowHelp(false).Run()
	return choice, err
}
