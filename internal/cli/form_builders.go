package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/neuralplan/internal/cli/formatter"
	"github.com/alexanderramin/neuralplan/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// neuralHuhTheme returns a custom huh theme using the Gruvbox palette.
func neuralHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.MultiSelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorRed).SetString("● ")
	t.Focused.UnselectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorDim).SetString("○ ")
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// questionnaireForm builds one select group per onboarding question, writing
// the chosen option ids into answers.
func questionnaireForm(answers map[string]*string) *huh.Form {
	groups := make([]*huh.Group, 0, len(domain.OnboardingQuestions))
	for _, q := range domain.OnboardingQuestions {
		options := make([]huh.Option[string], 0, len(q.Options))
		for _, o := range q.Options {
			options = append(options, huh.NewOption(o.Label, o.ID))
		}
		value := new(string)
		answers[q.ID] = value
		groups = append(groups, huh.NewGroup(
			huh.NewSelect[string]().
				Title(q.Prompt).
				Options(options...).
				Value(value),
		))
	}
	return huh.NewForm(groups...).WithTheme(neuralHuhTheme()).WithShowHelp(false)
}

// planInputForm collects the two free-text plan inputs. Both are required.
func planInputForm(history, goals *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("What happened recently?").
				Description("Missed deadlines, energy dips, wins, anything.").
				Value(history).
				Validate(requireText("history")),
			huh.NewText().
				Title("What do you need to get done?").
				Value(goals).
				Validate(requireText("goals")),
		),
	).WithTheme(neuralHuhTheme()).WithShowHelp(false)
}

// focusConfigFields holds the string-typed form values for focus settings.
type focusConfigFields struct {
	blocked        []string
	breakSeconds   string
	breakPrompt    string
	defaultMinutes string
}

func newFocusConfigFields(s domain.FocusLockSettings) *focusConfigFields {
	return &focusConfigFields{
		blocked:        append([]string{}, s.BlockedApps...),
		breakSeconds:   strconv.Itoa(s.BreakDurationSec),
		breakPrompt:    s.BreakPrompt,
		defaultMinutes: strconv.Itoa(s.DefaultMinutes),
	}
}

// apply parses the fields onto a copy of base.
func (f *focusConfigFields) apply(base domain.FocusLockSettings) (domain.FocusLockSettings, error) {
	out := base
	out.BlockedApps = append([]string{}, f.blocked...)
	if f.breakSeconds != "" {
		v, err := strconv.Atoi(f.breakSeconds)
		if err != nil || v <= 0 {
			return out, fmt.Errorf("break duration must be a positive number of seconds")
		}
		out.BreakDurationSec = v
	}
	if p := strings.TrimSpace(f.breakPrompt); p != "" {
		out.BreakPrompt = p
	}
	if f.defaultMinutes != "" {
		v, err := strconv.Atoi(f.defaultMinutes)
		if err != nil || v <= 0 {
			return out, fmt.Errorf("default minutes must be a positive number")
		}
		out.DefaultMinutes = v
	}
	return out, nil
}

// focusConfigForm edits blocked apps and break behaviour.
func focusConfigForm(f *focusConfigFields) *huh.Form {
	options := make([]huh.Option[string], 0, len(domain.DistractionApps))
	for _, app := range domain.DistractionApps {
		options = append(options, huh.NewOption(app.Name, app.ID))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Block during focus").
				Options(options...).
				Value(&f.blocked),
			durationInput("Default session minutes", "60", &f.defaultMinutes),
			durationInput("Break hold seconds", "5", &f.breakSeconds),
			huh.NewInput().
				Title("Break prompt").
				Value(&f.breakPrompt),
		),
	).WithTheme(neuralHuhTheme()).WithShowHelp(false)
}

// durationInput returns a huh.Input for a positive integer field.
func durationInput(title, placeholder string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(value).
		Validate(validatePositiveInt)
}

// validatePositiveInt accepts empty or a positive integer.
func validatePositiveInt(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}

func requireText(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
