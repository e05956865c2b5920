package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/alexanderramin/neuralplan/internal/cli/formatter"
	"github.com/alexanderramin/neuralplan/internal/domain"
	"github.com/alexanderramin/neuralplan/internal/focuslock"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newFocusCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "focus",
		Short: "Run the focus lock and manage its settings",
	}
	cmd.AddCommand(
		newFocusStartCmd(app),
		newFocusConfigCmd(app),
		newFocusLogCmd(app),
	)
	return cmd
}

func newFocusStartCmd(app *App) *cobra.Command {
	var minutes int

	cmd := &cobra.Command{
		Use:   "start [MINUTES]",
		Short: "Start a focus countdown; only a finished countdown counts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			settings, err := app.FocusSettings.Load(ctx)
			if err != nil {
				return err
			}

			if len(args) == 1 {
				if minutes, err = parseMinutes(args[0]); err != nil {
					return err
				}
			} else if !cmd.Flags().Changed("minutes") {
				minutes = settings.DefaultMinutes
			}

			var completion *focuslock.Completion
			if app.interactive() {
				completion, err = runFocusTUI(ctx, cmd, app, settings, minutes)
			} else {
				completion, err = runFocusPlain(ctx, cmd.OutOrStdout(), app, minutes)
			}

			out := cmd.OutOrStdout()
			switch {
			case errors.Is(err, focuslock.ErrCancelled):
				fmt.Fprintln(out, formatter.StyleYellow.Render("Session abandoned.")+" "+formatter.Dim("No minutes credited."))
				return nil
			case err != nil:
				return err
			}

			view, err := app.Engagement.Status(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %s\n",
				formatter.StyleGreen.Render(fmt.Sprintf("Focus complete: %s credited.", formatter.FormatMinutes(completion.Minutes))),
				formatter.FormatStreakUpdate(&view.Stats))
			return nil
		},
	}

	cmd.Flags().IntVarP(&minutes, "minutes", "m", 0, "Session length (defaults to the configured length)")
	return cmd
}

// runFocusTUI drives the runner in the background and shows the countdown
// in a bubbletea program. Quitting or completing a break cancels the run.
func runFocusTUI(ctx context.Context, cmd *cobra.Command, app *App, settings domain.FocusLockSettings, minutes int) (*focuslock.Completion, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := newFocusModel(settings, minutes, cancel)
	p := tea.NewProgram(model, tea.WithOutput(cmd.OutOrStdout()), tea.WithAltScreen())

	done := make(chan focusDoneMsg, 1)
	go func() {
		c, err := app.FocusRunner.Run(ctx, minutes, func(s domain.FocusSession) {
			p.Send(model.observeTick(s))
		})
		msg := focusDoneMsg{completion: c, err: err}
		done <- msg
		p.Send(msg)
	}()

	_, runErr := p.Run()
	cancel()
	res := <-done
	if runErr != nil && !errors.Is(runErr, tea.ErrInterrupted) && !errors.Is(runErr, tea.ErrProgramKilled) {
		return nil, runErr
	}
	return res.completion, res.err
}

// runFocusPlain prints the remaining time once a minute.
func runFocusPlain(ctx context.Context, w io.Writer, app *App, minutes int) (*focuslock.Completion, error) {
	fmt.Fprintf(w, "%s %s\n", formatter.StyleHeader.Render("FOCUS LOCK"), formatter.Dim(fmt.Sprintf("%d min, Ctrl+C to abandon", minutes)))
	return app.FocusRunner.Run(ctx, minutes, func(s domain.FocusSession) {
		if s.RemainingSeconds > 0 && s.RemainingSeconds%60 == 0 {
			fmt.Fprintf(w, "  %s remaining\n", focuslock.FormatClock(s.RemainingSeconds))
		}
	})
}

func newFocusLogCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "log MINUTES",
		Short: "Credit focus minutes done outside the lock",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, err := parseMinutes(args[0])
			if err != nil {
				return err
			}
			stats, err := app.Engagement.LogFocus(cmd.Context(), minutes)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStreakUpdate(stats))
			return nil
		},
	}
}

func newFocusConfigCmd(app *App) *cobra.Command {
	var (
		toggles      []string
		breakSeconds string
		breakPrompt  string
		defaultMins  string
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or edit blocked apps and break behaviour",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store := app.FocusSettings
			settings, err := store.Load(ctx)
			if err != nil {
				return err
			}

			flagsUsed := cmd.Flags().NFlag() > 0
			switch {
			case flagsUsed:
				for _, id := range toggles {
					settings.ToggleApp(id)
				}
				fields := newFocusConfigFields(settings)
				fields.breakSeconds = breakSeconds
				fields.breakPrompt = breakPrompt
				fields.defaultMinutes = defaultMins
				if settings, err = fields.apply(settings); err != nil {
					return err
				}
				if err := store.Save(ctx, settings); err != nil {
					return err
				}
			case app.interactive():
				fields := newFocusConfigFields(settings)
				if err := focusConfigForm(fields).Run(); err != nil {
					return err
				}
				if settings, err = fields.apply(settings); err != nil {
					return err
				}
				if err := store.Save(ctx, settings); err != nil {
					return err
				}
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatFocusSettings(settings))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&toggles, "toggle", nil, "Block or unblock an app by id (repeatable)")
	cmd.Flags().StringVar(&breakSeconds, "break-seconds", "", "Seconds the break key must be held")
	cmd.Flags().StringVar(&breakPrompt, "break-prompt", "", "Text shown while breaking")
	cmd.Flags().StringVar(&defaultMins, "minutes", "", "Default session length")
	return cmd
}

func parseMinutes(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 || v > focuslock.MaxMinutes {
		return 0, fmt.Errorf("%w: %q (1-%d)", focuslock.ErrInvalidDuration, s, focuslock.MaxMinutes)
	}
	return v, nil
}
