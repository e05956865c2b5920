package cli

import (
	"context"
	"time"

	"github.com/alexanderramin/neuralplan/internal/focuslock"
	"github.com/alexanderramin/neuralplan/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all services used by CLI commands.
type App struct {
	Engagement service.EngagementService
	Onboarding service.OnboardingService
	Plans      service.PlanService
	Coach      service.CoachService

	FocusSettings *focuslock.SettingsStore
	FocusRunner   *focuslock.Runner

	// Serve runs the MCP stdio server until ctx is done. Nil disables the
	// serve command.
	Serve func(ctx context.Context) error

	// IsInteractive reports whether stdin is a terminal. Nil means false,
	// so commands fall back to flags.
	IsInteractive func() bool

	// Now defaults to time.Now.
	Now func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "neuralplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "neuralplan",
		Short:         "Neuro-inclusive daily planner with streaks and a focus lock",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, app)
		},
	}

	root.AddCommand(
		newStatusCmd(app),
		newBadgesCmd(app),
		newOnboardCmd(app),
		newProfileCmd(app),
		newPlanCmd(app),
		newChatCmd(app),
		newFocusCmd(app),
		newServeCmd(app),
	)

	return root
}
