package cli

import (
	"fmt"

	"github.com/alexanderramin/neuralplan/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show streaks, focus load and activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, app)
		},
	}
}

func runStatus(cmd *cobra.Command, app *App) error {
	view, err := app.Engagement.Status(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStatus(view))
	return nil
}

func newBadgesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "badges",
		Short: "List achievements and their unlock state",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			badges, err := app.Engagement.Badges(ctx)
			if err != nil {
				return err
			}
			view, err := app.Engagement.Status(ctx)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBadges(badges, view.Stats.CurrentStreak))
			return nil
		},
	}
}
