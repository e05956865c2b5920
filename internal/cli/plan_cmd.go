package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/neuralplan/internal/cli/formatter"
	"github.com/alexanderramin/neuralplan/internal/intelligence"
	"github.com/alexanderramin/neuralplan/internal/llm"
	"github.com/alexanderramin/neuralplan/internal/repository"
	"github.com/alexanderramin/neuralplan/internal/service"
	"github.com/spf13/cobra"
)

const defaultPlanListLimit = 10

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate and review adapted daily plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showLatestPlan(cmd, app)
		},
	}
	cmd.AddCommand(
		newPlanGenerateCmd(app),
		&cobra.Command{
			Use:   "last",
			Short: "Show the most recent plan",
			RunE: func(cmd *cobra.Command, args []string) error {
				return showLatestPlan(cmd, app)
			},
		},
		newPlanListCmd(app),
	)
	return cmd
}

func newPlanGenerateCmd(app *App) *cobra.Command {
	var history, goals string

	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"new"},
		Short:   "Analyse recent history and goals into a plan for today",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(history) == "" || strings.TrimSpace(goals) == "" {
				if !app.interactive() {
					return service.ErrPatternDataRequired
				}
				if err := planInputForm(&history, &goals).Run(); err != nil {
					return err
				}
			}

			stop := func() {}
			if app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Analysing patterns...")
			}
			rec, err := app.Plans.Generate(cmd.Context(), history, goals)
			stop()
			if err != nil {
				return withLLMHint(err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlan(rec, app.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&history, "history", "", "What happened recently")
	cmd.Flags().StringVar(&goals, "goals", "", "What you need to get done")
	return cmd
}

func showLatestPlan(cmd *cobra.Command, app *App) error {
	rec, err := app.Plans.Latest(cmd.Context())
	if errors.Is(err, repository.ErrNotFound) {
		fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No plans generated yet. Run `neuralplan plan generate`."))
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlan(rec, app.now()))
	return nil
}

func newPlanListCmd(app *App) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent plans, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := app.Plans.ListRecent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlanList(plans, app.now()))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", defaultPlanListLimit, "Number of plans to show")
	return cmd
}

// withLLMHint appends an actionable hint to model failures.
func withLLMHint(err error) error {
	switch {
	case errors.Is(err, service.ErrLLMDisabled):
		return fmt.Errorf("%w (enable it with NEURALPLAN_LLM_ENABLED=true or llm.enabled in config.yaml)", err)
	case errors.Is(err, llm.ErrOllamaUnavailable):
		return fmt.Errorf("%w (is `ollama serve` running?)", err)
	case errors.Is(err, llm.ErrTimeout), errors.Is(err, intelligence.ErrAnalysisFailed),
		errors.Is(err, intelligence.ErrChatUnavailable):
		return fmt.Errorf("%w (try again in a moment)", err)
	default:
		return err
	}
}
