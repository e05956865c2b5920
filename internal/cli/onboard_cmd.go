package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/neuralplan/internal/cli/formatter"
	"github.com/alexanderramin/neuralplan/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newOnboardCmd(app *App) *cobra.Command {
	var answers map[string]string

	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "Answer the questionnaire and build your neural profile",
		Long: "Answer the onboarding questionnaire. In a terminal a form is shown;\n" +
			"otherwise pass every answer with --answer, e.g.\n\n" +
			"  neuralplan onboard --answer context=academic --answer struggle=completion \\\n" +
			"    --answer sensory=neutral --answer processing=visual\n\n" +
			questionnaireHelp(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("answer") {
				if !app.interactive() {
					return errors.New("no terminal: pass answers with --answer question=option")
				}
				collected := map[string]*string{}
				if err := questionnaireForm(collected).Run(); err != nil {
					return err
				}
				answers = make(map[string]string, len(collected))
				for k, v := range collected {
					answers[k] = *v
				}
			}

			out := cmd.OutOrStdout()
			stop := func() {}
			if app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Calibrating neural profile...")
			}
			profile, err := app.Onboarding.Complete(cmd.Context(), answers)
			stop()
			if err != nil {
				var ae *domain.AnswerError
				if errors.As(err, &ae) {
					return fmt.Errorf("%w\n\n%s", err, questionnaireHelp())
				}
				return err
			}
			fmt.Fprint(out, formatter.FormatProfile(profile))
			return nil
		},
	}

	answerFlag(cmd.Flags(), &answers)
	return cmd
}

// answerFlag registers the repeatable --answer question=option flag.
func answerFlag(fs *pflag.FlagSet, dst *map[string]string) {
	fs.StringToStringVarP(dst, "answer", "a", nil, "questionnaire answer as question=option (repeatable)")
}

// questionnaireHelp lists question ids and their option ids.
func questionnaireHelp() string {
	var b strings.Builder
	b.WriteString("Questions:\n")
	for _, q := range domain.OnboardingQuestions {
		ids := make([]string, len(q.Options))
		for i, o := range q.Options {
			ids[i] = o.ID
		}
		sort.Strings(ids)
		fmt.Fprintf(&b, "  %-11s %s\n", q.ID, strings.Join(ids, " | "))
	}
	return b.String()
}

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or reset your neural profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showProfile(cmd, app)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the stored profile",
			RunE: func(cmd *cobra.Command, args []string) error {
				return showProfile(cmd, app)
			},
		},
		newProfileResetCmd(app),
	)
	return cmd
}

func showProfile(cmd *cobra.Command, app *App) error {
	profile, err := app.Onboarding.Profile(cmd.Context())
	if err != nil {
		return err
	}
	if profile == nil {
		fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No profile yet. Run `neuralplan onboard` to begin."))
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProfile(profile))
	return nil
}

func newProfileResetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear the profile and return to onboarding (streaks are kept)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Onboarding.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleYellow.Render("Profile cleared.")+" "+
				formatter.Dim("Streaks, badges and counters are unchanged."))
			return nil
		},
	}
}
