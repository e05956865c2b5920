package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/neuralplan/internal/cli/formatter"
	"github.com/alexanderramin/neuralplan/internal/intelligence"
	"github.com/alexanderramin/neuralplan/internal/service"
	"github.com/spf13/cobra"
)

func newChatCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chat [MESSAGE...]",
		Short: "Ask Dr. Neural for coaching",
		Long:  "Ask one question, or run without arguments in a terminal for a conversation.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				if !app.interactive() {
					return errors.New("chat needs a MESSAGE when not run in a terminal")
				}
				return runChatSession(cmd, app)
			}

			message := strings.Join(args, " ")
			stop := func() {}
			if app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Dr. Neural is thinking...")
			}
			reply, err := app.Coach.Ask(cmd.Context(), message)
			stop()
			if err != nil {
				return withLLMHint(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", chatSpeaker(), reply)
			return nil
		},
	}
}

// runChatSession reads one message per line until /quit or end of input.
// Earlier turns are sent along with every new message.
func runChatSession(cmd *cobra.Command, app *App) error {
	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n\n", chatSpeaker(), formatter.Dim("is listening. /quit to leave."))

	var conv *intelligence.ChatConversation
	for {
		fmt.Fprint(out, formatter.Dim("You: "))
		line, readErr := in.ReadString('\n')
		message := strings.TrimSpace(line)

		switch strings.ToLower(message) {
		case "/quit", "/exit", "/q", "quit", "exit":
			return nil
		case "":
		default:
			stop := formatter.StartSpinner(cmd.ErrOrStderr(), "Dr. Neural is thinking...")
			next, reply, err := app.Coach.Converse(cmd.Context(), conv, message)
			stop()
			conv = next
			switch {
			case errors.Is(err, service.ErrLLMDisabled):
				return withLLMHint(err)
			case err != nil:
				fmt.Fprintln(out, formatter.StyleRed.Render(withLLMHint(err).Error()))
			default:
				fmt.Fprintf(out, "%s\n%s\n\n", chatSpeaker(), reply)
			}
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				fmt.Fprintln(out)
				return nil
			}
			return readErr
		}
	}
}

func chatSpeaker() string {
	return formatter.StylePurple.Bold(true).Render("Dr. Neural")
}
