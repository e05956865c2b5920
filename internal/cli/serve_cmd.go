package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve engagement tools over MCP on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Serve == nil {
				return errors.New("MCP server is not configured")
			}
			return app.Serve(cmd.Context())
		},
	}
}
