package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"movieroulette/internal/api"
	"movieroulette/internal/roulette"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <movie-id>",
		Short: "Show the details of a movie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(func(session *roulette.Session) error {
				movie, err := session.Show(cmd.Context(), args[0])
				if err != nil {
					return userError(err)
				}
				if asJSON {
					return writeJSON(cmd, api.FromMovie(movie))
				}
				out := cmd.OutOrStdout()
				fmt.Fprint(out, renderMovie(movie, shouldColorize(out)))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
