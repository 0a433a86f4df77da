package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"movieroulette/internal/api"
	"movieroulette/internal/roulette"
)

func newGenresCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "genres",
		Short: "List genre names accepted by --genre",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(func(session *roulette.Session) error {
				names, err := session.Genres(cmd.Context())
				if err != nil {
					return userError(err)
				}
				if asJSON {
					return writeJSON(cmd, api.GenreListResponse{Genres: names})
				}
				rows := make([][]string, 0, len(names))
				for _, name := range names {
					rows = append(rows, []string{name})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Genre"}, rows, nil))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
