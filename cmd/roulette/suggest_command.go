package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"movieroulette/internal/api"
	"movieroulette/internal/discovery"
	"movieroulette/internal/roulette"
)

func newSuggestCommand(ctx *commandContext) *cobra.Command {
	var (
		year   int
		genre  string
		asJSON bool
		commit bool
	)

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest the most popular movie you haven't seen",
		Long: "Suggest the most popular movie matching the optional year and genre\n" +
			"filters that is not on your seen list.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter discovery.Filter
			if cmd.Flags().Changed("year") {
				filter.Year = &year
			}
			if cmd.Flags().Changed("genre") {
				filter.Genre = &genre
			}

			return ctx.withSession(func(session *roulette.Session) error {
				movie, err := session.Suggest(cmd.Context(), filter)
				if err != nil {
					return userError(err)
				}
				if commit {
					if err := session.Commit(cmd.Context(), movie); err != nil {
						return userError(err)
					}
				}
				if asJSON {
					return writeJSON(cmd, api.FromMovie(movie))
				}

				out := cmd.OutOrStdout()
				fmt.Fprint(out, renderMovie(movie, shouldColorize(out)))
				if commit {
					printStatus(cmd, statusOK, "Added %q to your seen list", movie.Title)
				} else {
					printStatus(cmd, statusInfo, "Seen it? Run 'roulette seen add %s' to skip it next time", movie.ID)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&year, "year", "y", 0, "Only movies released in this year")
	cmd.Flags().StringVarP(&genre, "genre", "g", "", "Only movies in this genre (see 'roulette genres')")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&commit, "commit", false, "Add the suggestion to the seen list")
	return cmd
}
