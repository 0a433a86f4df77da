package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"movieroulette/internal/api"
	"movieroulette/internal/roulette"
)

func newSeenCommand(ctx *commandContext) *cobra.Command {
	seenCmd := &cobra.Command{
		Use:   "seen",
		Short: "Manage the list of movies you've already seen",
	}

	seenCmd.AddCommand(newSeenListCommand(ctx))
	seenCmd.AddCommand(newSeenAddCommand(ctx))
	seenCmd.AddCommand(newSeenRemoveCommand(ctx))
	seenCmd.AddCommand(newSeenResetCommand(ctx))

	return seenCmd
}

func newSeenListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List seen movies, oldest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(func(session *roulette.Session) error {
				records, err := session.Seen(cmd.Context())
				if err != nil {
					return userError(err)
				}
				if asJSON {
					return writeJSON(cmd, api.FromRecords(records))
				}
				out := cmd.OutOrStdout()
				if len(records) == 0 {
					fmt.Fprintln(out, "Your seen list is empty")
					return nil
				}
				rows := make([][]string, 0, len(records))
				for _, rec := range records {
					added := ""
					if !rec.AddedAt.IsZero() {
						added = rec.AddedAt.Local().Format("2006-01-02 15:04")
					}
					rows = append(rows, []string{rec.ID, rec.Title, added})
				}
				fmt.Fprintln(out, renderTable([]string{"ID", "Title", "Added"}, rows, []columnAlignment{alignRight, alignLeft, alignLeft}))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newSeenAddCommand(ctx *commandContext) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "add <movie-id>",
		Short: "Mark a movie as seen",
		Long:  "Mark a movie as seen. Without --title the title is looked up in the catalog.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(func(session *roulette.Session) error {
				id := strings.TrimSpace(args[0])
				name := strings.TrimSpace(title)
				if name == "" {
					movie, err := session.Show(cmd.Context(), id)
					if err != nil {
						return userError(err)
					}
					name = movie.Title
				}
				if err := session.MarkSeen(cmd.Context(), id, name); err != nil {
					return userError(err)
				}
				printStatus(cmd, statusOK, "Added %q to your seen list", name)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Title to record instead of looking it up")
	return cmd
}

func newSeenRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <movie-id>",
		Aliases: []string{"rm"},
		Short:   "Remove a movie from the seen list",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(func(session *roulette.Session) error {
				if err := session.Forget(cmd.Context(), args[0]); err != nil {
					return userError(err)
				}
				printStatus(cmd, statusOK, "Removed %s from your seen list", strings.TrimSpace(args[0]))
				return nil
			})
		},
	}
}

func newSeenResetCommand(ctx *commandContext) *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear the seen list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				return fmt.Errorf("reset removes every seen movie; re-run with --yes to confirm")
			}
			return ctx.withSession(func(session *roulette.Session) error {
				removed, err := session.Reset(cmd.Context())
				if err != nil {
					return userError(err)
				}
				printStatus(cmd, statusOK, "Cleared %d movie(s) from your seen list", removed)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&confirm, "yes", "y", false, "Confirm clearing the list")
	return cmd
}
