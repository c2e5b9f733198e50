package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/linkdir/internal/controller"
	"github.com/nikbrunner/linkdir/internal/picker"
	"github.com/nikbrunner/linkdir/internal/search"
)

func findCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "find <query>",
		Short: "Fuzzy-find an entry and open it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			query := strings.Join(args, " ")

			e, err := setup(ctx, opts)
			if err != nil {
				return err
			}
			defer e.Close()

			store, err := e.load(ctx)
			if err != nil {
				return err
			}

			results := search.FuzzySearchEntries(store, query)
			out := cmd.OutOrStdout()

			var selected *search.SearchResult
			switch len(results) {
			case 0:
				fmt.Fprintf(out, "No entries found for '%s'\n", query)
				return nil
			case 1:
				selected = &results[0]
			default:
				p := picker.New(results, query, e.tracker.IsViewed)
				final, err := tea.NewProgram(p).Run()
				if err != nil {
					return fmt.Errorf("run picker: %w", err)
				}
				selected = final.(picker.Picker).Selected()
			}

			if selected == nil {
				return nil
			}

			fmt.Fprintf(out, "Opening: %s (%s)\n", selected.Entry.Name, selected.Entry.Link)

			params := e.controllerParams()
			params.Store = store
			ctrl := controller.New(params)
			ctrl.Dispatch(ctx, controller.OpenLink{Link: selected.Entry.Link})
			return nil
		},
	}
}
