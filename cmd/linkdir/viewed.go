package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func viewedCmd(opts *rootOptions) *cobra.Command {
	var clearAll bool

	cmd := &cobra.Command{
		Use:   "viewed",
		Short: "List the links marked as viewed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := setup(ctx, opts)
			if err != nil {
				return err
			}
			defer e.Close()

			out := cmd.OutOrStdout()
			if clearAll {
				n := e.tracker.Len()
				if err := e.tracker.Clear(ctx); err != nil {
					return err
				}
				fmt.Fprintf(out, "Cleared %d viewed links\n", n)
				return nil
			}

			for _, link := range e.tracker.Links() {
				fmt.Fprintln(out, link)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&clearAll, "clear", false, "forget every viewed link")
	return cmd
}
