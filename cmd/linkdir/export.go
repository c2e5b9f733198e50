package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/linkdir/internal/controller"
	"github.com/nikbrunner/linkdir/internal/exporter"
	"github.com/nikbrunner/linkdir/internal/model"
)

func exportCmd(opts *rootOptions) *cobra.Command {
	var (
		title   string
		sortCol string
		desc    bool
	)

	cmd := &cobra.Command{
		Use:   "export [path]",
		Short: "Write the directory as a static HTML table",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			column, err := model.ParseColumn(sortCol)
			if err != nil {
				return err
			}

			outputPath := ""
			if len(args) == 1 {
				outputPath = args[0]
			}
			if outputPath == "" {
				outputPath, err = exporter.DefaultExportPath()
				if err != nil {
					return fmt.Errorf("get default export path: %w", err)
				}
			}

			e, err := setup(ctx, opts)
			if err != nil {
				return err
			}
			defer e.Close()

			store, err := e.load(ctx)
			if err != nil {
				return err
			}

			page := &exporter.Page{Title: title}
			params := e.controllerParams()
			params.Store = store
			params.Display = page
			params.StartExpanded = true
			ctrl := controller.New(params)
			ctrl.Dispatch(ctx, controller.Refresh{})

			// The first SortBy on a new column sorts ascending, a repeat reverses.
			if column != model.ColumnName {
				ctrl.Dispatch(ctx, controller.SortBy{Column: column})
			}
			if desc {
				ctrl.Dispatch(ctx, controller.SortBy{Column: column})
			}

			if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
				return err
			}
			if err := os.WriteFile(outputPath, []byte(page.HTML()), 0644); err != nil {
				return fmt.Errorf("write %s: %w", outputPath, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries in %d categories to %s\n",
				store.EntryCount(), store.Len(), outputPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "Directory", "page title")
	cmd.Flags().StringVar(&sortCol, "sort", model.ColumnName.String(), "sort column: name, description, link or date")
	cmd.Flags().BoolVar(&desc, "desc", false, "sort descending")
	return cmd
}
