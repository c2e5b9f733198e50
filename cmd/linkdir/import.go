package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/linkdir/internal/importer"
)

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <bookmarks.html> [out.json]",
		Short: "Convert a browser bookmark export into a directory document",
		Long: `Converts a Netscape bookmark file into a {"categories": ...} document.
Folders become categories named by their path; bookmarks outside any folder
go to "Unsorted". Without out.json the document is printed.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open bookmarks: %w", err)
			}
			defer file.Close()

			store, err := importer.ParseHTMLBookmarks(file)
			if err != nil {
				return fmt.Errorf("parse bookmarks: %w", err)
			}

			raw, err := store.MarshalJSON()
			if err != nil {
				return err
			}
			var doc bytes.Buffer
			if err := json.Indent(&doc, raw, "", "  "); err != nil {
				return err
			}
			doc.WriteByte('\n')

			if len(args) == 1 {
				_, err := cmd.OutOrStdout().Write(doc.Bytes())
				return err
			}

			if err := os.WriteFile(args[1], doc.Bytes(), 0644); err != nil {
				return fmt.Errorf("write %s: %w", args[1], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d entries in %d categories to %s\n",
				store.EntryCount(), store.Len(), args[1])
			return nil
		},
	}
}
