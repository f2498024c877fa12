package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/waynote/waynote/internal/index"
	"github.com/waynote/waynote/internal/nav"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search notes by full text",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a, err := openApp()
		if err != nil {
			fatal("Error opening waynote", err)
		}
		defer a.close()

		session := nav.NewSearchSession(a.idx, a.notes, nil)
		defer session.Close()

		results, err := session.Search(context.Background(), strings.Join(args, " "))
		if err != nil {
			fatal("Error searching", err)
		}
		if len(results) == 0 {
			fmt.Println("No results")
			return
		}
		for _, note := range results {
			rec, err := index.BuildRecord(a.notes.Tree(), note)
			if err != nil {
				fatal("Error building breadcrumb", err)
			}
			fmt.Printf("%s  %s\n", note.ID, rec.Breadcrumb)
		}
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
