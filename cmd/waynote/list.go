package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/waynote/waynote/internal/graph"
	"github.com/waynote/waynote/internal/index"
)

var listCmd = &cobra.Command{
	Use:   "list [id]",
	Short: "List a note and its children",
	Long:  `List shows a note (the root when no id is given) and its children in creation order.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a, err := openApp()
		if err != nil {
			fatal("Error opening waynote", err)
		}
		defer a.close()

		var note *graph.Note
		if len(args) == 0 {
			note = a.notes.FetchRoot()
		} else {
			id, err := uuid.Parse(args[0])
			if err != nil {
				fatal("Error parsing id", err)
			}
			note = a.notes.FetchNote(id)
			if note == nil {
				fmt.Printf("Note not found: %s\n", args[0])
				return
			}
		}

		fmt.Printf("%s  %s\n", note.ID, index.DisplayTitle(note))
		for _, child := range a.notes.Children(note.ID) {
			fmt.Printf("  %s  [%s]  %s\n", child.ID, child.Content.Kind, index.DisplayTitle(child))
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
