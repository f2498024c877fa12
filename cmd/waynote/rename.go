package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var renameCmd = &cobra.Command{
	Use:   "rename <id> <title>",
	Short: "Rename a note",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := uuid.Parse(args[0])
		if err != nil {
			fatal("Error parsing id", err)
		}

		a, err := openApp()
		if err != nil {
			fatal("Error opening waynote", err)
		}
		defer a.close()

		note := a.notes.FetchNote(id)
		if note == nil {
			fatal("Error renaming note", fmt.Errorf("note %s not found", id))
		}
		a.notes.RenameNote(note, args[1])
		fmt.Printf("Renamed note %s to %q\n", note.ID, note.Title)
	},
}

func init() {
	rootCmd.AddCommand(renameCmd)
}
