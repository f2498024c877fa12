package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a note and all of its descendants",
	Long: `Delete removes a note, every note beneath it, and any audio recordings
backing them. Record deletion commits before file cleanup runs.`,
	Args: cobra.ExactArgs(1),
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
			fatal("Error deleting note", fmt.Errorf("note %s not found", id))
		}
		a.notes.DeleteNote(note)
		fmt.Printf("Deleted note: %s\n", id)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
