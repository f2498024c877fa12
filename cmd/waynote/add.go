package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	addTitle string
	addText  string
)

var addCmd = &cobra.Command{
	Use:   "add <parent-id>",
	Short: "Create a text note under a parent",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		parentID, err := uuid.Parse(args[0])
		if err != nil {
			fatal("Error parsing parent id", err)
		}

		a, err := openApp()
		if err != nil {
			fatal("Error opening waynote", err)
		}
		defer a.close()

		parent := a.notes.FetchNote(parentID)
		if parent == nil {
			fatal("Error creating note", fmt.Errorf("parent %s not found", parentID))
		}
		note, err := a.notes.CreateTextNote(parent)
		if err != nil {
			fatal("Error creating note", err)
		}
		if addTitle != "" {
			a.notes.RenameNote(note, addTitle)
		}
		if addText != "" {
			if err := a.notes.SetText(note, addText); err != nil {
				fatal("Error setting text", err)
			}
		}
		fmt.Printf("Created text note: %s\n", note.ID)
	},
}

func init() {
	addCmd.Flags().StringVar(&addTitle, "title", "", "Title for the new note")
	addCmd.Flags().StringVar(&addText, "text", "", "Initial text content")
	rootCmd.AddCommand(addCmd)
}
