package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var recordTitle string

var recordCmd = &cobra.Command{
	Use:   "record <parent-id>",
	Short: "Create an audio note under a parent",
	Long: `Record creates an audio note and prints where its recording belongs.
The backing file does not exist until a recording is installed with put-audio.`,
	Args: cobra.ExactArgs(1),
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
			fatal("Error creating audio note", fmt.Errorf("parent %s not found", parentID))
		}
		note, err := a.notes.CreateAudioNote(parent)
		if err != nil {
			fatal("Error creating audio note", err)
		}
		if recordTitle != "" {
			a.notes.RenameNote(note, recordTitle)
		}
		location, err := a.notes.AudioLocation(note)
		if err != nil {
			fatal("Error deriving audio location", err)
		}
		fmt.Printf("Created audio note: %s\n", note.ID)
		fmt.Printf("Recording location: %s\n", location)
	},
}

func init() {
	recordCmd.Flags().StringVar(&recordTitle, "title", "", "Title for the new note")
	rootCmd.AddCommand(recordCmd)
}
