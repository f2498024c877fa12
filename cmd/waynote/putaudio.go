package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var putDuration float64

var putAudioCmd = &cobra.Command{
	Use:   "put-audio <note-id> <file>",
	Short: "Install a finished recording for an audio note",
	Long: `Put-audio copies a recorded file into the audio store at the note's derived
location and records the recording duration.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		noteID, err := uuid.Parse(args[0])
		if err != nil {
			fatal("Error parsing note id", err)
		}

		a, err := openApp()
		if err != nil {
			fatal("Error opening waynote", err)
		}
		defer a.close()

		note := a.notes.FetchNote(noteID)
		if note == nil {
			fatal("Error installing recording", fmt.Errorf("note %s not found", noteID))
		}
		location, err := a.notes.AudioLocation(note)
		if err != nil {
			fatal("Error installing recording", err)
		}

		src, err := os.Open(args[1])
		if err != nil {
			fatal("Error opening recording", err)
		}
		defer src.Close()

		if err := a.blobs.Put(location, src); err != nil {
			fatal("Error installing recording", err)
		}
		if err := a.notes.UpdateRecordedDuration(note, putDuration); err != nil {
			fatal("Error updating duration", err)
		}
		fmt.Printf("Installed recording at %s (%.1fs)\n", location, putDuration)
	},
}

func init() {
	putAudioCmd.Flags().Float64Var(&putDuration, "duration", 0, "Recording duration in seconds")
	rootCmd.AddCommand(putAudioCmd)
}
