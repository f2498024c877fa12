package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/waynote/waynote/internal/index"
)

var pathCmd = &cobra.Command{
	Use:   "path <id>",
	Short: "Show the navigation path from the root to a note",
	Args:  cobra.ExactArgs(1),
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

		path, err := a.router.ResolvePath(id)
		if err != nil {
			fatal("Error resolving path", err)
		}
		if path == nil {
			fmt.Printf("Note not found: %s\n", id)
			return
		}

		titles := []string{index.DisplayTitle(a.notes.FetchRoot())}
		for _, n := range path {
			titles = append(titles, index.DisplayTitle(n))
		}
		fmt.Println(strings.Join(titles, index.Separator))
	},
}

func init() {
	rootCmd.AddCommand(pathCmd)
}
