package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"scriptplay/internal/loader"
	"scriptplay/internal/transcript"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <transcript.json>",
	Short: "Parse a transcript document and print its segments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if c := loader.Classify(path); c != loader.CategoryScript {
			return fmt.Errorf("%s classifies as %s, not a transcript", path, c)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		doc, err := transcript.Parse(data)
		if err != nil {
			return err
		}

		if doc.AudioHint != "" {
			fmt.Printf("audio hint: %s\n", doc.AudioHint)
		}
		fmt.Printf("%d segments\n", len(doc.Segments))
		for i, s := range doc.Segments {
			fmt.Printf("%4d  %8.2f  %8.2f  %s\n",
				i, float64(s.StartMs)/1000, float64(s.EndMs)/1000, s.Text)
		}
		return nil
	},
}
