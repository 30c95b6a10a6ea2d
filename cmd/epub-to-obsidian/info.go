package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Spycner/epub-to-obsidian/internal/book"
)

const infoChapterLimit = 10

var infoCmd = &cobra.Command{
	Use:   "info <file.epub>",
	Short: "Display information about an EPUB file without converting it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		epubPath := args[0]
		if !strings.EqualFold(filepath.Ext(epubPath), ".epub") {
			return fmt.Errorf("file must be an EPUB file (.epub extension): %s", epubPath)
		}

		bk, err := book.Read(epubPath, logger)
		if err != nil {
			return fmt.Errorf("failed to read EPUB: %w", err)
		}

		meta := bk.Metadata
		fmt.Printf("Title:     %s\n", meta.Title)
		fmt.Printf("Author(s): %s\n", strings.Join(meta.Authors, ", "))
		if meta.Publisher != "" {
			fmt.Printf("Publisher: %s\n", meta.Publisher)
		}
		if meta.Published != "" {
			fmt.Printf("Published: %s\n", meta.Published)
		}
		if meta.ISBN != "" {
			fmt.Printf("ISBN:      %s\n", meta.ISBN)
		}
		fmt.Printf("Language:  %s\n", meta.Language)
		if len(meta.Subjects) > 0 {
			fmt.Printf("Subjects:  %s\n", strings.Join(meta.Subjects, ", "))
		}

		fmt.Printf("\nChapters: %d\n\n", len(bk.Chapters))
		if len(bk.Chapters) == 0 {
			return nil
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tTitle\tCharacters")
		for i, ch := range bk.Chapters {
			if i >= infoChapterLimit {
				break
			}
			fmt.Fprintf(tw, "%d\t%s\t%d\n", ch.Number, truncate(ch.Title, 50), len(ch.Text))
		}
		tw.Flush()
		if extra := len(bk.Chapters) - infoChapterLimit; extra > 0 {
			fmt.Printf("... and %d more chapters\n", extra)
		}
		return nil
	},
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
