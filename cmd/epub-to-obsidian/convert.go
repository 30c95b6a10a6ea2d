package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Spycner/epub-to-obsidian/internal/vault"
)

var convertNoImages bool

var convertCmd = &cobra.Command{
	Use:   "convert <file.epub>",
	Short: "Convert an EPUB file to Obsidian markdown format",
	Long: `Convert a single EPUB file into a book directory of markdown files.

The book directory is created under the output root and is overwritten
in place when the same book is converted again.

Examples:
  epub-to-obsidian convert book.epub
  epub-to-obsidian convert book.epub -o ~/vault --no-images`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		epubPath := args[0]
		if !strings.EqualFold(filepath.Ext(epubPath), ".epub") {
			return fmt.Errorf("file must be an EPUB file (.epub extension): %s", epubPath)
		}
		if _, err := os.Stat(epubPath); err != nil {
			return fmt.Errorf("cannot read %s: %w", epubPath, err)
		}

		out := resolveOutputDir()
		if err := os.MkdirAll(out, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		w := vault.NewWriter(out, logger)
		bookDir, err := w.WriteBook(epubPath, cfg.IncludeImages && !convertNoImages)
		if err != nil {
			return fmt.Errorf("conversion failed: %w", err)
		}

		fmt.Printf("Converted %s\n", filepath.Base(epubPath))
		fmt.Printf("Book saved to: %s\n", bookDir)

		if mdFiles, err := filepath.Glob(filepath.Join(bookDir, "*.md")); err == nil {
			fmt.Printf("Created %d markdown files\n", len(mdFiles))
		}
		if images, err := os.ReadDir(filepath.Join(bookDir, "images")); err == nil && len(images) > 0 {
			fmt.Printf("Extracted %d images\n", len(images))
		}
		return nil
	},
}

func init() {
	convertCmd.Flags().BoolVar(&convertNoImages, "no-images", false, "skip extracting and including images")
	rootCmd.AddCommand(convertCmd)
}
