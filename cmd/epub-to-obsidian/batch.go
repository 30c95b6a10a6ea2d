package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Spycner/epub-to-obsidian/internal/vault"
)

var batchNoImages bool

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Convert every EPUB file in a directory",
	Long: `Convert every EPUB file found in a directory (non-recursive).

Failure of one file never aborts the batch: failures are recorded and
reported in the summary, and the command exits zero regardless.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputDir := args[0]
		entries, err := os.ReadDir(inputDir)
		if err != nil {
			return fmt.Errorf("cannot read directory %s: %w", inputDir, err)
		}

		var epubs []string
		for _, e := range entries {
			if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".epub") {
				epubs = append(epubs, e.Name())
			}
		}
		sort.Strings(epubs)

		if len(epubs) == 0 {
			fmt.Printf("No EPUB files found in %s\n", inputDir)
			return nil
		}
		fmt.Printf("Found %d EPUB files to convert\n", len(epubs))

		out := resolveOutputDir()
		if err := os.MkdirAll(out, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		w := vault.NewWriter(out, logger)
		successful, failures, err := convertAll(
			cmd.Context(), w, logger, inputDir, epubs, cfg.IncludeImages && !batchNoImages,
		)
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Printf("Successfully converted: %d/%d\n", successful, len(epubs))
		if len(failures) > 0 {
			fmt.Println("Failed conversions:")
			for _, f := range failures {
				fmt.Printf("  - %s: %v\n", f.name, f.err)
			}
		}
		return nil
	},
}

type batchFailure struct {
	name string
	err  error
}

// convertAll converts each named archive under inputDir in order. A failed
// archive is recorded and the loop continues; only context cancellation
// stops the batch early.
func convertAll(ctx context.Context, w *vault.Writer, log *slog.Logger, inputDir string, names []string, includeImages bool) (int, []batchFailure, error) {
	var failures []batchFailure
	successful := 0
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return successful, failures, err
		}
		fmt.Printf("Converting: %s\n", name)
		if _, err := w.WriteBook(filepath.Join(inputDir, name), includeImages); err != nil {
			log.Warn("batch conversion failed", "file", name, "error", err)
			failures = append(failures, batchFailure{name: name, err: err})
			continue
		}
		successful++
	}
	return successful, failures, nil
}

func init() {
	batchCmd.Flags().BoolVar(&batchNoImages, "no-images", false, "skip extracting and including images")
	rootCmd.AddCommand(batchCmd)
}
