package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Spycner/epub-to-obsidian/internal/config"
	"github.com/Spycner/epub-to-obsidian/version"
)

var (
	cfgFile   string
	outputDir string
	verbose   bool

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "epub-to-obsidian",
	Short: "Convert EPUB books to Obsidian-compatible markdown vaults",
	Long: `epub-to-obsidian converts EPUB books into folders of interlinked
markdown files suitable for an Obsidian vault.

Each book becomes its own directory containing:
  - An index document built from the book's table of contents
  - An info document with the book metadata
  - One markdown file per chapter with previous/next navigation
  - Extracted images and the cover (optional)`,
	Version:      version.GitRelease,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.epub-to-obsidian/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputDir, "output", "o", "", "output directory for converted files (default: from config)",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "show detailed progress information",
	)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cm, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}
		cfg = cm.Get()

		level := slog.LevelInfo
		if verbose || cfg.Verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
		return nil
	}

	rootCmd.AddCommand(versionCmd)
}

// resolveOutputDir applies flag-over-config precedence for the output root.
func resolveOutputDir() string {
	if outputDir != "" {
		return outputDir
	}
	if cfg != nil && cfg.OutputDir != "" {
		return cfg.OutputDir
	}
	return "."
}
