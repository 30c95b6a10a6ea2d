package config

// Config holds epub-to-obsidian configuration.
// Loaded from ./config.yaml or ~/.epub-to-obsidian/config.yaml.
type Config struct {
	// OutputDir is where book directories are created (default: current directory).
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
	// IncludeImages controls extraction of images and the cover file.
	IncludeImages bool `mapstructure:"include_images" yaml:"include_images"`
	// Verbose enables debug logging.
	Verbose bool `mapstructure:"verbose" yaml:"verbose"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		OutputDir:     ".",
		IncludeImages: true,
		Verbose:       false,
	}
}
