package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from flags, environment
// variables, .env files, and defaults.
type Config struct {
	// Global flags
	Verbose  bool
	Quiet    bool
	NoColor  bool
	LogLevel string
	Format   string

	// Output destinations
	JSONPath string
	CSVPath  string

	// Run behavior
	Detailed      bool
	Table         bool
	ConflictsOnly bool
	SkipXcodes    bool

	// Logging configuration
	LogFormat string
}

// Default output paths. The JSON file doubles as the previous-run baseline
// for change detection.
const (
	DefaultJSONPath = "sdk_map.json"
	DefaultCSVPath  = "sdk_map.csv"
)

// LoadConfig loads configuration in order of precedence: command-line flags
// (applied later by cobra), environment variables, .env files, defaults.
func LoadConfig() (*Config, error) {
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvPrefix("SDKMAP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	viper.SetDefault("json", DefaultJSONPath)
	viper.SetDefault("csv", DefaultCSVPath)

	config := &Config{
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no-color"),
		Format:  viper.GetString("format"),

		JSONPath: viper.GetString("json"),
		CSVPath:  viper.GetString("csv"),

		Detailed:      viper.GetBool("detailed"),
		Table:         viper.GetBool("table"),
		ConflictsOnly: viper.GetBool("conflicts-only"),
		SkipXcodes:    viper.GetBool("skip-xcodes"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", ""),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
	}

	return config, nil
}

// UpdateFromFlags applies parsed command flags on top of the loaded config,
// so flags take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env.
func loadEnvFiles() {
	envFiles := []string{
		".env",
		".env.local",
	}
	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
