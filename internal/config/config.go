package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeBatch = "batch"
	ModeStdio = "stdio"

	// Default values
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB
	DefaultMinRatio    = 0.82
	DefaultOutputPath  = "loan_extraction.xlsx"

	// Directory permissions
	DefaultDirPerm = 0o750
)

// Config holds all configuration for the loan document extractor
type Config struct {
	// Run mode: "batch" runs the extraction pipeline once over a
	// directory, "stdio" serves the tools over MCP standard I/O
	Mode string

	// Extraction configuration
	PDFDirectory string
	OutputPath   string
	ExpectedPath string
	MinRatio     float64

	// Application configuration
	Version     string
	ServerName  string
	LogLevel    string
	MaxFileSize int64 // Maximum PDF file size in bytes
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		// Fallback to current directory if working directory cannot be determined
		currentDir = "."
	}

	return &Config{
		Mode:         ModeBatch,
		PDFDirectory: currentDir,
		OutputPath:   DefaultOutputPath,
		ExpectedPath: "",
		MinRatio:     DefaultMinRatio,
		Version:      "1.0.0",
		ServerName:   "loan-doc-extractor",
		LogLevel:     DefaultLogLevel,
		MaxFileSize:  DefaultMaxFileSize,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	// Check for version flag before parsing
	if err := checkVersionFlag(); err != nil {
		return nil, err
	}

	pflag.Parse()

	populateConfigFromViper(cfg)

	// Expand paths if needed
	if cfg.PDFDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.PDFDirectory); err == nil {
			cfg.PDFDirectory = expandedPath
		}
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	// Set environment variable prefix
	viper.SetEnvPrefix("LOAN_DOC")
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("dir", cfg.PDFDirectory)
	viper.SetDefault("out", cfg.OutputPath)
	viper.SetDefault("expected", cfg.ExpectedPath)
	viper.SetDefault("minratio", cfg.MinRatio)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Run mode: 'batch' for one-shot directory extraction, 'stdio' for MCP standard I/O")
	pflag.String("dir", cfg.PDFDirectory, "Directory containing loan document PDFs")
	pflag.String("out", cfg.OutputPath, "Path of the extraction workbook to write (batch mode)")
	pflag.String("expected", cfg.ExpectedPath, "Optional expected-values workbook to compare against (batch mode)")
	pflag.Float64("minratio", cfg.MinRatio, "Minimum similarity for fuzzy label matching (0..1)")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("mode", pflag.Lookup("mode"))
	_ = viper.BindPFlag("dir", pflag.Lookup("dir"))
	_ = viper.BindPFlag("out", pflag.Lookup("out"))
	_ = viper.BindPFlag("expected", pflag.Lookup("expected"))
	_ = viper.BindPFlag("minratio", pflag.Lookup("minratio"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nLoan Doc Extractor - field extraction from loan document PDFs\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s --dir=/path/to/pdfs                       "+
			"# extract every PDF, write loan_extraction.xlsx\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --dir=/path/to/pdfs --expected=truth.xlsx "+
			"# extract and compare against expected values\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=stdio --dir=/path/to/pdfs          # serve tools over MCP\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  LOAN_DOC_MODE        Run mode\n")
		fmt.Fprintf(os.Stderr, "  LOAN_DOC_DIR         PDF directory\n")
		fmt.Fprintf(os.Stderr, "  LOAN_DOC_OUT         Output workbook path\n")
		fmt.Fprintf(os.Stderr, "  LOAN_DOC_EXPECTED    Expected-values workbook path\n")
		fmt.Fprintf(os.Stderr, "  LOAN_DOC_MINRATIO    Minimum fuzzy match similarity\n")
		fmt.Fprintf(os.Stderr, "  LOAN_DOC_LOGLEVEL    Log level\n")
		fmt.Fprintf(os.Stderr, "  LOAN_DOC_MAXFILESIZE Maximum file size\n")
	}
}

// checkVersionFlag checks if version flag was requested
func checkVersionFlag() error {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			return fmt.Errorf("version requested")
		}
	}
	return nil
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.PDFDirectory = viper.GetString("dir")
	cfg.OutputPath = viper.GetString("out")
	cfg.ExpectedPath = viper.GetString("expected")
	cfg.MinRatio = viper.GetFloat64("minratio")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Validate mode
	if c.Mode != ModeBatch && c.Mode != ModeStdio {
		return errors.New("mode must be either 'batch' or 'stdio'")
	}

	// Validate PDF directory
	if c.PDFDirectory == "" {
		return errors.New("PDF directory cannot be empty")
	}

	// Check if PDF directory exists, create if it doesn't
	if _, err := os.Stat(c.PDFDirectory); os.IsNotExist(err) {
		if err := os.MkdirAll(c.PDFDirectory, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create PDF directory %s: %w", c.PDFDirectory, err)
		}
	} else if err != nil {
		return fmt.Errorf("cannot access PDF directory %s: %w", c.PDFDirectory, err)
	}

	// Batch mode writes a workbook, so it needs a destination
	if c.Mode == ModeBatch && c.OutputPath == "" {
		return errors.New("output path cannot be empty in batch mode")
	}

	// An expected workbook is optional, but when given it must exist
	if c.ExpectedPath != "" {
		if _, err := os.Stat(c.ExpectedPath); err != nil {
			return fmt.Errorf("cannot access expected workbook %s: %w", c.ExpectedPath, err)
		}
	}

	if c.MinRatio <= 0 || c.MinRatio > 1 {
		return errors.New("minimum match ratio must be in (0, 1]")
	}

	// Validate max file size
	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, PDFDirectory: %s, OutputPath: %s, LogLevel: %s, MaxFileSize: %d}",
		c.Mode, c.PDFDirectory, c.OutputPath, c.LogLevel, c.MaxFileSize)
}

// IsBatchMode returns true if running the one-shot extraction pipeline
func (c *Config) IsBatchMode() bool {
	return c.Mode == ModeBatch
}

// IsStdioMode returns true if serving tools over stdio
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}
