package config

import (
	"os"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Helper function to reset pflag.CommandLine for testing
func resetFlags() {
	pflag.CommandLine = pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	viper.Reset()
}

// Helper function to set os.Args for testing
func setArgs(args []string) {
	os.Args = args
}

// Helper function to clear environment variables
func clearEnvVars() {
	os.Unsetenv("LOAN_DOC_MODE")
	os.Unsetenv("LOAN_DOC_DIR")
	os.Unsetenv("LOAN_DOC_OUT")
	os.Unsetenv("LOAN_DOC_EXPECTED")
	os.Unsetenv("LOAN_DOC_MINRATIO")
	os.Unsetenv("LOAN_DOC_LOGLEVEL")
	os.Unsetenv("LOAN_DOC_MAXFILESIZE")
}

func TestLoadFromFlags_DefaultConfig(t *testing.T) {
	// Save original args and environment
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	// Set minimal args (just program name)
	setArgs([]string{"loan-doc-extractor"})
	resetFlags()
	clearEnvVars()

	cfg, err := LoadFromFlags()
	if err != nil {
		t.Fatalf("LoadFromFlags() unexpected error: %v", err)
	}

	// Verify default values
	if cfg.Mode != "batch" {
		t.Errorf("LoadFromFlags() Mode = %v, want %v", cfg.Mode, "batch")
	}
	if cfg.OutputPath != DefaultOutputPath {
		t.Errorf("LoadFromFlags() OutputPath = %v, want %v", cfg.OutputPath, DefaultOutputPath)
	}
	if cfg.MinRatio != DefaultMinRatio {
		t.Errorf("LoadFromFlags() MinRatio = %v, want %v", cfg.MinRatio, DefaultMinRatio)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LoadFromFlags() LogLevel = %v, want %v", cfg.LogLevel, "info")
	}
	if cfg.MaxFileSize != 100*1024*1024 {
		t.Errorf("LoadFromFlags() MaxFileSize = %v, want %v", cfg.MaxFileSize, 100*1024*1024)
	}
	// PDFDirectory should be current working directory
	if cfg.PDFDirectory == "" {
		t.Error("LoadFromFlags() PDFDirectory should not be empty")
	}
}

func TestLoadFromFlags_ValidFlags(t *testing.T) {
	tests := []struct {
		name            string
		argsTemplate    []string
		wantMode        string
		wantOut         string
		wantMinRatio    float64
		wantLogLevel    string
		wantMaxFileSize int64
	}{
		{
			name:            "batch mode with custom directory",
			argsTemplate:    []string{"loan-doc-extractor", "--dir=%s"},
			wantMode:        "batch",
			wantOut:         DefaultOutputPath,
			wantMinRatio:    DefaultMinRatio,
			wantLogLevel:    "info",
			wantMaxFileSize: 100 * 1024 * 1024,
		},
		{
			name:            "stdio mode",
			argsTemplate:    []string{"loan-doc-extractor", "--mode=stdio", "--dir=%s"},
			wantMode:        "stdio",
			wantOut:         DefaultOutputPath,
			wantMinRatio:    DefaultMinRatio,
			wantLogLevel:    "info",
			wantMaxFileSize: 100 * 1024 * 1024,
		},
		{
			name:            "custom output path",
			argsTemplate:    []string{"loan-doc-extractor", "--out=results.xlsx", "--dir=%s"},
			wantMode:        "batch",
			wantOut:         "results.xlsx",
			wantMinRatio:    DefaultMinRatio,
			wantLogLevel:    "info",
			wantMaxFileSize: 100 * 1024 * 1024,
		},
		{
			name:            "custom match ratio",
			argsTemplate:    []string{"loan-doc-extractor", "--minratio=0.9", "--dir=%s"},
			wantMode:        "batch",
			wantOut:         DefaultOutputPath,
			wantMinRatio:    0.9,
			wantLogLevel:    "info",
			wantMaxFileSize: 100 * 1024 * 1024,
		},
		{
			name:            "debug logging",
			argsTemplate:    []string{"loan-doc-extractor", "--loglevel=debug", "--dir=%s"},
			wantMode:        "batch",
			wantOut:         DefaultOutputPath,
			wantMinRatio:    DefaultMinRatio,
			wantLogLevel:    "debug",
			wantMaxFileSize: 100 * 1024 * 1024,
		},
		{
			name:            "custom max file size",
			argsTemplate:    []string{"loan-doc-extractor", "--maxfilesize=50000000", "--dir=%s"},
			wantMode:        "batch",
			wantOut:         DefaultOutputPath,
			wantMinRatio:    DefaultMinRatio,
			wantLogLevel:    "info",
			wantMaxFileSize: 50000000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Save original args and environment
			originalArgs := os.Args
			defer func() {
				os.Args = originalArgs
				resetFlags()
				clearEnvVars()
			}()

			// Create temp directory for this test
			tempDir := t.TempDir()

			// Build args with temp directory
			args := make([]string, len(tt.argsTemplate))
			for i, arg := range tt.argsTemplate {
				if arg == "--dir=%s" {
					args[i] = "--dir=" + tempDir
				} else {
					args[i] = arg
				}
			}

			setArgs(args)
			resetFlags()
			clearEnvVars()

			cfg, err := LoadFromFlags()
			if err != nil {
				t.Fatalf("LoadFromFlags() unexpected error: %v", err)
			}

			if cfg.Mode != tt.wantMode {
				t.Errorf("LoadFromFlags() Mode = %v, want %v", cfg.Mode, tt.wantMode)
			}
			if cfg.OutputPath != tt.wantOut {
				t.Errorf("LoadFromFlags() OutputPath = %v, want %v", cfg.OutputPath, tt.wantOut)
			}
			if cfg.MinRatio != tt.wantMinRatio {
				t.Errorf("LoadFromFlags() MinRatio = %v, want %v", cfg.MinRatio, tt.wantMinRatio)
			}
			if cfg.LogLevel != tt.wantLogLevel {
				t.Errorf("LoadFromFlags() LogLevel = %v, want %v", cfg.LogLevel, tt.wantLogLevel)
			}
			if cfg.MaxFileSize != tt.wantMaxFileSize {
				t.Errorf("LoadFromFlags() MaxFileSize = %v, want %v", cfg.MaxFileSize, tt.wantMaxFileSize)
			}
			// PDFDirectory should be expanded to absolute path
			if cfg.PDFDirectory == "" {
				t.Error("LoadFromFlags() PDFDirectory should not be empty")
			}
		})
	}
}

func TestLoadFromFlags_EnvironmentVariables(t *testing.T) {
	// Save original args and environment
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	// Create temp directory for testing
	tempDir := t.TempDir()

	// Set environment variables
	os.Setenv("LOAN_DOC_MODE", "stdio")
	os.Setenv("LOAN_DOC_DIR", tempDir)
	os.Setenv("LOAN_DOC_OUT", "env_out.xlsx")
	os.Setenv("LOAN_DOC_LOGLEVEL", "warn")
	os.Setenv("LOAN_DOC_MAXFILESIZE", "200000000")

	setArgs([]string{"loan-doc-extractor"})
	resetFlags()

	cfg, err := LoadFromFlags()
	if err != nil {
		t.Fatalf("LoadFromFlags() unexpected error: %v", err)
	}

	if cfg.Mode != "stdio" {
		t.Errorf("LoadFromFlags() Mode = %v, want %v", cfg.Mode, "stdio")
	}
	if cfg.OutputPath != "env_out.xlsx" {
		t.Errorf("LoadFromFlags() OutputPath = %v, want %v", cfg.OutputPath, "env_out.xlsx")
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LoadFromFlags() LogLevel = %v, want %v", cfg.LogLevel, "warn")
	}
	if cfg.MaxFileSize != 200000000 {
		t.Errorf("LoadFromFlags() MaxFileSize = %v, want %v", cfg.MaxFileSize, 200000000)
	}
}

func TestLoadFromFlags_FlagOverridesEnvironment(t *testing.T) {
	// Save original args and environment
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	tempDir := t.TempDir()

	// Set environment variables
	os.Setenv("LOAN_DOC_MODE", "stdio")
	os.Setenv("LOAN_DOC_OUT", "env_out.xlsx")

	// Set args that should override environment
	setArgs([]string{"loan-doc-extractor", "--mode=batch", "--out=flag_out.xlsx", "--dir=" + tempDir})
	resetFlags()

	cfg, err := LoadFromFlags()
	if err != nil {
		t.Fatalf("LoadFromFlags() unexpected error: %v", err)
	}

	// Flags should override environment variables
	if cfg.Mode != "batch" {
		t.Errorf("LoadFromFlags() Mode = %v, want %v (should override env)", cfg.Mode, "batch")
	}
	if cfg.OutputPath != "flag_out.xlsx" {
		t.Errorf("LoadFromFlags() OutputPath = %v, want %v (should override env)", cfg.OutputPath, "flag_out.xlsx")
	}
}

func TestLoadFromFlags_InvalidMode(t *testing.T) {
	// Save original args
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	tempDir := t.TempDir()
	setArgs([]string{"loan-doc-extractor", "--mode=invalid", "--dir=" + tempDir})
	resetFlags()
	clearEnvVars()

	_, err := LoadFromFlags()
	if err == nil {
		t.Error("LoadFromFlags() expected error for invalid mode")
	}
	if err != nil && !strings.Contains(err.Error(), "mode must be either 'batch' or 'stdio'") {
		t.Errorf("LoadFromFlags() error = %v, want error about invalid mode", err)
	}
}

func TestLoadFromFlags_InvalidMinRatio(t *testing.T) {
	// Save original args
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	tempDir := t.TempDir()
	setArgs([]string{"loan-doc-extractor", "--minratio=2.0", "--dir=" + tempDir})
	resetFlags()
	clearEnvVars()

	_, err := LoadFromFlags()
	if err == nil {
		t.Error("LoadFromFlags() expected error for invalid min ratio")
	}
	if err != nil && !strings.Contains(err.Error(), "minimum match ratio") {
		t.Errorf("LoadFromFlags() error = %v, want error about match ratio", err)
	}
}

func TestLoadFromFlags_InvalidLogLevel(t *testing.T) {
	// Save original args
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	tempDir := t.TempDir()
	setArgs([]string{"loan-doc-extractor", "--loglevel=invalid", "--dir=" + tempDir})
	resetFlags()
	clearEnvVars()

	_, err := LoadFromFlags()
	if err == nil {
		t.Error("LoadFromFlags() expected error for invalid log level")
	}
	if err != nil && !strings.Contains(err.Error(), "invalid log level") {
		t.Errorf("LoadFromFlags() error = %v, want error about invalid log level", err)
	}
}

func TestLoadFromFlags_VersionFlag(t *testing.T) {
	// Save original args
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	setArgs([]string{"loan-doc-extractor", "--version"})
	resetFlags()
	clearEnvVars()

	_, err := LoadFromFlags()
	if err == nil {
		t.Error("LoadFromFlags() expected version error")
	}
	if err != nil && err.Error() != "version requested" {
		t.Errorf("LoadFromFlags() error = %v, want 'version requested'", err)
	}
}
