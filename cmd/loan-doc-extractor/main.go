package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/loanlens/loan-doc-extractor/internal/config"
	"github.com/loanlens/loan-doc-extractor/internal/fields"
	"github.com/loanlens/loan-doc-extractor/internal/mcp"
	"github.com/loanlens/loan-doc-extractor/internal/pdf"
	"github.com/loanlens/loan-doc-extractor/internal/runner"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// setupLogging builds the process logger. In stdio mode everything goes to
// stderr so log lines cannot interfere with the MCP protocol on stdout.
func setupLogging(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// runBatchMode runs the extraction pipeline once with signal handling
func runBatchMode(ctx context.Context, cancel context.CancelFunc, r *runner.Runner, logger *slog.Logger) {
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	runErrCh := make(chan error, 1)
	go func() {
		runErrCh <- r.Run(ctx)
	}()

	select {
	case sig := <-signalCh:
		logger.Info("received signal, cancelling run", "signal", sig.String())
		cancel()
		if err := <-runErrCh; err != nil {
			logger.Error("run stopped with error", "error", err)
			os.Exit(1)
		}

	case err := <-runErrCh:
		if err != nil {
			logger.Error("run failed", "error", err)
			os.Exit(1)
		}
	}
}

// runStdioMode serves the MCP tools until the parent closes stdin
func runStdioMode(ctx context.Context, server *mcp.Server, logger *slog.Logger) {
	if err := server.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := setupLogging(cfg)

	// Set version if it was provided during build
	if version != "dev" {
		cfg.Version = version
	}

	registry, err := fields.NewRegistry()
	if err != nil {
		logger.Error("failed to build field registry", "error", err)
		os.Exit(1)
	}

	pdfService, err := pdf.NewService(cfg.MaxFileSize, cfg.PDFDirectory)
	if err != nil {
		logger.Error("failed to create PDF service", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.IsStdioMode() {
		server, err := mcp.NewServer(cfg, pdfService, registry, logger)
		if err != nil {
			logger.Error("failed to create MCP server", "error", err)
			os.Exit(1)
		}
		runStdioMode(ctx, server, logger)
		return
	}

	logger.Debug("starting batch run", "config", cfg.String())
	r := runner.New(cfg, pdfService, registry, logger)
	runBatchMode(ctx, cancel, r, logger)
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("Loan Doc Extractor\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
