package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/loanlens/loan-doc-extractor/internal/config"
	"github.com/loanlens/loan-doc-extractor/internal/descriptions"
	"github.com/loanlens/loan-doc-extractor/internal/fields"
	"github.com/loanlens/loan-doc-extractor/internal/pdf"
)

// Server exposes loan field extraction over the Model Context Protocol
type Server struct {
	config     *config.Config
	pdfService *pdf.Service
	resolver   *fields.Resolver
	registry   *fields.Registry
	logger     *slog.Logger
	mcpServer  *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, pdfService *pdf.Service, registry *fields.Registry, logger *slog.Logger) (*Server, error) {
	if pdfService == nil {
		return nil, fmt.Errorf("pdfService cannot be nil")
	}
	if registry == nil {
		return nil, fmt.Errorf("registry cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:     cfg,
		pdfService: pdfService,
		resolver: fields.NewResolver(registry,
			fields.WithMinRatio(cfg.MinRatio),
			fields.WithLogger(logger)),
		registry:  registry,
		logger:    logger,
		mcpServer: mcpServer,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	extractFileTool := mcp.NewTool(
		"loan_extract_file",
		mcp.WithDescription(descriptions.LoanExtractFileDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the loan document PDF"),
		),
	)
	s.mcpServer.AddTool(extractFileTool, s.handleExtractFile)

	extractDirectoryTool := mcp.NewTool(
		"loan_extract_directory",
		mcp.WithDescription(descriptions.LoanExtractDirectoryDescription),
		mcp.WithString("directory",
			mcp.Description("Directory to process (uses configured directory if empty)"),
		),
	)
	s.mcpServer.AddTool(extractDirectoryTool, s.handleExtractDirectory)

	validateFileTool := mcp.NewTool(
		"loan_validate_file",
		mcp.WithDescription(descriptions.LoanValidateFileDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(validateFileTool, s.handleValidateFile)

	serverInfoTool := mcp.NewTool(
		"loan_server_info",
		mcp.WithDescription(descriptions.LoanServerInfoDescription),
	)
	s.mcpServer.AddTool(serverInfoTool, s.handleServerInfo)
}

// Handler functions
func (s *Server) handleExtractFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	doc, err := s.pdfService.ExtractFile(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	record := s.resolver.Resolve(fields.Document{Text: doc.Text, KVHints: doc.KVHints})

	var b strings.Builder
	fmt.Fprintf(&b, "Extracted fields from: %s\n", doc.Path)
	fmt.Fprintf(&b, "Pages: %d, Size: %d bytes, Content Type: %s\n", doc.Pages, doc.Size, doc.ContentType)
	if doc.ContentType == pdf.ContentTypeScanned {
		b.WriteString("\nWARNING: this PDF appears to contain scanned images with little extractable text; field resolution will be unreliable.\n")
	}
	b.WriteString("\n")
	b.WriteString(s.formatRecord(record))

	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleExtractDirectory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	directory := s.config.PDFDirectory // default
	if dir, ok := args["directory"].(string); ok && dir != "" {
		directory = dir
	}

	files, err := s.pdfService.FindPDFsInDirectory(directory)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(files) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No PDF files found in directory: %s", directory)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Extracted %d PDF file(s) from directory: %s\n", len(files), directory)

	for _, file := range files {
		b.WriteString("\n")
		fmt.Fprintf(&b, "=== %s ===\n", file.Name)

		doc, err := s.pdfService.ExtractFile(file.Path)
		if err != nil {
			s.logger.Warn("extraction failed", "file", file.Path, "error", err)
			fmt.Fprintf(&b, "ERROR: %v\n", err)
			continue
		}

		record := s.resolver.Resolve(fields.Document{Text: doc.Text, KVHints: doc.KVHints})
		b.WriteString(s.formatRecord(record))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleValidateFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.pdfService.ValidateFile(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.Valid {
		responseText = fmt.Sprintf("PDF file %s is valid and readable", result.Path)
	} else {
		responseText = fmt.Sprintf("PDF validation failed for %s: %s", result.Path, result.Message)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleServerInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s v%s - Server Information\n", s.config.ServerName, s.config.Version)
	fmt.Fprintf(&b, "Configured Directory: %s\n", s.config.PDFDirectory)
	fmt.Fprintf(&b, "Max File Size: %d MB\n\n", s.config.MaxFileSize/(1024*1024))

	headers := fields.ExportHeaders()
	b.WriteString(fmt.Sprintf("Extractable Fields (%d):\n", s.registry.Len()))
	for _, key := range fields.DisplayOrder() {
		fmt.Fprintf(&b, "  %-26s %s\n", key, headers[key])
	}

	files, err := s.pdfService.FindPDFsInDirectory(s.config.PDFDirectory)
	if err == nil {
		b.WriteString("\n")
		if len(files) == 0 {
			b.WriteString("Directory Contents: no PDF files found\n")
		} else {
			fmt.Fprintf(&b, "Directory Contents (%d PDF files):\n", len(files))
			for i, file := range files {
				if i >= 10 { // Limit to first 10 files for readability
					fmt.Fprintf(&b, "  ... and %d more files\n", len(files)-10)
					break
				}
				fmt.Fprintf(&b, "  %d. %s (%d bytes)\n", i+1, file.Name, file.Size)
			}
		}
	}

	b.WriteString("\nAvailable Tools:\n")
	b.WriteString("  loan_extract_file       Extract fields from one PDF\n")
	b.WriteString("  loan_extract_directory  Extract fields from every PDF in a directory\n")
	b.WriteString("  loan_validate_file      Check a PDF is readable\n")
	b.WriteString("  loan_server_info        This summary\n")

	return mcp.NewToolResultText(b.String()), nil
}

// formatRecord renders a resolved record in display order, one field per
// line, empty values shown as "-" so every field is always visible.
func (s *Server) formatRecord(record fields.Record) string {
	headers := fields.ExportHeaders()
	var b strings.Builder
	for _, key := range fields.DisplayOrder() {
		value := record[key]
		if value == "" {
			value = "-"
		}
		fmt.Fprintf(&b, "%-32s %s\n", headers[key]+":", value)
	}
	return b.String()
}

// Run starts the MCP server over standard I/O
func (s *Server) Run(_ context.Context) error {
	s.logger.Debug("starting MCP server in stdio mode", "dir", s.config.PDFDirectory)

	// Use the mark3labs/mcp-go server.ServeStdio function
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}
