package pdf

import (
	"fmt"

	"github.com/loanlens/loan-doc-extractor/internal/pdf/security"
)

// Service orchestrates PDF ingestion for loan document extraction: path
// confinement, discovery, validation and text/KV extraction.
type Service struct {
	maxFileSize   int64
	reader        *Reader
	validator     *Validator
	search        *Search
	pathValidator *security.PathValidator
}

// NewService creates a new PDF service rooted at the configured directory
func NewService(maxFileSize int64, configuredDirectory string) (*Service, error) {
	pathValidator, err := security.NewPathValidator(configuredDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to create path validator: %w", err)
	}

	return &Service{
		maxFileSize:   maxFileSize,
		reader:        NewReader(maxFileSize),
		validator:     NewValidator(maxFileSize),
		search:        NewSearch(maxFileSize),
		pathValidator: pathValidator,
	}, nil
}

// ExtractFile reads one PDF into its extraction input form
func (s *Service) ExtractFile(path string) (*Document, error) {
	if err := s.pathValidator.ValidatePath(path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	return s.reader.ExtractDocument(path)
}

// ValidateFile performs validation on a PDF file
func (s *Service) ValidateFile(path string) (*ValidateResult, error) {
	if err := s.pathValidator.ValidatePath(path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	return s.validator.ValidateFile(path), nil
}

// IsValidPDF reports whether the file passes validation
func (s *Service) IsValidPDF(path string) bool {
	if err := s.pathValidator.ValidatePath(path); err != nil {
		return false
	}
	return s.validator.IsValidPDF(path)
}

// SearchDirectory finds PDFs under a directory, optionally query-filtered.
// An empty directory falls back to the configured one.
func (s *Service) SearchDirectory(directory, query string) (*SearchResult, error) {
	if directory == "" {
		directory = s.pathValidator.GetConfiguredDirectory()
	}
	if err := s.pathValidator.ValidateDirectory(directory); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	return s.search.SearchDirectory(directory, query)
}

// FindPDFsInDirectory finds all PDFs under a directory
func (s *Service) FindPDFsInDirectory(directory string) ([]FileInfo, error) {
	result, err := s.SearchDirectory(directory, "")
	if err != nil {
		return nil, err
	}
	return result.Files, nil
}

// ConfiguredDirectory returns the directory the service is rooted at
func (s *Service) ConfiguredDirectory() string {
	return s.pathValidator.GetConfiguredDirectory()
}
