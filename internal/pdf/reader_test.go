package pdf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewReader(t *testing.T) {
	tests := []struct {
		name        string
		maxFileSize int64
		want        *Reader
	}{
		{
			name:        "standard max file size",
			maxFileSize: 100 * 1024 * 1024, // 100MB
			want: &Reader{
				maxFileSize: 100 * 1024 * 1024,
				maxTextSize: 10 * 1024 * 1024, // 10MB
			},
		},
		{
			name:        "small max file size",
			maxFileSize: 1024, // 1KB
			want: &Reader{
				maxFileSize: 1024,
				maxTextSize: 10 * 1024 * 1024, // 10MB
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewReader(tt.maxFileSize)
			if got.maxFileSize != tt.want.maxFileSize {
				t.Errorf("NewReader() maxFileSize = %v, want %v", got.maxFileSize, tt.want.maxFileSize)
			}
			if got.maxTextSize != tt.want.maxTextSize {
				t.Errorf("NewReader() maxTextSize = %v, want %v", got.maxTextSize, tt.want.maxTextSize)
			}
		})
	}
}

func TestExtractDocumentErrors(t *testing.T) {
	reader := NewReader(100 * 1024 * 1024)
	tempDir := t.TempDir()

	notPDF := filepath.Join(tempDir, "notes.txt")
	if err := os.WriteFile(notPDF, []byte("not a pdf"), 0o600); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	corrupt := filepath.Join(tempDir, "corrupt.pdf")
	if err := os.WriteFile(corrupt, []byte("not really pdf content"), 0o600); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{
			name:    "empty path",
			path:    "",
			wantErr: "path cannot be empty",
		},
		{
			name:    "nonexistent file",
			path:    filepath.Join(tempDir, "missing.pdf"),
			wantErr: "does not exist",
		},
		{
			name:    "directory",
			path:    tempDir,
			wantErr: "directory",
		},
		{
			name:    "wrong extension",
			path:    notPDF,
			wantErr: "not a PDF",
		},
		{
			name:    "corrupt content",
			path:    corrupt,
			wantErr: "failed to open PDF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reader.ExtractDocument(tt.path)
			if err == nil {
				t.Fatal("ExtractDocument() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ExtractDocument() error = %q, want substring %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestExtractDocumentFileTooLarge(t *testing.T) {
	reader := NewReader(10) // 10 bytes
	tempDir := t.TempDir()

	path := filepath.Join(tempDir, "big.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4 more than ten bytes"), 0o600); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	_, err := reader.ExtractDocument(path)
	if err == nil {
		t.Fatal("ExtractDocument() expected error for oversized file, got nil")
	}
	if !strings.Contains(err.Error(), "file too large") {
		t.Errorf("ExtractDocument() error = %q, want substring %q", err.Error(), "file too large")
	}
}

func TestAnalyzeContentType(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		pages int
		want  string
	}{
		{
			name:  "no text no pages",
			text:  "",
			pages: 0,
			want:  ContentTypeEmpty,
		},
		{
			name:  "no text with pages",
			text:  "",
			pages: 3,
			want:  ContentTypeScanned,
		},
		{
			name:  "whitespace only",
			text:  "   \n\t  ",
			pages: 2,
			want:  ContentTypeScanned,
		},
		{
			name:  "sparse text per page",
			text:  strings.Repeat("a", 40),
			pages: 1,
			want:  ContentTypeScanned,
		},
		{
			name:  "moderate text per page",
			text:  strings.Repeat("a", 200),
			pages: 1,
			want:  ContentTypeMixed,
		},
		{
			name:  "dense text",
			text:  strings.Repeat("a", 2000),
			pages: 1,
			want:  ContentTypeText,
		},
		{
			name:  "dense text diluted over many pages",
			text:  strings.Repeat("a", 2000),
			pages: 50,
			want:  ContentTypeScanned,
		},
		{
			name:  "text with unknown page count",
			text:  "some content",
			pages: 0,
			want:  ContentTypeText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := analyzeContentType(tt.text, tt.pages); got != tt.want {
				t.Errorf("analyzeContentType() = %q, want %q", got, tt.want)
			}
		})
	}
}
