package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Reader extracts text and table-row KV hints from PDF files
type Reader struct {
	maxFileSize int64
	maxTextSize int
}

// NewReader creates a new PDF reader with the specified constraints
func NewReader(maxFileSize int64) *Reader {
	return &Reader{
		maxFileSize: maxFileSize,
		maxTextSize: 10 * 1024 * 1024, // 10MB text limit
	}
}

// ExtractDocument reads a PDF and materializes the extraction input: full
// page text joined by newlines plus KV hints from row layout. Individual
// page failures are skipped so one bad page does not lose the document.
func (r *Reader) ExtractDocument(path string) (*Document, error) {
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	// Check if file exists and get basic info
	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}

	if err := r.validatePDFFile(path, fileInfo); err != nil {
		return nil, err
	}

	// Open and parse PDF
	f, pdfReader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	text, err := r.extractTextContent(pdfReader)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text content: %w", err)
	}

	doc := &Document{
		Path:        path,
		Name:        filepath.Base(path),
		Text:        text,
		KVHints:     r.extractKVHints(pdfReader),
		Pages:       pdfReader.NumPage(),
		Size:        fileInfo.Size(),
		ContentType: analyzeContentType(text, pdfReader.NumPage()),
	}
	return doc, nil
}

// validatePDFFile performs basic validation on a PDF file
func (r *Reader) validatePDFFile(filePath string, fileInfo os.FileInfo) error {
	// Check if it's a regular file (not a directory)
	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", filePath)
	}
	if !strings.HasSuffix(strings.ToLower(filePath), ".pdf") {
		return fmt.Errorf("file is not a PDF: %s", filePath)
	}
	if fileInfo.Size() > r.maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), r.maxFileSize)
	}
	return nil
}

// extractTextContent extracts plain text page by page, joined by newlines
func (r *Reader) extractTextContent(pdfReader *pdf.Reader) (string, error) {
	var builder strings.Builder
	totalLength := 0

	for pageNum := 1; pageNum <= pdfReader.NumPage(); pageNum++ {
		page := pdfReader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			// Continue with other pages even if one fails
			continue
		}

		if totalLength+len(content) > r.maxTextSize {
			remaining := r.maxTextSize - totalLength
			if remaining > 0 {
				builder.WriteString(content[:remaining])
			}
			break
		}

		builder.WriteString(content)
		totalLength += len(content)

		if pageNum < pdfReader.NumPage() {
			builder.WriteString("\n")
		}
	}

	return builder.String(), nil
}

// extractKVHints walks every page's positioned rows and harvests
// label/value pairs. Row extraction errors are per-page and non-fatal.
func (r *Reader) extractKVHints(pdfReader *pdf.Reader) map[string]string {
	hints := make(map[string]string)
	for pageNum := 1; pageNum <= pdfReader.NumPage(); pageNum++ {
		page := pdfReader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		harvestRowHints(rows, hints)
	}
	return hints
}

// analyzeContentType classifies the text layer: a document whose pages
// average almost no extractable characters is most likely scanned images.
func analyzeContentType(text string, pages int) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		if pages > 0 {
			return ContentTypeScanned
		}
		return ContentTypeEmpty
	}
	if pages <= 0 {
		return ContentTypeText
	}
	charsPerPage := len(trimmed) / pages
	switch {
	case charsPerPage < 50:
		return ContentTypeScanned
	case charsPerPage < 300:
		return ContentTypeMixed
	default:
		return ContentTypeText
	}
}
