package pdf

// Content type classification for a PDF's text layer
const (
	ContentTypeText    = "text"
	ContentTypeScanned = "scanned_images"
	ContentTypeMixed   = "mixed"
	ContentTypeEmpty   = "no_content"
)

// Document is the materialized extraction input for one PDF: the full page
// text (pages joined by newlines) plus the label/value hints harvested from
// table-shaped rows.
type Document struct {
	Path        string            `json:"path"`
	Name        string            `json:"name"`
	Text        string            `json:"text"`
	KVHints     map[string]string `json:"kv_hints,omitempty"`
	Pages       int               `json:"pages"`
	Size        int64             `json:"size"`
	ContentType string            `json:"content_type"`
}

// FileInfo represents information about a PDF file
type FileInfo struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	ModifiedTime string `json:"modified_time"`
}

// SearchResult represents the result of a directory scan
type SearchResult struct {
	Files      []FileInfo `json:"files"`
	TotalCount int        `json:"total_count"`
	Directory  string     `json:"directory"`
	Query      string     `json:"query,omitempty"`
}

// ValidateResult reports whether a file is a readable PDF
type ValidateResult struct {
	Path    string `json:"path"`
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}
