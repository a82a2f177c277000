package ingestion

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// MediaType is the declared type of an uploaded document
type MediaType string

// Supported media types
const (
	MediaTypePDF     MediaType = "pdf"
	MediaTypeDOCX    MediaType = "docx"
	MediaTypeUnknown MediaType = "unknown"
)

// MIME types accepted at the upload boundary
const (
	MIMETypePDF  = "application/pdf"
	MIMETypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// MaxFileSize is the upload ceiling in bytes (10MB).
const MaxFileSize = 10 * 1024 * 1024

// RawDocument is an uploaded byte buffer with its declared media type.
type RawDocument struct {
	FileName  string
	MediaType MediaType
	Content   []byte
}

// Size returns the document size in bytes.
func (d *RawDocument) Size() int64 {
	return int64(len(d.Content))
}

// Document is the plain text extracted from a RawDocument.
type Document struct {
	Text      string
	Pages     int
	MediaType MediaType
}

// MediaTypeFromMIME maps an upload's MIME type to a MediaType.
func MediaTypeFromMIME(mimeType string) MediaType {
	// Browsers may append parameters such as "; charset=binary"
	if idx := strings.Index(mimeType, ";"); idx >= 0 {
		mimeType = mimeType[:idx]
	}
	switch strings.TrimSpace(strings.ToLower(mimeType)) {
	case MIMETypePDF:
		return MediaTypePDF
	case MIMETypeDOCX:
		return MediaTypeDOCX
	default:
		return MediaTypeUnknown
	}
}

// MediaTypeFromFileName maps a file extension to a MediaType.
func MediaTypeFromFileName(name string) MediaType {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return MediaTypePDF
	case ".docx":
		return MediaTypeDOCX
	default:
		return MediaTypeUnknown
	}
}

// ValidateUpload checks an upload before any decoding. Checks run in order:
// presence, media type, size, file name.
func ValidateUpload(doc *RawDocument) error {
	if doc == nil || len(doc.Content) == 0 {
		return &ValidationError{Field: "file", Message: "No file provided"}
	}

	if doc.MediaType != MediaTypePDF && doc.MediaType != MediaTypeDOCX {
		return &ValidationError{Field: "type", Message: "Invalid file type. Please upload a PDF or DOCX file."}
	}

	if doc.Size() > MaxFileSize {
		return &ValidationError{
			Field:   "size",
			Message: fmt.Sprintf("File too large. Maximum size is %dMB.", MaxFileSize/1024/1024),
		}
	}

	if strings.TrimSpace(doc.FileName) == "" {
		return &ValidationError{Field: "name", Message: "Invalid file name"}
	}

	return nil
}

// ExtractText validates doc and decodes it to plain text.
func ExtractText(ctx context.Context, doc *RawDocument) (*Document, error) {
	if err := ValidateUpload(doc); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch doc.MediaType {
	case MediaTypePDF:
		text, pages, err := extractPDFText(doc.Content)
		if err != nil {
			return nil, &ParseError{Format: MediaTypePDF, Message: "PDF parsing failed", Cause: err}
		}
		return &Document{Text: text, Pages: pages, MediaType: MediaTypePDF}, nil
	case MediaTypeDOCX:
		text, err := extractDOCXText(doc.Content)
		if err != nil {
			return nil, &ParseError{Format: MediaTypeDOCX, Message: "DOCX parsing failed", Cause: err}
		}
		return &Document{Text: text, MediaType: MediaTypeDOCX}, nil
	default:
		return nil, &ValidationError{Field: "type", Message: "Unsupported file type"}
	}
}
