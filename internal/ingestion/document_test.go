package ingestion

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fumiama/go-docx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaTypeFromMIME(t *testing.T) {
	assert.Equal(t, MediaTypePDF, MediaTypeFromMIME("application/pdf"))
	assert.Equal(t, MediaTypePDF, MediaTypeFromMIME("Application/PDF; charset=binary"))
	assert.Equal(t, MediaTypeDOCX, MediaTypeFromMIME(MIMETypeDOCX))
	assert.Equal(t, MediaTypeUnknown, MediaTypeFromMIME("text/plain"))
	assert.Equal(t, MediaTypeUnknown, MediaTypeFromMIME(""))
}

func TestMediaTypeFromFileName(t *testing.T) {
	assert.Equal(t, MediaTypePDF, MediaTypeFromFileName("resume.PDF"))
	assert.Equal(t, MediaTypeDOCX, MediaTypeFromFileName("/tmp/cv.docx"))
	assert.Equal(t, MediaTypeUnknown, MediaTypeFromFileName("cv.doc"))
}

func TestValidateUpload(t *testing.T) {
	tests := []struct {
		name    string
		doc     *RawDocument
		message string
	}{
		{"nil", nil, "No file provided"},
		{"empty", &RawDocument{FileName: "a.pdf", MediaType: MediaTypePDF}, "No file provided"},
		{"wrong type", &RawDocument{FileName: "a.txt", MediaType: MediaTypeUnknown, Content: []byte("x")}, "Invalid file type. Please upload a PDF or DOCX file."},
		{"too large", &RawDocument{FileName: "a.pdf", MediaType: MediaTypePDF, Content: make([]byte, MaxFileSize+1)}, "File too large. Maximum size is 10MB."},
		{"no name", &RawDocument{FileName: "  ", MediaType: MediaTypeDOCX, Content: []byte("x")}, "Invalid file name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUpload(tt.doc)
			require.Error(t, err)

			var valErr *ValidationError
			require.True(t, errors.As(err, &valErr))
			assert.Equal(t, tt.message, valErr.Message)
		})
	}
}

func TestValidateUpload_TypeCheckedBeforeSize(t *testing.T) {
	doc := &RawDocument{FileName: "big.txt", MediaType: MediaTypeUnknown, Content: make([]byte, MaxFileSize+1)}
	err := ValidateUpload(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid file type")
}

func TestValidateUpload_AtLimit(t *testing.T) {
	doc := &RawDocument{FileName: "ok.pdf", MediaType: MediaTypePDF, Content: make([]byte, MaxFileSize)}
	assert.NoError(t, ValidateUpload(doc))
}

func TestExtractText_MalformedPDF(t *testing.T) {
	doc := &RawDocument{FileName: "bad.pdf", MediaType: MediaTypePDF, Content: []byte("definitely not a pdf")}

	_, err := ExtractText(context.Background(), doc)
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, MediaTypePDF, parseErr.Format)
}

func TestExtractText_MalformedDOCX(t *testing.T) {
	doc := &RawDocument{FileName: "bad.docx", MediaType: MediaTypeDOCX, Content: []byte("PK not really a zip")}

	_, err := ExtractText(context.Background(), doc)
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, MediaTypeDOCX, parseErr.Format)
}

func TestExtractText_DOCX(t *testing.T) {
	w := docx.New().WithDefaultTheme()
	w.AddParagraph().AddText("Jane Doe")
	w.AddParagraph().AddText("SKILLS")
	w.AddParagraph().AddText("Go, Kubernetes")

	var buf bytes.Buffer
	_, err := w.WriteTo(&buf)
	require.NoError(t, err)

	doc := &RawDocument{FileName: "cv.docx", MediaType: MediaTypeDOCX, Content: buf.Bytes()}
	out, err := ExtractText(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, MediaTypeDOCX, out.MediaType)
	assert.Contains(t, out.Text, "Jane Doe")
	assert.Contains(t, out.Text, "Go, Kubernetes")
	assert.Equal(t, "Go, Kubernetes", Segment(Normalize(out.Text)).Get("skills"))
}

func TestExtractText_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	doc := &RawDocument{FileName: "a.pdf", MediaType: MediaTypePDF, Content: []byte("%PDF-1.4")}
	_, err := ExtractText(ctx, doc)
	assert.ErrorIs(t, err, context.Canceled)
}
