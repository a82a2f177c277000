package ingestion

import (
	"unicode/utf8"

	"github.com/jonathan/stackmatch/internal/types"
)

// NewMetadata describes doc and the text extracted from it.
func NewMetadata(raw *RawDocument, doc *Document) types.DocumentMetadata {
	meta := types.DocumentMetadata{
		FileName: raw.FileName,
		FileSize: raw.Size(),
		FileType: string(raw.MediaType),
	}
	if doc != nil {
		meta.TotalPages = doc.Pages
		meta.TotalCharacters = utf8.RuneCountInString(doc.Text)
	}
	return meta
}
