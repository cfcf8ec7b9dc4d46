package constants

import (
	"bytes"
	"strings"
)

// AllowedExtensions holds the file extensions accepted for document upload.
var AllowedExtensions = map[string]struct{}{
	"pdf": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

var pdfMagic = []byte("%PDF-")

// IsPDF sniffs the PDF magic bytes. Used to decide Skipped vs processing for
// batch items before any external call is made.
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, pdfMagic)
}
