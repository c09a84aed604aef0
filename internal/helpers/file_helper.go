package helpers

import (
	"mime"
	"path/filepath"
	"strings"
)

// GetFileType returns the lower-cased extension without the dot, or
// "unknown" when the name has none.
func GetFileType(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext != "" && ext != "." {
		return ext[1:]
	}
	return "unknown"
}

// ContentTypeFor keeps a declared content type and otherwise guesses one
// from the file extension.
func ContentTypeFor(fileName string, declared string) string {
	declared = strings.TrimSpace(declared)
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	if guessed := mime.TypeByExtension(strings.ToLower(filepath.Ext(fileName))); guessed != "" {
		return guessed
	}
	return "application/octet-stream"
}
