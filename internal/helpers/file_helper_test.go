package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetFileType(t *testing.T) {
	assert.Equal(t, "pdf", GetFileType("Informe.PDF"))
	assert.Equal(t, "gz", GetFileType("backup.tar.gz"))
	assert.Equal(t, "unknown", GetFileType("README"))
	assert.Equal(t, "unknown", GetFileType("trailing."))
}

func TestContentTypeFor(t *testing.T) {
	assert.Equal(t, "text/csv", ContentTypeFor("datos.xlsx", "text/csv"))
	assert.Equal(t, "application/pdf", ContentTypeFor("acta.pdf", ""))
	assert.Equal(t, "application/pdf", ContentTypeFor("acta.PDF", "application/octet-stream"))
	assert.Equal(t, "application/octet-stream", ContentTypeFor("blob.zzz-unknown", ""))
}
