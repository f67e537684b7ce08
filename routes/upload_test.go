package routes

import (
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUpload(t *testing.T) {
	header := func(name string, size int64) *multipart.FileHeader {
		return &multipart.FileHeader{Filename: name, Size: size}
	}

	ext, err := validateUpload(header("photo.JPG", 1024), "avatar")
	require.NoError(t, err)
	assert.Equal(t, "jpg", ext)

	ext, err = validateUpload(header("resume.pdf", 1024), "cv")
	require.NoError(t, err)
	assert.Equal(t, "pdf", ext)

	_, err = validateUpload(header("resume.docx", 1024), "cv")
	assert.Error(t, err)

	_, err = validateUpload(header("photo.jpg", 1024), "firmware")
	assert.Error(t, err)

	_, err = validateUpload(header("huge.png", maxUploadSize+1), "avatar")
	assert.Error(t, err)
}
