package storage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["image"][0]
}

func TestReadFileAcceptsImage(t *testing.T) {
	data, contentType, err := ReadFile(fileHeader(t, "fridge.png", pngHeader), AllowImage...)

	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)
	assert.Equal(t, pngHeader, data)
}

func TestReadFileRejectsNonImage(t *testing.T) {
	_, _, err := ReadFile(fileHeader(t, "notes.txt", []byte("two eggs and flour")), AllowImage...)
	assert.ErrorIs(t, err, ErrFileTypeNotAllowed)

	_, _, err = ReadFile(nil, AllowImage...)
	assert.ErrorIs(t, err, ErrFileTypeNotAllowed)
}

func TestReadFileAcceptsHeic(t *testing.T) {
	heic := []byte{0, 0, 0, 0x18, 'f', 't', 'y', 'p', 'h', 'e', 'i', 'c', 0, 0, 0, 0, 'm', 'i', 'f', '1', 'h', 'e', 'i', 'c'}

	_, contentType, err := ReadFile(fileHeader(t, "IMG_0042.HEIC", heic), AllowImage...)

	require.NoError(t, err)
	assert.Equal(t, "image/heic", contentType)
	assert.Equal(t, ".heic", extensionFor(contentType))
}

func TestReadFileRejectsOversizedUpload(t *testing.T) {
	_, _, err := ReadFile(&multipart.FileHeader{Filename: "huge.png", Size: maxUploadSize + 1}, AllowImage...)

	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestPublicLink(t *testing.T) {
	s := &awsS3{bucket: "kitchen", region: "ap-southeast-1"}

	link := s.GetPublicLinkKey("scans/abc.png")
	assert.Equal(t, "https://kitchen.s3.ap-southeast-1.amazonaws.com/scans/abc.png", link)
}
