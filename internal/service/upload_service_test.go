package service

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/acharyaskillx/skillquestify-api/internal/models"
)

type storageStub struct {
	uploaded bytes.Buffer
	err      error
}

func (s *storageStub) Upload(ctx context.Context, name string, reader io.Reader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.uploaded.Reset()
	if _, err := s.uploaded.ReadFrom(reader); err != nil {
		return "", err
	}
	return "https://cdn.example.com/" + name, nil
}

type uploadRepoStub struct {
	record models.UploadRecord
}

func (u *uploadRepoStub) Create(ctx context.Context, record *models.UploadRecord) error {
	u.record = *record
	return nil
}

func buildFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Disposition": {"form-data; name=\"file\"; filename=\"" + filename + "\""},
		"Content-Type":        {"application/octet-stream"},
	})
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	writer.Close()

	reader := multipart.NewReader(body, writer.Boundary())
	form, err := reader.ReadForm(int64(len(content) + 1024))
	require.NoError(t, err)
	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

func TestUploadServiceRejectsOversizedFile(t *testing.T) {
	svc := NewUploadService(&storageStub{}, &uploadRepoStub{}, 1, testLogger())

	file := buildFileHeader(t, "resume.pdf", bytes.Repeat([]byte("a"), 2*1024*1024))

	_, err := svc.Upload(context.Background(), file, nil)
	require.ErrorIs(t, err, ErrUploadTooLarge)
}

func TestUploadServiceRejectsDisallowedType(t *testing.T) {
	svc := NewUploadService(&storageStub{}, &uploadRepoStub{}, 5, testLogger())

	file := buildFileHeader(t, "notes.txt", []byte("plain text"))
	_, err := svc.Upload(context.Background(), file, nil)
	require.ErrorIs(t, err, ErrUploadTypeNotAllowed)
}

func TestUploadServiceStoresImage(t *testing.T) {
	repo := &uploadRepoStub{}
	svc := NewUploadService(&storageStub{}, repo, 5, testLogger())

	pngHeader := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	file := buildFileHeader(t, "My Avatar!.PNG", pngHeader)

	userID := uint(4)
	resp, err := svc.Upload(context.Background(), file, &userID)
	require.NoError(t, err)
	require.Equal(t, "my-avatar.png", resp.FileName)
	require.Contains(t, resp.URL, "my-avatar.png")
	require.Equal(t, "image", resp.MimeType)
	require.Equal(t, int64(len(pngHeader)), resp.SizeBytes)
	require.NotEmpty(t, resp.Checksum)
	require.NotNil(t, repo.record.UserID)
	require.Equal(t, uint(4), *repo.record.UserID)
}

func TestUploadServicePropagatesStorageFailure(t *testing.T) {
	svc := NewUploadService(&storageStub{err: io.ErrUnexpectedEOF}, &uploadRepoStub{}, 5, testLogger())

	pngHeader := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	file := buildFileHeader(t, "avatar.png", pngHeader)

	_, err := svc.Upload(context.Background(), file, nil)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestSanitizeFileName(t *testing.T) {
	require.Equal(t, "my-avatar.png", sanitizeFileName("My Avatar!.PNG"))
	require.Equal(t, "report_final.pdf", sanitizeFileName("report_final.pdf"))
	ext := sanitizeFileName("???")
	require.Contains(t, ext, ".bin")
}
