package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "birthday-backend/internal/common/errors"
)

type fakeUploader struct {
	lastFolder string
	lastMIME   string
	url        string
	err        error
}

func (f *fakeUploader) Upload(_ context.Context, _ io.Reader, folder, mimeType string) (string, error) {
	f.lastFolder = folder
	f.lastMIME = mimeType
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

func TestUploadDefaultsEmptyFolderToMedia(t *testing.T) {
	uploader := &fakeUploader{url: "https://cdn.example/media/x.png"}
	svc := NewMediaService(uploader)

	url, err := svc.Upload(context.Background(), strings.NewReader("png-bytes"), "", "image/png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/media/x.png", url)
	assert.Equal(t, "media", uploader.lastFolder)
	assert.Equal(t, "image/png", uploader.lastMIME)
}

func TestUploadKeepsExplicitFolder(t *testing.T) {
	uploader := &fakeUploader{url: "https://cdn.example/music/song.mp3"}
	svc := NewMediaService(uploader)

	_, err := svc.Upload(context.Background(), strings.NewReader("mp3-bytes"), "music", "audio/mpeg")
	require.NoError(t, err)
	assert.Equal(t, "music", uploader.lastFolder)
}

func TestUploadRejectsFolderWithPathSeparators(t *testing.T) {
	uploader := &fakeUploader{}
	svc := NewMediaService(uploader)

	_, err := svc.Upload(context.Background(), strings.NewReader("x"), "a/b", "image/png")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
	// The uploader must never see an invalid folder.
	assert.Empty(t, uploader.lastFolder)
}

func TestUploadWrapsHostFailure(t *testing.T) {
	uploader := &fakeUploader{err: errors.New("timeout talking to host")}
	svc := NewMediaService(uploader)

	_, err := svc.Upload(context.Background(), strings.NewReader("x"), "media", "image/png")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrCodeUploadError, appErr.Code)
}
