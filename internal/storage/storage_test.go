package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngHeader  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")
	gifHeader  = []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00")
	jpegHeader = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")
)

func TestDecodeImage(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		ext     string
		wantErr bool
	}{
		{name: "png", data: pngHeader, ext: ".png"},
		{name: "gif", data: gifHeader, ext: ".gif"},
		{name: "jpeg", data: jpegHeader, ext: ".jpg"},
		{name: "text", data: []byte("definitely not an image"), wantErr: true},
		{name: "empty", data: nil, wantErr: true},
		{name: "too large", data: append(append([]byte{}, pngHeader...), make([]byte, MaxImageSize)...), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := DecodeImage(bytes.NewReader(tt.data))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidImage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.ext, img.Ext)
			assert.Equal(t, int64(len(tt.data)), img.Size)
		})
	}
}

func TestLocalStore_SaveAndRemove(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "images")
	store, err := NewLocalStore(dir, "/candidates-images/")
	require.NoError(t, err)

	img, err := DecodeImage(bytes.NewReader(pngHeader))
	require.NoError(t, err)

	ref, err := store.Save(context.Background(), img)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "/candidates-images/"))
	assert.True(t, strings.HasSuffix(ref, ".png"))

	path := filepath.Join(dir, filepath.Base(ref))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)

	require.NoError(t, store.Remove(context.Background(), ref))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, store.Remove(context.Background(), "https://example.com/other.png"))
	assert.NoError(t, store.Remove(context.Background(), ref), "removing twice is not an error")
}
