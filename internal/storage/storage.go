package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gabriel-vasile/mimetype"
)

// MaxImageSize is the largest candidate image accepted.
const MaxImageSize = 2 << 20

var ErrInvalidImage = errors.New("image must be a jpeg, png or gif of at most 2MB")

var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

// ImageStore persists candidate images and returns a reference clients can load.
type ImageStore interface {
	Save(ctx context.Context, img *Image) (string, error)
	Remove(ctx context.Context, ref string) error
}

// Image is an uploaded file that passed validation.
type Image struct {
	ContentType string
	Ext         string
	Size        int64
	Data        []byte
}

func (i *Image) Reader() io.Reader {
	return bytes.NewReader(i.Data)
}

// ReadImage loads an uploaded file, checking its size and sniffing its content
// type instead of trusting the client supplied header.
func ReadImage(file *multipart.FileHeader) (*Image, error) {
	if file.Size > MaxImageSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidImage, file.Size)
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer src.Close()

	return DecodeImage(src)
}

func DecodeImage(r io.Reader) (*Image, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) == 0 || len(data) > MaxImageSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidImage, len(data))
	}

	mtype := mimetype.Detect(data).String()
	ext, ok := allowedTypes[mtype]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidImage, mtype)
	}

	return &Image{ContentType: mtype, Ext: ext, Size: int64(len(data)), Data: data}, nil
}
