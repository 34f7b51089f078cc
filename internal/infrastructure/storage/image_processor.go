package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
)

// ThumbnailSize is the bounding box of generated thumbnails.
const ThumbnailSize = 400

var (
	ErrImageTooLarge   = errors.New("image exceeds upload limit")
	ErrNotAnImage      = errors.New("file is not a decodable image")
	ErrFormatForbidden = errors.New("image format not allowed")
)

type ImageProcessor struct {
	MaxSize int64 // bytes
}

func NewImageProcessor(maxMB int) *ImageProcessor {
	if maxMB <= 0 {
		maxMB = 10
	}
	return &ImageProcessor{MaxSize: int64(maxMB) * 1024 * 1024}
}

// MaxBytes is the largest accepted upload.
func (p *ImageProcessor) MaxBytes() int64 {
	return p.MaxSize
}

// Inspect checks size and format and returns the format name ("jpeg" or "png").
func (p *ImageProcessor) Inspect(data []byte) (string, error) {
	if int64(len(data)) > p.MaxSize {
		return "", fmt.Errorf("%w (%dMB)", ErrImageTooLarge, p.MaxSize/(1024*1024))
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotAnImage, err)
	}
	switch format {
	case "jpeg", "png":
		return format, nil
	default:
		return "", fmt.Errorf("%w: %s (only jpeg/png)", ErrFormatForbidden, format)
	}
}

// Thumbnail fits the image into ThumbnailSize and encodes it as JPEG.
func (p *ImageProcessor) Thumbnail(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}

	resized := imaging.Fit(img, ThumbnailSize, ThumbnailSize, imaging.Lanczos)
	b := new(bytes.Buffer)
	if err := jpeg.Encode(b, resized, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("cannot encode thumbnail: %w", err)
	}
	return b.Bytes(), nil
}
