package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestInspect(t *testing.T) {
	p := NewImageProcessor(1)

	format, err := p.Inspect(encodePNG(t, 20, 10))
	require.NoError(t, err)
	assert.Equal(t, "png", format)

	_, err = p.Inspect([]byte("plain text"))
	assert.ErrorIs(t, err, ErrNotAnImage)

	var gifBuf bytes.Buffer
	require.NoError(t, gif.Encode(&gifBuf, image.NewPaletted(image.Rect(0, 0, 4, 4), []color.Color{color.Black}), nil))
	_, err = p.Inspect(gifBuf.Bytes())
	assert.ErrorIs(t, err, ErrFormatForbidden)

	p.MaxSize = 8
	_, err = p.Inspect(encodePNG(t, 20, 10))
	assert.ErrorIs(t, err, ErrImageTooLarge)
}

func TestThumbnailFitsBoundingBox(t *testing.T) {
	p := NewImageProcessor(5)

	thumb, err := p.Thumbnail(encodePNG(t, 1600, 800))
	require.NoError(t, err)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(thumb))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, ThumbnailSize, cfg.Width)
	assert.Equal(t, ThumbnailSize/2, cfg.Height)
}
