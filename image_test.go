package xl2html

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngPixel returns a minimal encoded PNG for image fixtures.
func pngPixel(t *testing.T) []byte {
	t.Helper()
	return pngRect(t, 1, 1)
}

func pngRect(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 0x33, G: 0x66, B: 0x99, A: 0xFF})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestNewImagePlacement(t *testing.T) {
	p := newImagePlacement(FloatingImage{
		AnchorCol: 3,
		AnchorRow: 7,
		OffsetX:   12,
		OffsetY:   4,
		Extension: ".png",
		Data:      pngRect(t, 10, 6),
	})

	assert.Equal(t, 3, p.Col)
	assert.Equal(t, 7, p.Row)
	assert.Equal(t, 10, p.Width)
	assert.Equal(t, 6, p.Height)
	assert.Equal(t, "12px", p.Style["margin-left"])
	assert.Equal(t, "4px", p.Style["margin-top"])
	assert.True(t, strings.HasPrefix(p.Src, "data:image/png;base64,"))
}

func TestImageSize_Scaled(t *testing.T) {
	img := FloatingImage{Data: pngRect(t, 10, 6), ScaleX: 2, ScaleY: 0.5}
	w, h := imageSize(img)
	assert.Equal(t, 20, w)
	assert.Equal(t, 3, h)
}

func TestImageSize_Undecodable(t *testing.T) {
	w, h := imageSize(FloatingImage{Data: []byte("not an image")})
	assert.Zero(t, w)
	assert.Zero(t, h)
}

func TestDataURI(t *testing.T) {
	assert.Equal(t, "data:image/jpeg;base64,YWJj", dataURI(".JPG", []byte("abc")))
	// Unknown extensions fall back to PNG.
	assert.True(t, strings.HasPrefix(dataURI(".xyz", []byte("abc")), "data:image/png;base64,"))
}
