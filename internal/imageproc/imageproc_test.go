package imageproc

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	assert.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeDataURI(t *testing.T, dataURI string) image.Image {
	t.Helper()
	encoded := strings.TrimPrefix(dataURI, "data:image/jpeg;base64,")
	raw, err := base64.StdEncoding.DecodeString(encoded)
	assert.NoError(t, err)
	img, err := jpeg.Decode(bytes.NewReader(raw))
	assert.NoError(t, err)
	return img
}

func TestCompress_ScalesDownWideImage(t *testing.T) {
	dataURI, ok := Compress(pngBytes(t, 1200, 600))

	assert.True(t, ok)
	assert.True(t, strings.HasPrefix(dataURI, "data:image/jpeg;base64,"))

	img := decodeDataURI(t, dataURI)
	assert.Equal(t, 600, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())
}

func TestCompress_ScalesDownTallImage(t *testing.T) {
	dataURI, ok := Compress(pngBytes(t, 300, 900))

	assert.True(t, ok)

	img := decodeDataURI(t, dataURI)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 600, img.Bounds().Dy())
}

func TestCompress_NeverUpscales(t *testing.T) {
	dataURI, ok := Compress(pngBytes(t, 120, 80))

	assert.True(t, ok)

	img := decodeDataURI(t, dataURI)
	assert.Equal(t, 120, img.Bounds().Dx())
	assert.Equal(t, 80, img.Bounds().Dy())
}

func TestCompress_BadData(t *testing.T) {
	_, ok := Compress([]byte("definitely not an image"))
	assert.False(t, ok)

	_, ok = Compress(nil)
	assert.False(t, ok)
}
