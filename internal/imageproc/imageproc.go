package imageproc

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
)

const (
	// maxEdge bounds the longer side of a compressed image.
	maxEdge = 600
	// jpegQuality is the fixed quality factor used for re-encoding.
	jpegQuality = 60
)

// Compress decodes an uploaded photo, scales it down so its longer edge is at
// most 600 pixels (aspect ratio preserved, never upscaled) and re-encodes it
// as a JPEG data URI. It never returns an error: if the data cannot be
// decoded or encoded, ok is false and callers treat it as "no image
// selected".
func Compress(data []byte) (dataURI string, ok bool) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", false
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width > height {
		if width > maxEdge {
			img = resize.Resize(maxEdge, 0, img, resize.Lanczos3)
		}
	} else {
		if height > maxEdge {
			img = resize.Resize(0, maxEdge, img, resize.Lanczos3)
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", false
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), true
}
