package imaging

import (
	"bytes"
	"image"
	_ "image/jpeg"
	"image/png"

	"golang.org/x/image/draw"

	"taskapp/internal/core/port"
)

const avatarSize = 250

// Resizer normalizes uploaded avatars to a fixed square PNG.
type Resizer struct{}

func NewResizer() *Resizer {
	return &Resizer{}
}

var _ port.ImageProcessor = (*Resizer)(nil)

func (r *Resizer) Normalize(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))

	if err != nil {
		return nil, err
	}

	dst := image.NewRGBA(image.Rect(0, 0, avatarSize, avatarSize))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer

	if err := png.Encode(&buf, dst); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
