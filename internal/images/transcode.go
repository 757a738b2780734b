package images

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"pricewatch/internal/services"
)

// ContentType is the media type of every transcoded image.
const ContentType = "image/webp"

// Transcode normalizes a source image into the canonical stored form: any
// transparency is flattened onto a white background, the result is reduced
// to three channels, and encoded as lossy WebP at the given quality.
func Transcode(data []byte, quality int) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "images", "decode", "", err)
	}

	bounds := src.Bounds()
	flattened := image.NewRGBA(bounds)
	draw.Draw(flattened, bounds, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(flattened, bounds, src, bounds.Min, draw.Over)

	var buf bytes.Buffer
	opts := &webp.Options{Lossless: false, Quality: float32(quality)}
	if err := webp.Encode(&buf, flattened, opts); err != nil {
		return nil, services.Wrap(services.ErrTransient, "images", "encode webp", "", err)
	}
	return buf.Bytes(), nil
}
