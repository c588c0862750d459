package capture

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"

	"github.com/go-pdf/fpdf"
)

type Orientation string

const (
	Portrait  Orientation = "P"
	Landscape Orientation = "L"
)

// OrientationFor picks landscape only for bitmaps wider than they are tall.
func OrientationFor(width, height int) Orientation {
	if width > height {
		return Landscape
	}

	return Portrait
}

const jpegQuality = 80

// assemble wraps a PNG bitmap in a single A4 page. The image is placed at
// the top-left corner and scaled to the full page width.
func assemble(bitmap []byte) (Artifact, error) {
	img, err := png.Decode(bytes.NewReader(bitmap))
	if err != nil {
		return Artifact{}, fmt.Errorf("decoding bitmap: %w", err)
	}

	b := img.Bounds()
	orientation := OrientationFor(b.Dx(), b.Dy())

	// Flatten onto an opaque canvas before the lossy re-encode.
	canvas := image.NewRGBA(b)
	draw.Draw(canvas, b, image.White, image.Point{}, draw.Src)
	draw.Draw(canvas, b, img, b.Min, draw.Over)

	var jpg bytes.Buffer
	if err := jpeg.Encode(&jpg, canvas, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return Artifact{}, fmt.Errorf("encoding page image: %w", err)
	}

	pdf := fpdf.New(string(orientation), "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	imgH := float64(b.Dy()) * pageW / float64(b.Dx())

	opts := fpdf.ImageOptions{ImageType: "JPG"}
	pdf.RegisterImageOptionsReader("page", opts, &jpg)
	pdf.ImageOptions("page", 0, 0, pageW, imgH, false, opts, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return Artifact{}, fmt.Errorf("writing pdf: %w", err)
	}

	return Artifact{
		PDF:         out.Bytes(),
		Orientation: orientation,
		Width:       b.Dx(),
		Height:      b.Dy(),
	}, nil
}
