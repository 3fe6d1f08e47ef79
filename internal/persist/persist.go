// Package persist reads and writes flat raster images.
package persist

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedFormat is returned for file extensions with no encoder.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Format is an output encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
	FormatPDF  Format = "pdf"
)

// Formats lists the encodings Save accepts.
func Formats() []Format {
	return []Format{FormatPNG, FormatBMP, FormatTIFF, FormatPDF}
}

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "png", "":
		return FormatPNG, nil
	case "bmp":
		return FormatBMP, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	case "pdf":
		return FormatPDF, nil
	}
	return "", fmt.Errorf("%s: %w", filepath.Ext(path), ErrUnsupportedFormat)
}

// Encode writes img to w in format f.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case FormatPDF:
		return encodePDF(w, img)
	}
	return fmt.Errorf("%q: %w", f, ErrUnsupportedFormat)
}

// encodePDF writes a single page sized to the image at 96 dpi.
func encodePDF(w io.Writer, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	b := img.Bounds()
	const ptPerPx = 72.0 / 96.0
	size := gofpdf.SizeType{Wd: float64(b.Dx()) * ptPerPx, Ht: float64(b.Dy()) * ptPerPx}
	orientation := "P"
	if size.Wd > size.Ht {
		orientation = "L"
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{OrientationStr: orientation, UnitStr: "pt", Size: size})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	opt := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("scene", opt, &buf)
	pdf.ImageOptions("scene", 0, 0, size.Wd, size.Ht, false, opt, 0, "")
	return pdf.Output(w)
}

// Save writes img to path using the format implied by its extension.
func Save(path string, img image.Image) error {
	f, err := FormatFor(path)
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(out, img, f); err != nil {
		if cerr := out.Close(); cerr != nil {
			log.Printf("error closing %q: %v", out.Name(), cerr)
		}
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return out.Close()
}

// Open decodes any PNG, JPEG, GIF, BMP, TIFF or WebP file into an RGBA
// image with a zero origin.
func Open(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return ToRGBA(img), nil
}

// ToRGBA copies img into a new RGBA image with a zero origin.
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// DefaultName returns a timestamped file name for a new save.
func DefaultName(now time.Time, f Format) string {
	return fmt.Sprintf("snapmark-%s.%s", now.Format("20060102-150405"), f)
}

// OutputPath resolves name against dir unless name is absolute or dir is
// empty.
func OutputPath(dir, name string) string {
	if dir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}
