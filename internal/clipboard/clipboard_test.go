package clipboard

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func fakeClipboard(t *testing.T) *[]byte {
	t.Helper()
	var store []byte
	prevRead, prevWrite := readImageFn, writeImageFn
	readImageFn = func() ([]byte, error) { return store, nil }
	writeImageFn = func(data []byte) error {
		store = append([]byte(nil), data...)
		return nil
	}
	t.Cleanup(func() { readImageFn, writeImageFn = prevRead, prevWrite })
	return &store
}

func TestReadEmptyClipboard(t *testing.T) {
	fakeClipboard(t)
	if _, err := ReadImage(); !errors.Is(err, ErrNoImage) {
		t.Fatalf("expected ErrNoImage, got %v", err)
	}
}

func TestWriteThenRead(t *testing.T) {
	store := fakeClipboard(t)
	src := image.NewRGBA(image.Rect(5, 5, 9, 8))
	src.SetRGBA(5, 5, color.RGBA{B: 255, A: 255})
	if err := WriteImage(src); err != nil {
		t.Fatalf("WriteImage: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(*store)); err != nil {
		t.Fatalf("clipboard does not hold PNG: %v", err)
	}
	got, err := ReadImage()
	if err != nil {
		t.Fatalf("ReadImage: %v", err)
	}
	if got.Bounds() != image.Rect(0, 0, 4, 3) {
		t.Fatalf("bounds %v", got.Bounds())
	}
	if got.RGBAAt(0, 0).B != 255 {
		t.Fatalf("pixel %+v", got.RGBAAt(0, 0))
	}
}

func TestReadGarbage(t *testing.T) {
	store := fakeClipboard(t)
	*store = []byte("not an image")
	if _, err := ReadImage(); err == nil || errors.Is(err, ErrNoImage) {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestReadBackendError(t *testing.T) {
	backendErr := errors.New("no clipboard")
	prev := readImageFn
	readImageFn = func() ([]byte, error) { return nil, backendErr }
	t.Cleanup(func() { readImageFn = prev })
	if _, err := ReadImage(); !errors.Is(err, backendErr) {
		t.Fatalf("err = %v", err)
	}
}
