package skillvento

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func makeTestPng(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 120, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test png: %v", err)
	}
	return buf.Bytes()
}

func TestImageToPdf(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
	}{
		{"landscape", 400, 300},
		{"portrait", 300, 400},
		{"square", 256, 256},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pdf, err := ImageToPdf(makeTestPng(t, tt.width, tt.height))
			if err != nil {
				t.Fatalf("ImageToPdf() error = %v", err)
			}
			if !bytes.HasPrefix(pdf, []byte("%PDF")) {
				t.Errorf("ImageToPdf() output does not start with %%PDF")
			}
		})
	}
}

func TestImageToPdfCorruptInput(t *testing.T) {
	_, err := ImageToPdf([]byte("not an image"))
	if err == nil {
		t.Fatal("ImageToPdf() expected error for corrupt input")
	}

	var convErr *ConversionError
	if !errors.As(err, &convErr) {
		t.Errorf("ImageToPdf() error = %T, want *ConversionError", err)
	}
}

func TestPdfToImageRoundTrip(t *testing.T) {
	pdf, err := ImageToPdf(makeTestPng(t, 320, 240))
	if err != nil {
		t.Fatalf("ImageToPdf() error = %v", err)
	}

	jpg, err := PdfToImage(pdf)
	if err != nil {
		t.Fatalf("PdfToImage() error = %v", err)
	}

	// JPEG SOI marker
	if len(jpg) < 2 || jpg[0] != 0xFF || jpg[1] != 0xD8 {
		t.Errorf("PdfToImage() output is not a JPEG")
	}
}

func TestPdfToImageMalformedInput(t *testing.T) {
	_, err := PdfToImage([]byte("not a pdf"))
	if err == nil {
		t.Fatal("PdfToImage() expected error for malformed input")
	}

	var convErr *ConversionError
	if !errors.As(err, &convErr) {
		t.Errorf("PdfToImage() error = %T, want *ConversionError", err)
	}
}
