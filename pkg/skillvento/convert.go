package skillvento

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/gen2brain/go-fitz"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

const (
	// Rasterize at 2x the nominal page size (72pt base) so the image
	// representation stays legible when zoomed.
	pdfRenderDPI = 144

	jpegQuality = 90
)

// ImageToPdf wraps the image into a single-page PDF. The page is sized
// exactly to the image's intrinsic pixel dimensions and the image is
// placed at full bleed, so orientation follows from the image itself.
func ImageToPdf(imageBytes []byte) ([]byte, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(imageBytes))
	if err != nil {
		return nil, newConversionError("image to pdf", fmt.Errorf("failed to decode image: %w", err))
	}

	imp, err := api.Import(fmt.Sprintf("dim:%d %d, pos:full", cfg.Width, cfg.Height), types.POINTS)
	if err != nil {
		return nil, newConversionError("image to pdf", fmt.Errorf("failed to build import config: %w", err))
	}

	var out bytes.Buffer
	if err := api.ImportImages(nil, &out, []io.Reader{bytes.NewReader(imageBytes)}, imp, nil); err != nil {
		return nil, newConversionError("image to pdf", err)
	}

	return out.Bytes(), nil
}

// PdfToImage renders page 1 of the document as a JPEG. Multi-page
// documents are not supported; only the first page is rasterized.
func PdfToImage(pdfBytes []byte) ([]byte, error) {
	doc, err := fitz.NewFromMemory(pdfBytes)
	if err != nil {
		return nil, newConversionError("pdf to image", fmt.Errorf("failed to open document: %w", err))
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return nil, newConversionError("pdf to image", fmt.Errorf("document has no pages"))
	}

	img, err := doc.ImageDPI(0, pdfRenderDPI)
	if err != nil {
		return nil, newConversionError("pdf to image", fmt.Errorf("failed to render page 1: %w", err))
	}

	var out bytes.Buffer
	if err := jpeg.Encode(&out, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, newConversionError("pdf to image", fmt.Errorf("failed to encode jpeg: %w", err))
	}

	return out.Bytes(), nil
}
