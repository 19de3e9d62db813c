package skillvento

import (
	"fmt"

	"github.com/skip2/go-qrcode"
	svgqr "github.com/wamuir/svg-qr-code"
)

// VerificationQRCodePng encodes the verification link as a PNG of the
// given pixel size.
func VerificationQRCodePng(link string, size int) ([]byte, error) {
	png, err := qrcode.Encode(link, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return png, nil
}

// VerificationQRCodeSvg encodes the verification link as an SVG
// document, for embeds that need to scale without rasterization.
func VerificationQRCodeSvg(link string) (string, error) {
	qr, err := svgqr.New(link)
	if err != nil {
		return "", fmt.Errorf("failed to generate QR code: %w", err)
	}
	return qr.String(), nil
}
