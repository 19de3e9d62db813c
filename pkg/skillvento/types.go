package skillvento

import (
	"fmt"
	"strings"
)

// CertificateType tags which representation the user originally
// uploaded. The derived counterpart never changes this tag.
type CertificateType string

const (
	CertificateTypePdf   CertificateType = "pdf"
	CertificateTypeImage CertificateType = "image"
)

const (
	ContentTypePdf  = "application/pdf"
	ContentTypeJpeg = "image/jpeg"
)

// TypeFromContentType decides the certificate type once at ingestion
// time from the declared media type of the upload.
func TypeFromContentType(contentType string) (CertificateType, error) {
	ct := strings.ToLower(strings.TrimSpace(contentType))

	switch {
	case ct == ContentTypePdf:
		return CertificateTypePdf, nil
	case strings.HasPrefix(ct, "image/"):
		return CertificateTypeImage, nil
	default:
		return "", fmt.Errorf("unsupported certificate file type: %s", contentType)
	}
}

// FileExtension returns the canonical extension for an uploaded file
// based on its declared media type.
func FileExtension(contentType string) string {
	ct := strings.ToLower(strings.TrimSpace(contentType))

	switch ct {
	case ContentTypePdf:
		return ".pdf"
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
