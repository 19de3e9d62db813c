package pipeline

import (
	"strings"
	"time"

	"github.com/skillvento/skillvento/internal/constant"
)

// UploadedFile is the raw upload as received, with its declared media
// type. The type is decided once from ContentType and never re-derived.
type UploadedFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// Draft is the transient input to an ingestion run. It is consumed
// exactly once and never persisted.
type Draft struct {
	Title        string
	Organization string
	IssuedOn     time.Time
	ExpiryDate   *time.Time

	// Domain is the selector value; when it equals the custom
	// sentinel, CustomDomain carries the free-text value.
	Domain       string
	CustomDomain string

	// Tags as entered, comma-separated.
	Tags        string
	Description string

	IsPublic           bool
	WantsVerification  bool
	WantsIntegrityHash bool

	File *UploadedFile
}

// ResolveDomain substitutes the custom-domain text for the sentinel
// selector value. Returns "" when the resolution comes up empty, which
// the pipeline rejects.
func ResolveDomain(domain, customDomain string) string {
	domain = strings.TrimSpace(domain)
	if domain == constant.DOMAIN_CUSTOM {
		return strings.TrimSpace(customDomain)
	}
	return domain
}

// ParseTags splits the comma-separated input, trims each entry and
// drops empties, preserving the user's order.
func ParseTags(raw string) []string {
	parts := strings.Split(raw, ",")

	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if tag := strings.TrimSpace(p); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
