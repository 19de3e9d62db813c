package model

import (
	"time"

	"github.com/skillvento/skillvento/pkg/skillvento"
)

// Certificate always carries both a PDF and an image representation.
// One of them is the file as uploaded, the other is the derivative
// produced at ingestion time; CertificateType records which is which.
type Certificate struct {
	BaseModel
	UserID       string     `gorm:"type:text;not null;index" json:"userId"`
	Title        string     `gorm:"type:text;not null" json:"title"`
	Organization string     `gorm:"type:text;not null" json:"organization"`
	IssuedOn     time.Time  `gorm:"type:date;not null" json:"issuedOn"`
	ExpiryDate   *time.Time `gorm:"type:date" json:"expiryDate,omitempty"`
	Domain       string     `gorm:"type:text;not null" json:"domain"`
	Tags         []string   `gorm:"serializer:json" json:"tags"`
	Description  string     `gorm:"type:text" json:"description"`

	CertificateType skillvento.CertificateType `gorm:"type:text;not null" json:"certificateType"`

	// Object keys are kept alongside the public URLs so blobs can be
	// removed when the certificate is replaced or deleted.
	OriginalFileKey string `gorm:"type:text" json:"-"`
	OriginalFileUrl string `gorm:"type:text" json:"originalFileUrl"`
	PdfKey          string `gorm:"type:text" json:"-"`
	PdfUrl          string `gorm:"type:text" json:"pdfUrl"`
	ImageKey        string `gorm:"type:text" json:"-"`
	ImageUrl        string `gorm:"type:text" json:"imageUrl"`

	IsPublic   bool `gorm:"default:false" json:"isPublic"`
	IsVerified bool `gorm:"default:false" json:"isVerified"`

	// Allocated at most once per certificate and then kept for good,
	// so shared verification links never break.
	VerificationCode string `gorm:"type:text;index" json:"verificationCode,omitempty"`
	IntegrityHash    string `gorm:"type:text" json:"integrityHash,omitempty"`

	User User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

func (c Certificate) TableName() string {
	return "certificates"
}

// BlobKeys returns the distinct object keys backing this certificate.
func (c Certificate) BlobKeys() []string {
	seen := make(map[string]bool)
	var keys []string
	for _, k := range []string{c.OriginalFileKey, c.PdfKey, c.ImageKey} {
		if k != "" && !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	return keys
}
