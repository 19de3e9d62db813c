package pipeline

import (
	"context"

	"github.com/skillvento/skillvento/internal/model"
	"github.com/skillvento/skillvento/internal/repository"
	"github.com/skillvento/skillvento/pkg/skillvento"
)

// gormCertificateStore adapts the repository to the pipeline's store
// contract, running outside any caller transaction.
type gormCertificateStore struct {
	certs *repository.CertificateRepository
}

func NewCertificateStore(certs *repository.CertificateRepository) CertificateStore {
	return &gormCertificateStore{certs: certs}
}

func (s *gormCertificateStore) Create(ctx context.Context, cert *model.Certificate) (*model.Certificate, error) {
	return s.certs.Create(ctx, nil, cert)
}

func (s *gormCertificateStore) Update(ctx context.Context, cert *model.Certificate) (*model.Certificate, error) {
	return s.certs.Update(ctx, nil, cert)
}

// formatConverter is the production Converter backed by pdfcpu and
// go-fitz.
type formatConverter struct{}

func NewConverter() Converter {
	return formatConverter{}
}

func (formatConverter) ImageToPdf(imageBytes []byte) ([]byte, error) {
	return skillvento.ImageToPdf(imageBytes)
}

func (formatConverter) PdfToImage(pdfBytes []byte) ([]byte, error) {
	return skillvento.PdfToImage(pdfBytes)
}
