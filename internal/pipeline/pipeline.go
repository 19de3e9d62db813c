package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/skillvento/skillvento/internal/model"
	"github.com/skillvento/skillvento/pkg/skillvento"
	"go.uber.org/zap"
)

// Stage names a step of the ingestion run, reported to the caller for
// UI display only.
type Stage string

const (
	StageValidating          Stage = "validating"
	StageUploadingOriginal   Stage = "uploading original"
	StageConverting          Stage = "converting"
	StageUploadingDerivative Stage = "uploading derivative"
	StageSaving              Stage = "saving"
)

type ProgressFunc func(Stage)

// StorageGateway uploads blobs under an owner namespace and resolves
// public URLs for them.
type StorageGateway interface {
	Upload(ctx context.Context, data []byte, contentType, ownerId, suffix string) (string, error)
	PublicURL(key string) string
	Remove(ctx context.Context, key string) error
}

// Converter derives the counterpart representation of an upload.
type Converter interface {
	ImageToPdf(imageBytes []byte) ([]byte, error)
	PdfToImage(pdfBytes []byte) ([]byte, error)
}

// CertificateStore persists assembled records.
type CertificateStore interface {
	Create(ctx context.Context, cert *model.Certificate) (*model.Certificate, error)
	Update(ctx context.Context, cert *model.Certificate) (*model.Certificate, error)
}

// Ingestor drives a draft through validation, conversion, upload and
// persistence. Runs for different certificates may proceed
// concurrently; the ingestor holds no cross-call state. Two concurrent
// runs for the same certificate are not coordinated, the store's
// last-write-wins semantics decide.
type Ingestor struct {
	storage      StorageGateway
	store        CertificateStore
	converter    Converter
	allocateCode func() (string, error)
	logger       *zap.SugaredLogger
}

func NewIngestor(storage StorageGateway, store CertificateStore, converter Converter, logger *zap.SugaredLogger) *Ingestor {
	return &Ingestor{
		storage:      storage,
		store:        store,
		converter:    converter,
		allocateCode: skillvento.GenerateVerificationCode,
		logger:       logger,
	}
}

// Ingest consumes the draft and produces or updates exactly one
// certificate record. prev is the existing record on an edit, nil on a
// create. On any abort no record is created or updated, and blobs
// uploaded during this run are removed best-effort.
func (in *Ingestor) Ingest(ctx context.Context, draft Draft, prev *model.Certificate, userId string, progress ProgressFunc) (*model.Certificate, error) {
	report := func(stage Stage) {
		if progress != nil {
			progress(stage)
		}
	}

	report(StageValidating)
	domain, err := in.validate(draft, prev)
	if err != nil {
		return nil, err
	}

	cert := &model.Certificate{}
	if prev != nil {
		// Carry the identity, the file pointers and the previously
		// allocated code/hash; the draft overwrites the rest below.
		*cert = *prev
	}

	cert.UserID = userId
	cert.Title = strings.TrimSpace(draft.Title)
	cert.Organization = strings.TrimSpace(draft.Organization)
	cert.IssuedOn = draft.IssuedOn
	cert.ExpiryDate = draft.ExpiryDate
	cert.Domain = domain
	cert.Tags = ParseTags(draft.Tags)
	cert.Description = strings.TrimSpace(draft.Description)
	cert.IsPublic = draft.IsPublic

	// Keys uploaded by this run, removed again if a later step aborts.
	var uploaded []string
	abort := func(cause error) error {
		for _, key := range uploaded {
			if rmErr := in.storage.Remove(ctx, key); rmErr != nil {
				in.logger.Warnf("Failed to remove orphaned blob %s: %v", key, rmErr)
			}
		}
		return cause
	}

	if draft.File != nil {
		certType, err := skillvento.TypeFromContentType(draft.File.ContentType)
		if err != nil {
			return nil, &ValidationError{Field: "file", Reason: err.Error()}
		}

		report(StageUploadingOriginal)
		ext := skillvento.FileExtension(draft.File.ContentType)
		origKey, err := in.storage.Upload(ctx, draft.File.Data, draft.File.ContentType, userId, "original"+ext)
		if err != nil {
			return nil, abort(&UploadError{Stage: StageUploadingOriginal, Err: err})
		}
		uploaded = append(uploaded, origKey)

		report(StageConverting)
		var derived []byte
		var derivedContentType string
		switch certType {
		case skillvento.CertificateTypePdf:
			derived, err = in.converter.PdfToImage(draft.File.Data)
			derivedContentType = skillvento.ContentTypeJpeg
		case skillvento.CertificateTypeImage:
			derived, err = in.converter.ImageToPdf(draft.File.Data)
			derivedContentType = skillvento.ContentTypePdf
		}
		if err != nil {
			return nil, abort(err)
		}

		report(StageUploadingDerivative)
		derivedExt := skillvento.FileExtension(derivedContentType)
		derivedKey, err := in.storage.Upload(ctx, derived, derivedContentType, userId, "converted"+derivedExt)
		if err != nil {
			return nil, abort(&UploadError{Stage: StageUploadingDerivative, Err: err})
		}
		uploaded = append(uploaded, derivedKey)

		cert.CertificateType = certType
		cert.OriginalFileKey = origKey
		cert.OriginalFileUrl = in.storage.PublicURL(origKey)
		switch certType {
		case skillvento.CertificateTypePdf:
			cert.PdfKey, cert.PdfUrl = origKey, cert.OriginalFileUrl
			cert.ImageKey, cert.ImageUrl = derivedKey, in.storage.PublicURL(derivedKey)
		case skillvento.CertificateTypeImage:
			cert.ImageKey, cert.ImageUrl = origKey, cert.OriginalFileUrl
			cert.PdfKey, cert.PdfUrl = derivedKey, in.storage.PublicURL(derivedKey)
		}
	}

	if err := in.resolveVerification(cert, draft); err != nil {
		return nil, abort(err)
	}
	in.resolveIntegrityHash(cert, draft, userId)

	report(StageSaving)
	var saved *model.Certificate
	if prev == nil {
		saved, err = in.store.Create(ctx, cert)
	} else {
		saved, err = in.store.Update(ctx, cert)
	}
	if err != nil {
		return nil, abort(&PersistError{Err: err})
	}

	// A replaced file leaves the old blobs unused; drop them now that
	// the new record is durable.
	if draft.File != nil && prev != nil {
		in.removeReplacedBlobs(ctx, prev, saved)
	}

	return saved, nil
}

func (in *Ingestor) validate(draft Draft, prev *model.Certificate) (string, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return "", &ValidationError{Field: "title", Reason: "title is required"}
	}
	if strings.TrimSpace(draft.Organization) == "" {
		return "", &ValidationError{Field: "organization", Reason: "organization is required"}
	}
	if draft.IssuedOn.IsZero() {
		return "", &ValidationError{Field: "issuedOn", Reason: "issue date is required"}
	}
	if draft.File == nil && prev == nil {
		return "", &ValidationError{Field: "file", Reason: "a certificate file is required"}
	}

	domain := ResolveDomain(draft.Domain, draft.CustomDomain)
	if domain == "" {
		return "", &ValidationError{Field: "domain", Reason: "domain is required"}
	}

	return domain, nil
}

// The verification code is allocated at most once per certificate and
// kept permanently; toggling verification off only clears the flag, so
// previously shared links survive a disable/re-enable cycle.
func (in *Ingestor) resolveVerification(cert *model.Certificate, draft Draft) error {
	cert.IsVerified = draft.WantsVerification

	if !draft.WantsVerification || cert.VerificationCode != "" {
		return nil
	}

	code, err := in.allocateCode()
	if err != nil {
		// Nanoid only fails when the OS entropy source does. The run
		// aborts so the caller can tell the user verification was not
		// enabled, instead of silently saving an unverified record.
		return fmt.Errorf("failed to allocate verification code: %w", err)
	}
	cert.VerificationCode = code
	return nil
}

// The hash covers title, organization, issue date and owner only, so
// it is left untouched on edits that keep wanting it.
func (in *Ingestor) resolveIntegrityHash(cert *model.Certificate, draft Draft, userId string) {
	if !draft.WantsIntegrityHash {
		cert.IntegrityHash = ""
		return
	}

	if cert.IntegrityHash != "" {
		return
	}

	cert.IntegrityHash = skillvento.ComputeIntegrityHash(
		cert.Title,
		cert.Organization,
		cert.IssuedOn.Format("2006-01-02"),
		userId,
	)
}

func (in *Ingestor) removeReplacedBlobs(ctx context.Context, prev, saved *model.Certificate) {
	inUse := make(map[string]bool)
	for _, key := range saved.BlobKeys() {
		inUse[key] = true
	}

	for _, key := range prev.BlobKeys() {
		if inUse[key] {
			continue
		}
		if err := in.storage.Remove(ctx, key); err != nil {
			in.logger.Warnf("Failed to remove replaced blob %s: %v", key, err)
		}
	}
}

// RemoveBlobs deletes every blob backing the certificate, used when a
// certificate is deleted outright.
func (in *Ingestor) RemoveBlobs(ctx context.Context, cert *model.Certificate) error {
	var firstErr error
	for _, key := range cert.BlobKeys() {
		if err := in.storage.Remove(ctx, key); err != nil {
			in.logger.Warnf("Failed to remove blob %s: %v", key, err)
			if firstErr == nil {
				firstErr = fmt.Errorf("failed to remove blob %s: %w", key, err)
			}
		}
	}
	return firstErr
}
