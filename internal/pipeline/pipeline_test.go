package pipeline

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/skillvento/skillvento/internal/model"
	"github.com/skillvento/skillvento/internal/util"
	"github.com/skillvento/skillvento/pkg/skillvento"
)

type fakeStorage struct {
	uploads   []string
	removed   []string
	failAfter int // fail the Nth upload (1-based); 0 means never fail
}

func (f *fakeStorage) Upload(_ context.Context, _ []byte, _, ownerId, suffix string) (string, error) {
	if f.failAfter > 0 && len(f.uploads)+1 == f.failAfter {
		return "", errors.New("storage unavailable")
	}
	key := fmt.Sprintf("certificates/%s/%d_%s", ownerId, len(f.uploads), suffix)
	f.uploads = append(f.uploads, key)
	return key, nil
}

func (f *fakeStorage) PublicURL(key string) string {
	return "http://blobs.test/" + key
}

func (f *fakeStorage) Remove(_ context.Context, key string) error {
	f.removed = append(f.removed, key)
	return nil
}

type fakeConverter struct {
	fail bool
}

func (f fakeConverter) ImageToPdf(_ []byte) ([]byte, error) {
	if f.fail {
		return nil, &skillvento.ConversionError{Op: "image to pdf", Err: errors.New("bad image")}
	}
	return []byte("%PDF-fake"), nil
}

func (f fakeConverter) PdfToImage(_ []byte) ([]byte, error) {
	if f.fail {
		return nil, &skillvento.ConversionError{Op: "pdf to image", Err: errors.New("bad pdf")}
	}
	return []byte{0xFF, 0xD8, 0xFF}, nil
}

type fakeStore struct {
	created []*model.Certificate
	updated []*model.Certificate
	fail    bool
}

func (f *fakeStore) Create(_ context.Context, cert *model.Certificate) (*model.Certificate, error) {
	if f.fail {
		return nil, errors.New("store down")
	}
	cert.ID = "cert-1"
	f.created = append(f.created, cert)
	return cert, nil
}

func (f *fakeStore) Update(_ context.Context, cert *model.Certificate) (*model.Certificate, error) {
	if f.fail {
		return nil, errors.New("store down")
	}
	f.updated = append(f.updated, cert)
	return cert, nil
}

func newTestIngestor(storage *fakeStorage, store *fakeStore, conv fakeConverter) *Ingestor {
	in := NewIngestor(storage, store, conv, util.NewLogger("development"))
	in.allocateCode = func() (string, error) { return "TESTCODE", nil }
	return in
}

func validDraft(file *UploadedFile) Draft {
	return Draft{
		Title:        "Cloud Practitioner",
		Organization: "AWS",
		IssuedOn:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Domain:       "Cloud Computing",
		Tags:         "aws, cloud",
		File:         file,
	}
}

func pngUpload() *UploadedFile {
	return &UploadedFile{Name: "cert.png", ContentType: "image/png", Data: []byte("png-bytes")}
}

func pdfUpload() *UploadedFile {
	return &UploadedFile{Name: "cert.pdf", ContentType: "application/pdf", Data: []byte("%PDF-bytes")}
}

func TestIngestImageUpload(t *testing.T) {
	storage := &fakeStorage{}
	store := &fakeStore{}
	in := newTestIngestor(storage, store, fakeConverter{})

	var stages []Stage
	cert, err := in.Ingest(context.Background(), validDraft(pngUpload()), nil, "user-1", func(s Stage) {
		stages = append(stages, s)
	})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	if cert.CertificateType != skillvento.CertificateTypeImage {
		t.Errorf("certificateType = %s, want image", cert.CertificateType)
	}
	if cert.PdfUrl == "" || cert.ImageUrl == "" || cert.OriginalFileUrl == "" {
		t.Errorf("expected all three URLs set, got pdf=%q image=%q original=%q", cert.PdfUrl, cert.ImageUrl, cert.OriginalFileUrl)
	}
	if cert.ImageUrl != cert.OriginalFileUrl {
		t.Errorf("image upload: imageUrl %q should equal originalFileUrl %q", cert.ImageUrl, cert.OriginalFileUrl)
	}
	if cert.PdfUrl == cert.OriginalFileUrl {
		t.Error("image upload: pdfUrl should point at the derivative")
	}
	if len(store.created) != 1 {
		t.Fatalf("store.Create called %d times, want 1", len(store.created))
	}

	wantStages := []Stage{StageValidating, StageUploadingOriginal, StageConverting, StageUploadingDerivative, StageSaving}
	if !reflect.DeepEqual(stages, wantStages) {
		t.Errorf("stages = %v, want %v", stages, wantStages)
	}
}

func TestIngestPdfUpload(t *testing.T) {
	storage := &fakeStorage{}
	store := &fakeStore{}
	in := newTestIngestor(storage, store, fakeConverter{})

	cert, err := in.Ingest(context.Background(), validDraft(pdfUpload()), nil, "user-1", nil)
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	if cert.CertificateType != skillvento.CertificateTypePdf {
		t.Errorf("certificateType = %s, want pdf", cert.CertificateType)
	}
	if cert.PdfUrl != cert.OriginalFileUrl {
		t.Errorf("pdf upload: pdfUrl %q should equal originalFileUrl %q", cert.PdfUrl, cert.OriginalFileUrl)
	}
	if cert.ImageUrl == "" || cert.ImageUrl == cert.OriginalFileUrl {
		t.Errorf("pdf upload: imageUrl %q should point at the derivative", cert.ImageUrl)
	}
}

func TestIngestValidation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Draft)
		wantField string
	}{
		{"missing file on create", func(d *Draft) { d.File = nil }, "file"},
		{"empty title", func(d *Draft) { d.Title = "  " }, "title"},
		{"empty organization", func(d *Draft) { d.Organization = "" }, "organization"},
		{"zero issue date", func(d *Draft) { d.IssuedOn = time.Time{} }, "issuedOn"},
		{"custom domain resolves empty", func(d *Draft) { d.Domain = "custom"; d.CustomDomain = "  " }, "domain"},
		{"unsupported file type", func(d *Draft) { d.File.ContentType = "text/plain" }, "file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := &fakeStorage{}
			store := &fakeStore{}
			in := newTestIngestor(storage, store, fakeConverter{})

			draft := validDraft(pngUpload())
			tt.mutate(&draft)

			_, err := in.Ingest(context.Background(), draft, nil, "user-1", nil)

			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Ingest() error = %v, want *ValidationError", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("ValidationError.Field = %s, want %s", ve.Field, tt.wantField)
			}
			if len(store.created)+len(store.updated) != 0 {
				t.Error("store touched despite validation failure")
			}
			if len(storage.uploads) != 0 {
				t.Error("storage touched despite validation failure")
			}
		})
	}
}

func TestIngestDomainResolution(t *testing.T) {
	storage := &fakeStorage{}
	store := &fakeStore{}
	in := newTestIngestor(storage, store, fakeConverter{})

	draft := validDraft(pngUpload())
	draft.Domain = "custom"
	draft.CustomDomain = " Quantum Computing "

	cert, err := in.Ingest(context.Background(), draft, nil, "user-1", nil)
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if cert.Domain != "Quantum Computing" {
		t.Errorf("domain = %q, want %q", cert.Domain, "Quantum Computing")
	}
}

func TestIngestTagFiltering(t *testing.T) {
	storage := &fakeStorage{}
	store := &fakeStore{}
	in := newTestIngestor(storage, store, fakeConverter{})

	draft := validDraft(pngUpload())
	draft.Tags = "react, , frontend ,, node"

	cert, err := in.Ingest(context.Background(), draft, nil, "user-1", nil)
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if want := []string{"react", "frontend", "node"}; !reflect.DeepEqual(cert.Tags, want) {
		t.Errorf("tags = %v, want %v", cert.Tags, want)
	}
}

func TestIngestVerificationCodeAllocation(t *testing.T) {
	storage := &fakeStorage{}
	store := &fakeStore{}
	in := newTestIngestor(storage, store, fakeConverter{})

	draft := validDraft(pngUpload())
	draft.WantsVerification = true

	cert, err := in.Ingest(context.Background(), draft, nil, "user-1", nil)
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if !cert.IsVerified {
		t.Error("isVerified = false, want true")
	}
	if cert.VerificationCode != "TESTCODE" {
		t.Errorf("verificationCode = %q, want allocated code", cert.VerificationCode)
	}
}

func TestIngestCodeAllocatorFailure(t *testing.T) {
	storage := &fakeStorage{}
	store := &fakeStore{}
	in := newTestIngestor(storage, store, fakeConverter{})
	in.allocateCode = func() (string, error) { return "", errors.New("entropy source unavailable") }

	draft := validDraft(pngUpload())
	draft.WantsVerification = true

	_, err := in.Ingest(context.Background(), draft, nil, "user-1", nil)
	if err == nil {
		t.Fatal("Ingest() error = nil, want allocation failure surfaced")
	}
	if len(store.created)+len(store.updated) != 0 {
		t.Error("record store touched despite allocation failure")
	}
	// both blobs from this run are cleaned up
	if len(storage.removed) != 2 {
		t.Errorf("removed %d blobs, want 2", len(storage.removed))
	}
}

func TestIngestVerificationCodeStability(t *testing.T) {
	storage := &fakeStorage{}
	store := &fakeStore{}
	in := newTestIngestor(storage, store, fakeConverter{})
	in.allocateCode = func() (string, error) { return "FRESH999", nil }

	prev := &model.Certificate{
		BaseModel:        model.BaseModel{ID: "cert-1"},
		UserID:           "user-1",
		IsVerified:       true,
		VerificationCode: "ABC12345",
		CertificateType:  skillvento.CertificateTypePdf,
		OriginalFileKey:  "k-orig", OriginalFileUrl: "p1",
		PdfKey: "k-orig", PdfUrl: "p1",
		ImageKey: "k-img", ImageUrl: "i1",
	}

	draft := validDraft(nil)
	draft.WantsVerification = true

	cert, err := in.Ingest(context.Background(), draft, prev, "user-1", nil)
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if cert.VerificationCode != "ABC12345" {
		t.Errorf("verificationCode = %q, want preserved ABC12345", cert.VerificationCode)
	}
}

func TestIngestVerificationDisableKeepsCode(t *testing.T) {
	storage := &fakeStorage{}
	store := &fakeStore{}
	in := newTestIngestor(storage, store, fakeConverter{})

	prev := &model.Certificate{
		BaseModel:        model.BaseModel{ID: "cert-1"},
		UserID:           "user-1",
		IsVerified:       true,
		VerificationCode: "ABC12345",
		CertificateType:  skillvento.CertificateTypePdf,
		OriginalFileKey:  "k-orig", PdfKey: "k-orig", ImageKey: "k-img",
	}

	draft := validDraft(nil)
	draft.WantsVerification = false

	cert, err := in.Ingest(context.Background(), draft, prev, "user-1", nil)
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if cert.IsVerified {
		t.Error("isVerified = true after disabling verification")
	}
	if cert.VerificationCode != "ABC12345" {
		t.Errorf("verificationCode = %q, want retained for later re-enable", cert.VerificationCode)
	}
}

func TestIngestIntegrityHash(t *testing.T) {
	storage := &fakeStorage{}
	store := &fakeStore{}
	in := newTestIngestor(storage, store, fakeConverter{})

	draft := validDraft(pngUpload())
	draft.WantsIntegrityHash = true

	cert, err := in.Ingest(context.Background(), draft, nil, "user-1", nil)
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	want := skillvento.ComputeIntegrityHash("Cloud Practitioner", "AWS", "2024-01-01", "user-1")
	if cert.IntegrityHash != want {
		t.Errorf("integrityHash = %s, want %s", cert.IntegrityHash, want)
	}
}

func TestIngestIntegrityHashReusedOnEdit(t *testing.T) {
	storage := &fakeStorage{}
	store := &fakeStore{}
	in := newTestIngestor(storage, store, fakeConverter{})

	prev := &model.Certificate{
		BaseModel:       model.BaseModel{ID: "cert-1"},
		UserID:          "user-1",
		IntegrityHash:   "0xexisting",
		CertificateType: skillvento.CertificateTypePdf,
		OriginalFileKey: "k-orig", PdfKey: "k-orig", ImageKey: "k-img",
	}

	draft := validDraft(nil)
	draft.WantsIntegrityHash = true
	draft.Tags = "totally, different, tags"

	cert, err := in.Ingest(context.Background(), draft, prev, "user-1", nil)
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if cert.IntegrityHash != "0xexisting" {
		t.Errorf("integrityHash = %s, want reused 0xexisting", cert.IntegrityHash)
	}
}

func TestIngestIntegrityHashClearedWhenDisabled(t *testing.T) {
	storage := &fakeStorage{}
	store := &fakeStore{}
	in := newTestIngestor(storage, store, fakeConverter{})

	prev := &model.Certificate{
		BaseModel:       model.BaseModel{ID: "cert-1"},
		UserID:          "user-1",
		IntegrityHash:   "0xexisting",
		CertificateType: skillvento.CertificateTypePdf,
		OriginalFileKey: "k-orig", PdfKey: "k-orig", ImageKey: "k-img",
	}

	draft := validDraft(nil)
	draft.WantsIntegrityHash = false

	cert, err := in.Ingest(context.Background(), draft, prev, "user-1", nil)
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if cert.IntegrityHash != "" {
		t.Errorf("integrityHash = %s, want cleared", cert.IntegrityHash)
	}
}

func TestIngestEditWithoutFilePreservesUrls(t *testing.T) {
	storage := &fakeStorage{}
	store := &fakeStore{}
	in := newTestIngestor(storage, store, fakeConverter{})

	prev := &model.Certificate{
		BaseModel:       model.BaseModel{ID: "cert-1"},
		UserID:          "user-1",
		CertificateType: skillvento.CertificateTypePdf,
		OriginalFileKey: "k-orig", OriginalFileUrl: "p1",
		PdfKey: "k-orig", PdfUrl: "p1",
		ImageKey: "k-img", ImageUrl: "i1",
	}

	draft := validDraft(nil)
	draft.Title = "New Title"
	draft.Tags = "updated"

	cert, err := in.Ingest(context.Background(), draft, prev, "user-1", nil)
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	if cert.PdfUrl != "p1" || cert.ImageUrl != "i1" || cert.CertificateType != skillvento.CertificateTypePdf {
		t.Errorf("edit without file changed file fields: pdf=%q image=%q type=%s", cert.PdfUrl, cert.ImageUrl, cert.CertificateType)
	}
	if cert.Title != "New Title" {
		t.Errorf("title = %q, want %q", cert.Title, "New Title")
	}
	if len(storage.uploads) != 0 {
		t.Errorf("storage uploads = %d, want 0", len(storage.uploads))
	}
	if len(store.updated) != 1 {
		t.Errorf("store.Update called %d times, want 1", len(store.updated))
	}
}

func TestIngestAbortOnDerivativeUpload(t *testing.T) {
	storage := &fakeStorage{failAfter: 2}
	store := &fakeStore{}
	in := newTestIngestor(storage, store, fakeConverter{})

	_, err := in.Ingest(context.Background(), validDraft(pngUpload()), nil, "user-1", nil)

	var ue *UploadError
	if !errors.As(err, &ue) {
		t.Fatalf("Ingest() error = %v, want *UploadError", err)
	}
	if ue.Stage != StageUploadingDerivative {
		t.Errorf("UploadError.Stage = %s, want %s", ue.Stage, StageUploadingDerivative)
	}
	if len(store.created)+len(store.updated) != 0 {
		t.Error("record store touched despite aborted ingestion")
	}
	// compensating cleanup removed the already-uploaded original
	if len(storage.removed) != 1 || storage.removed[0] != storage.uploads[0] {
		t.Errorf("removed = %v, want the uploaded original %v", storage.removed, storage.uploads)
	}
}

func TestIngestAbortOnConversion(t *testing.T) {
	storage := &fakeStorage{}
	store := &fakeStore{}
	in := newTestIngestor(storage, store, fakeConverter{fail: true})

	_, err := in.Ingest(context.Background(), validDraft(pdfUpload()), nil, "user-1", nil)

	var ce *skillvento.ConversionError
	if !errors.As(err, &ce) {
		t.Fatalf("Ingest() error = %v, want *ConversionError", err)
	}
	if len(store.created) != 0 {
		t.Error("record store touched despite conversion failure")
	}
	if len(storage.removed) != 1 {
		t.Errorf("removed %d blobs, want 1 (the orphaned original)", len(storage.removed))
	}
}

func TestIngestPersistFailure(t *testing.T) {
	storage := &fakeStorage{}
	store := &fakeStore{fail: true}
	in := newTestIngestor(storage, store, fakeConverter{})

	_, err := in.Ingest(context.Background(), validDraft(pngUpload()), nil, "user-1", nil)

	var pe *PersistError
	if !errors.As(err, &pe) {
		t.Fatalf("Ingest() error = %v, want *PersistError", err)
	}
	// both blobs from this run are cleaned up
	if len(storage.removed) != 2 {
		t.Errorf("removed %d blobs, want 2", len(storage.removed))
	}
}

func TestIngestReplacedFileRemovesOldBlobs(t *testing.T) {
	storage := &fakeStorage{}
	store := &fakeStore{}
	in := newTestIngestor(storage, store, fakeConverter{})

	prev := &model.Certificate{
		BaseModel:       model.BaseModel{ID: "cert-1"},
		UserID:          "user-1",
		CertificateType: skillvento.CertificateTypeImage,
		OriginalFileKey: "old-orig", PdfKey: "old-pdf", ImageKey: "old-orig",
	}

	cert, err := in.Ingest(context.Background(), validDraft(pdfUpload()), prev, "user-1", nil)
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	if cert.CertificateType != skillvento.CertificateTypePdf {
		t.Errorf("certificateType = %s, want pdf after replacement", cert.CertificateType)
	}

	removed := make(map[string]bool)
	for _, k := range storage.removed {
		removed[k] = true
	}
	if !removed["old-orig"] || !removed["old-pdf"] {
		t.Errorf("old blobs not removed, removed = %v", storage.removed)
	}
}
