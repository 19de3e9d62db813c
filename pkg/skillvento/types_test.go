package skillvento

import "testing"

func TestTypeFromContentType(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		want        CertificateType
		wantErr     bool
	}{
		{"pdf", "application/pdf", CertificateTypePdf, false},
		{"png", "image/png", CertificateTypeImage, false},
		{"jpeg", "image/jpeg", CertificateTypeImage, false},
		{"webp", "image/webp", CertificateTypeImage, false},
		{"mixed case with spaces", " Application/PDF ", CertificateTypePdf, false},
		{"text", "text/plain", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TypeFromContentType(tt.contentType)
			if (err != nil) != tt.wantErr {
				t.Errorf("TypeFromContentType() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("TypeFromContentType() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFileExtension(t *testing.T) {
	tests := []struct {
		contentType string
		want        string
	}{
		{"application/pdf", ".pdf"},
		{"image/png", ".png"},
		{"image/jpeg", ".jpg"},
		{"image/webp", ".webp"},
		{"application/zip", ""},
	}

	for _, tt := range tests {
		if got := FileExtension(tt.contentType); got != tt.want {
			t.Errorf("FileExtension(%q) = %q, want %q", tt.contentType, got, tt.want)
		}
	}
}
