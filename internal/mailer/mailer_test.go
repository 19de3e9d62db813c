package mailer

import (
	"bytes"
	"html/template"
	"strings"
	"testing"
)

func TestVerificationShareTemplate(t *testing.T) {
	tmpl, err := template.ParseFS(FS, "templates/"+string(TemplateVerificationShare))
	if err != nil {
		t.Fatalf("failed to parse template: %v", err)
	}

	data := VerificationShareData{
		OwnerName:    "Jane Doe",
		Title:        "Cloud Practitioner",
		Organization: "AWS",
		VerifyURL:    "https://skillvento.app/verify/ABC12345",
		Code:         "ABC12345",
	}

	subject := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(subject, "subject", data); err != nil {
		t.Fatalf("failed to execute subject: %v", err)
	}
	if !strings.Contains(subject.String(), "Jane Doe") {
		t.Errorf("subject = %q, want owner name included", subject.String())
	}

	body := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(body, "body", data); err != nil {
		t.Fatalf("failed to execute body: %v", err)
	}
	for _, want := range []string{"Cloud Practitioner", "AWS", "ABC12345", data.VerifyURL} {
		if !strings.Contains(body.String(), want) {
			t.Errorf("body missing %q", want)
		}
	}
}
