package mailer

import "embed"

type MailTemplateFile string

const (
	FROM_NAME = "Skillvento"
	MAX_RETRY = 3

	TemplateVerificationShare MailTemplateFile = "verification_share.tmpl"
)

//go:embed "templates"
var FS embed.FS

type Client interface {
	Send(templateFile MailTemplateFile, toUsername, toEmail string, data any) (int, error)
}

// VerificationShareData fills the verification share template.
type VerificationShareData struct {
	OwnerName    string
	Title        string
	Organization string
	VerifyURL    string
	Code         string
}
