package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"mime"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// GmailSender sends OTP mail through the Gmail REST API instead of SMTP.
// State-machine behaviour is identical to SMTPSender; only the transport
// differs.
type GmailSender struct {
	service  *gmail.Service
	from     string
	fromName string
}

// gmailCredentials is the authorized-user JSON carried in GMAIL_TOKEN.
type gmailCredentials struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	RefreshToken string `json:"refresh_token"`
}

func NewGmailSender(ctx context.Context) (*GmailSender, error) {
	raw := os.Getenv("GMAIL_TOKEN")
	if raw == "" {
		return nil, fmt.Errorf("GMAIL_TOKEN environment variable not set")
	}

	var creds gmailCredentials
	if err := json.Unmarshal([]byte(raw), &creds); err != nil {
		return nil, fmt.Errorf("parsing GMAIL_TOKEN: %w", err)
	}

	conf := &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{gmail.GmailSendScope},
	}
	ts := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: creds.RefreshToken})

	service, err := gmail.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("building gmail service: %w", err)
	}

	return &GmailSender{
		service:  service,
		from:     os.Getenv("SMTP_USERNAME"),
		fromName: senderDisplayName(),
	}, nil
}

func (s *GmailSender) SendOTP(ctx context.Context, to, name, code string) error {
	raw := base64.URLEncoding.EncodeToString([]byte(s.buildMessage(to, name, code)))

	_, err := s.service.Users.Messages.Send("me", &gmail.Message{Raw: raw}).Context(ctx).Do()
	return err
}

// buildMessage assembles an RFC 2822 multipart/alternative message with a
// plain-text part and the HTML template.
func (s *GmailSender) buildMessage(to, name, code string) string {
	const boundary = "otpgate-alt-boundary"

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", mime.QEncoding.Encode("utf-8", s.fromName), s.from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", otpEmailSubject)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n")
	b.WriteString(otpEmailText(code))
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n\r\n")
	b.WriteString(otpEmailHTML(s.fromName, name, code))
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s--\r\n", boundary)
	return b.String()
}
