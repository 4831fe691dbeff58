package services

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// EmailSender delivers an OTP code to an address. Implementations are pure
// collaborators: the auth flow only cares whether the send succeeded.
type EmailSender interface {
	SendOTP(ctx context.Context, to, name, code string) error
}

// SMTPSender sends OTP mail through an SMTP relay.
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	fromName string
}

func NewSMTPSender() *SMTPSender {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "smtp.gmail.com"
	}
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}

	return &SMTPSender{
		host:     host,
		port:     port,
		username: os.Getenv("SMTP_USERNAME"),
		password: os.Getenv("SMTP_PASSWORD"),
		fromName: senderDisplayName(),
	}
}

func (s *SMTPSender) SendOTP(ctx context.Context, to, name, code string) error {
	m := gomail.NewMessage()

	m.SetHeader("From", m.FormatAddress(s.username, s.fromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", otpEmailSubject)
	m.SetBody("text/plain", otpEmailText(code))
	m.AddAlternative("text/html", otpEmailHTML(s.fromName, name, code))

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)

	return d.DialAndSend(m)
}

func senderDisplayName() string {
	if name := os.Getenv("EMAIL_FROM_NAME"); name != "" {
		return name
	}
	return "Account Verification"
}

const otpEmailSubject = "Your One-Time Passcode"

func otpEmailText(code string) string {
	return fmt.Sprintf(`Your one-time passcode is: %s

This passcode is valid for 5 minutes only.
Do not share this passcode with anyone.

If you didn't request this access, please ignore this email.
`, code)
}

func otpEmailHTML(brand, name, code string) string {
	greeting := "Hello,"
	if name != "" {
		greeting = fmt.Sprintf("Hello %s,", name)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>One-Time Passcode</title>
  <style>
    body { font-family: 'Arial', sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background: #01507d; color: white; padding: 30px; text-align: center; border-radius: 8px 8px 0 0; }
    .content { background: #f9f9f9; padding: 30px; border-radius: 0 0 8px 8px; }
    .otp-box { background: #01507d; color: white; padding: 20px; text-align: center; border-radius: 6px; margin: 20px 0; font-size: 24px; font-weight: bold; letter-spacing: 3px; }
    .footer { text-align: center; margin-top: 20px; color: #666; font-size: 12px; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>%s</h1>
      <p>Access Verification</p>
    </div>
    <div class="content">
      <p>%s</p>
      <p>To complete your verification, please use the following one-time passcode:</p>
      <div class="otp-box">%s</div>
      <ul>
        <li>This passcode is valid for 5 minutes only</li>
        <li>Do not share this passcode with anyone</li>
        <li>If you didn't request this access, please ignore this email</li>
      </ul>
    </div>
    <div class="footer">
      <p>This is an automated message. Please do not reply to this email.</p>
    </div>
  </div>
</body>
</html>
`, brand, greeting, code)
}
