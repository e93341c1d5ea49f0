package email

import (
	"bytes"
	"fmt"
	"go-jobboard-backend/config"
	"html/template"
	"net/smtp"
	"time"
)

// EmailService handles sending emails via SMTP
type EmailService struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
	send      func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// OTPEmailData holds the data rendered into the signup code email
type OTPEmailData struct {
	Code      string
	ExpiresIn time.Duration
}

// NewEmailService creates a new email service from SMTP configuration
func NewEmailService(cfg *config.Config) *EmailService {
	from := cfg.SMTPFromEmail
	if from == "" {
		from = cfg.SMTPUsername
	}
	return &EmailService{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: from,
		send:      smtp.SendMail,
	}
}

var otpEmailTemplate = template.Must(template.New("otp").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Your verification code</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .code { font-size: 32px; letter-spacing: 8px; font-weight: bold; color: #0066cc; }
        .footer { padding: 20px 0; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Verify your email</h1>
        <p>Use this code to finish creating your account:</p>
        <p class="code">{{.Code}}</p>
        <p>The code expires in {{.ExpiresIn}}.</p>
        <div class="footer">If you did not request this code you can ignore this email.</div>
    </div>
</body>
</html>`))

// SendOTPEmail mails a signup verification code to the given address
func (s *EmailService) SendOTPEmail(to string, data OTPEmailData) error {
	var body bytes.Buffer
	if err := otpEmailTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		s.fromEmail,
		to,
		"Your verification code",
		body.String(),
	))

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := s.send(addr, auth, s.fromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// SendOTP satisfies the signup code sender used by the auth usecase
func (s *EmailService) SendOTP(to, code string, expiresIn time.Duration) error {
	return s.SendOTPEmail(to, OTPEmailData{Code: code, ExpiresIn: expiresIn})
}

// IsConfigured checks if the email service has valid SMTP configuration
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}
