package email

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/Jean612/SoundScape/internal/config"
)

type EmailService struct {
	cfg *config.Config
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{cfg: cfg}
}

// SendEmailConfirmation sends the OTP code plus a confirmation link to a
// freshly registered (or re-requesting) user.
func (s *EmailService) SendEmailConfirmation(toEmail, name, otpCode, confirmationToken string) error {
	subject := "[SoundScape] Confirm your email address"
	confirmURL := fmt.Sprintf("%s?token=%s", s.cfg.ConfirmURLBase, confirmationToken)
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #6C63FF;">Welcome to SoundScape</h2>
        <p>Hi %s,</p>
        <p>Use this code to confirm your email address:</p>
        <div style="background-color: #f4f4f4; padding: 20px; border-radius: 5px; text-align: center; margin: 20px 0;">
            <h1 style="color: #6C63FF; font-size: 36px; margin: 0; letter-spacing: 5px;">%s</h1>
        </div>
        <p>The code is valid for <strong>15 minutes</strong>.</p>
        <p>You can also confirm by opening this link (valid for 24 hours):</p>
        <p><a href="%s">%s</a></p>
        <p>If you didn't create a SoundScape account, you can safely ignore this email.</p>
        <hr style="border: none; border-top: 1px solid #eee; margin: 30px 0;">
        <p style="color: #999; font-size: 12px;">
            This email was sent automatically by SoundScape.
        </p>
    </div>
</body>
</html>
`, name, otpCode, confirmURL, confirmURL)

	return s.sendEmail(toEmail, subject, body)
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to, subject, body string) error {
	// Gmail requires sender to match authenticated user
	from := s.cfg.EmailHostUser

	displayFrom := from
	if s.cfg.DefaultFromEmail != "" {
		displayFrom = fmt.Sprintf("SoundScape <%s>", from)
	}

	auth := smtp.PlainAuth("", s.cfg.EmailHostUser, s.cfg.EmailHostPassword, s.cfg.EmailHost)

	headers := make(map[string]string)
	headers["From"] = displayFrom
	headers["To"] = to
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"
	headers["Content-Transfer-Encoding"] = "quoted-printable"

	message := ""
	for k, v := range headers {
		message += fmt.Sprintf("%s: %s\r\n", k, v)
	}
	message += "\r\n" + body

	addr := fmt.Sprintf("%s:%d", s.cfg.EmailHost, s.cfg.EmailPort)

	if s.cfg.EmailUseTLS {
		return s.sendMailTLS(addr, auth, from, []string{to}, []byte(message))
	}

	return smtp.SendMail(addr, auth, from, []string{to}, []byte(message))
}

// sendMailTLS sends email with STARTTLS
func (s *EmailService) sendMailTLS(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
	host := strings.Split(addr, ":")[0]
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to dial: %w", err)
	}

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	if err = client.StartTLS(&tls.Config{ServerName: host}); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	if err = client.Auth(auth); err != nil {
		return fmt.Errorf("failed to authenticate: %w", err)
	}

	if err = client.Mail(from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}

	for _, recipient := range to {
		if err = client.Rcpt(recipient); err != nil {
			return fmt.Errorf("failed to set recipient: %w", err)
		}
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data writer: %w", err)
	}

	if _, err = writer.Write(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	if err = writer.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return client.Quit()
}
