package services

import (
	"fmt"
	"net/smtp"
	"strings"

	"hub/config"
)

type EmailService struct {
    host     string
    port     string
    username string
    password string
}

func NewEmailService() *EmailService {
    return &EmailService{
        host:     config.MailHost,
        port:     config.MailPort,
        username: config.MailUsername,
        password: config.MailPassword,
    }
}

// SendSupportEmail forwards a support request to the support mailbox
func (s *EmailService) SendSupportEmail(name, email, issueType, subject, message string) error {
    if s.host == "" || config.SupportEmail == "" {
        return fmt.Errorf("support email is not configured")
    }

    auth := smtp.PlainAuth("", s.username, s.password, s.host)

    body := strings.TrimSpace(fmt.Sprintf(`
To: %s
MIME-version: 1.0
Content-Type: text/plain; charset="UTF-8"
Subject: [Support][%s] %s

From: %s <%s>

%s
`, config.SupportEmail, issueType, subject, name, email, message))

    addr := fmt.Sprintf("%s:%s", s.host, s.port)
    if err := smtp.SendMail(addr, auth, s.username, []string{config.SupportEmail}, []byte(body)); err != nil {
        return fmt.Errorf("failed to send support email: %w", err)
    }
    return nil
}
