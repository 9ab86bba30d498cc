package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendCrisisAlert(toEmail, userID, sessionID, severity, message string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

func (s *emailService) SendCrisisAlert(toEmail, userID, sessionID, severity, message string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("[%s] Crisis alert in session %s", severity, sessionID))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Crisis alert</h2>
			<p><strong>Severity:</strong> %s</p>
			<p><strong>User:</strong> %s</p>
			<p><strong>Session:</strong> %s</p>
			<p><strong>Triggering message:</strong></p>
			<blockquote style="border-left: 3px solid #d9534f; padding-left: 10px;">%s</blockquote>
			<p>Open the helper dashboard to respond.</p>
		</div>
	`, severity, userID, sessionID, message)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send crisis alert to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Crisis alert sent to %s\n", toEmail)
	return nil
}
