package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendReportPublished(toEmail, reportName, sessionId string) error
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

// SendReportPublished notifies the reporting inbox that a report went live.
func (s *emailService) SendReportPublished(toEmail, reportName, sessionId string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Report published: %s", reportName))
	m.SetBody("text/html", fmt.Sprintf(
		"<p>The report <b>%s</b> has been published.</p><p>Session: %s</p>",
		reportName, sessionId,
	))

	return s.dialer.DialAndSend(m)
}
