package mail

import (
	"fmt"
	"net/smtp"
)

// Sender delivers the route-selection confirmation mail. Delivery is a
// courtesy: callers log failures and carry on.
type Sender interface {
	SendRouteSelected(to, username, destination string) error
}

var _ Sender = (*SMTPSender)(nil)

type SMTPSender struct {
	host     string
	port     string
	user     string
	password string
}

func NewSMTPSender(host, port, user, password string) *SMTPSender {
	return &SMTPSender{
		host:     host,
		port:     port,
		user:     user,
		password: password,
	}
}

func (s *SMTPSender) SendRouteSelected(to, username, destination string) error {
	if s.user == "" {
		return fmt.Errorf("no sender address configured")
	}
	subject := "Route Selected for today's Ride"
	body := fmt.Sprintf(
		"Hello %s,\n\nYou have successfully joined the route for the ride to %s.\n\nThanks for using our service!\n\nbest wishes,\npacktravel team",
		username, destination,
	)
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", s.user, to, subject, body)

	auth := smtp.PlainAuth("", s.user, s.password, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := smtp.SendMail(addr, auth, s.user, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send route confirmation: %w", err)
	}
	return nil
}
