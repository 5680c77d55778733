package notification

import (
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPSender delivers mail through a plain SMTP relay. No auth: the relay
// is expected to sit inside the deployment network.
type SMTPSender struct {
	Addr string // host:port
	From string
}

func (s *SMTPSender) Send(to, subject, body string) error {
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", s.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	if err := smtp.SendMail(s.Addr, nil, s.From, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("smtp send to %s failed: %w", to, err)
	}
	return nil
}
