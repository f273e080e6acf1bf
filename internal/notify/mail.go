package notify

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"mime/multipart"
	"net"
	"net/smtp"
	"net/textproto"
	"strconv"
	"strings"
	"time"
)

// Mailer sends messages over SMTP. smtp.SendMail upgrades to STARTTLS when
// the server offers it; credentials are only used when User is set.
type Mailer struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	To       []string
}

var sendMail = smtp.SendMail

func (m *Mailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(m.To) == 0 {
		return fmt.Errorf("%w: mail: no recipients", ErrSend)
	}
	body, err := m.compose(msg, time.Now())
	if err != nil {
		return err
	}
	port := m.Port
	if port == 0 {
		port = 587
	}
	var auth smtp.Auth
	if m.User != "" {
		auth = smtp.PlainAuth("", m.User, m.Password, m.Host)
	}
	addr := net.JoinHostPort(m.Host, strconv.Itoa(port))
	if err := sendMail(addr, auth, m.From, m.To, body); err != nil {
		return fmt.Errorf("%w: mail: %v", ErrSend, err)
	}
	return nil
}

// compose renders headers and a text or multipart/alternative body.
func (m *Mailer) compose(msg Message, now time.Time) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString("From: " + m.From + "\r\n")
	b.WriteString("To: " + strings.Join(m.To, ", ") + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", msg.Subject) + "\r\n")
	b.WriteString("Date: " + now.Format(time.RFC1123Z) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")

	if msg.HTML == "" {
		b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
		b.WriteString(crlf(msg.Text))
		return b.Bytes(), nil
	}

	mw := multipart.NewWriter(&b)
	b.WriteString("Content-Type: multipart/alternative; boundary=" + mw.Boundary() + "\r\n\r\n")
	parts := []struct{ ctype, body string }{
		{"text/plain; charset=utf-8", msg.Text},
		{"text/html; charset=utf-8", msg.HTML},
	}
	for _, p := range parts {
		w, err := mw.CreatePart(textproto.MIMEHeader{"Content-Type": {p.ctype}})
		if err != nil {
			return nil, err
		}
		if _, err := w.Write([]byte(crlf(p.body))); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func crlf(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", "\r\n")
}
