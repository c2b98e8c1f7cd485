package services

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/smtp"
	"net/textproto"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/pentlavallir/Landscaping-US/internal/config"
	"github.com/pentlavallir/Landscaping-US/internal/utils"
)

/* ------------------------------------------------------------------
   Email
------------------------------------------------------------------ */

// EmailAttachment is a file carried along with an outbound email.
type EmailAttachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

func (a EmailAttachment) contentType() string {
	if a.ContentType != "" {
		return a.ContentType
	}
	return "application/octet-stream"
}

// EmailSender delivers a single plain-text message, optionally with
// attachments. Implementations are selected at startup from
// configuration; a nil sender means email is not configured and sends
// should be skipped, not failed.
type EmailSender interface {
	Send(ctx context.Context, toEmail, toName, subject, body string, attachments ...EmailAttachment) error
}

// NewEmailSender picks the configured transport. SMTP wins when both SMTP
// and SendGrid settings are present. Returns nil when neither is set up.
func NewEmailSender(cfg *config.Config) EmailSender {
	switch {
	case cfg.SMTPConfigured():
		utils.Logger.Infof("Email transport: SMTP via %s:%s", cfg.SMTPHost, cfg.SMTPPort)
		return &smtpSender{
			host:     cfg.SMTPHost,
			port:     cfg.SMTPPort,
			username: cfg.SMTPUsername,
			password: cfg.SMTPPassword,
			from:     cfg.SMTPFrom,
			useTLS:   cfg.SMTPUseTLS,
		}
	case cfg.SendGridAPIKey != "":
		utils.Logger.Info("Email transport: SendGrid")
		return &sendgridSender{
			client:    sendgrid.NewSendClient(cfg.SendGridAPIKey),
			fromEmail: cfg.SendGridFromEmail,
			fromName:  "Landscaping & Mowing Admin",
		}
	default:
		return nil
	}
}

type smtpSender struct {
	host     string
	port     string
	username string
	password string
	from     string
	useTLS   bool
}

func (s *smtpSender) Send(_ context.Context, toEmail, toName, subject, body string, attachments ...EmailAttachment) error {
	msg, err := buildMessage(s.from, toEmail, toName, subject, body, attachments)
	if err != nil {
		return err
	}

	addr := net.JoinHostPort(s.host, s.port)
	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	if s.useTLS {
		return s.sendImplicitTLS(addr, auth, toEmail, msg)
	}
	return smtp.SendMail(addr, auth, s.from, []string{toEmail}, msg)
}

// buildMessage assembles the RFC 5322 message. Without attachments it is
// a single text/plain body; with them it becomes multipart/mixed with each
// attachment base64-encoded.
func buildMessage(from, toEmail, toName, subject, body string, attachments []EmailAttachment) ([]byte, error) {
	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	if toName != "" {
		fmt.Fprintf(&msg, "To: %s <%s>\r\n", toName, toEmail)
	} else {
		fmt.Fprintf(&msg, "To: %s\r\n", toEmail)
	}
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")

	if len(attachments) == 0 {
		msg.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
		msg.WriteString("\r\n")
		msg.WriteString(body)
		return msg.Bytes(), nil
	}

	mw := multipart.NewWriter(&msg)
	fmt.Fprintf(&msg, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", mw.Boundary())

	textHeader := textproto.MIMEHeader{}
	textHeader.Set("Content-Type", "text/plain; charset=\"utf-8\"")
	part, err := mw.CreatePart(textHeader)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write([]byte(body)); err != nil {
		return nil, err
	}

	for _, att := range attachments {
		h := textproto.MIMEHeader{}
		h.Set("Content-Type", att.contentType())
		h.Set("Content-Transfer-Encoding", "base64")
		h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", att.Filename))
		part, err := mw.CreatePart(h)
		if err != nil {
			return nil, err
		}
		if err := writeBase64(part, att.Content); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}
	return msg.Bytes(), nil
}

// writeBase64 encodes data in 76-column lines as required for MIME bodies.
func writeBase64(w io.Writer, data []byte) error {
	encoded := base64.StdEncoding.EncodeToString(data)
	for len(encoded) > 0 {
		n := 76
		if len(encoded) < n {
			n = len(encoded)
		}
		if _, err := fmt.Fprintf(w, "%s\r\n", encoded[:n]); err != nil {
			return err
		}
		encoded = encoded[n:]
	}
	return nil
}

// sendImplicitTLS is for servers that expect TLS from the first byte
// (typically port 465) instead of STARTTLS.
func (s *smtpSender) sendImplicitTLS(addr string, auth smtp.Auth, toEmail string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: s.host})
	if err != nil {
		return err
	}
	c, err := smtp.NewClient(conn, s.host)
	if err != nil {
		conn.Close()
		return err
	}
	defer c.Close()

	if auth != nil {
		if err := c.Auth(auth); err != nil {
			return err
		}
	}
	if err := c.Mail(s.from); err != nil {
		return err
	}
	if err := c.Rcpt(toEmail); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.Quit()
}

type sendgridSender struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func (s *sendgridSender) Send(_ context.Context, toEmail, toName, subject, body string, attachments ...EmailAttachment) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	msg := mail.NewSingleEmail(from, subject, to, body, "")
	for _, att := range attachments {
		a := mail.NewAttachment()
		a.SetContent(base64.StdEncoding.EncodeToString(att.Content))
		a.SetType(att.contentType())
		a.SetFilename(att.Filename)
		a.SetDisposition("attachment")
		msg.AddAttachment(a)
	}
	resp, err := s.client.Send(msg)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}

/* ------------------------------------------------------------------
   SMS
------------------------------------------------------------------ */

// SMSSender delivers a single SMS. A nil sender means Twilio is not
// configured.
type SMSSender interface {
	Send(ctx context.Context, toPhone, body string) error
}

func NewSMSSender(cfg *config.Config) SMSSender {
	if !cfg.SMSConfigured() {
		return nil
	}
	utils.Logger.Info("SMS transport: Twilio")
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioAccountSID,
		Password: cfg.TwilioAuthToken,
	})
	return &twilioSender{client: client, from: cfg.TwilioFromPhone}
}

type twilioSender struct {
	client *twilio.RestClient
	from   string
}

func (s *twilioSender) Send(_ context.Context, toPhone, body string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(toPhone)
	params.SetFrom(s.from)
	params.SetBody(body)
	_, err := s.client.Api.CreateMessage(params)
	return err
}
