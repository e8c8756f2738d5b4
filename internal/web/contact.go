package web

import (
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aryanwebd35/portfolio/internal/config"
	"github.com/aryanwebd35/portfolio/internal/observability"
)

var ErrMailNotConfigured = errors.New("SMTP credentials not configured")

// Mailer delivers contact form submissions.
type Mailer interface {
	Send(name, email, message string) error
}

// SMTPMailer sends mail through an authenticated SMTP relay.
type SMTPMailer struct {
	Host string
	Port string
	User string
	Pass string
	To   string
}

// NewSMTPMailer builds a mailer from the config. Without a TO_EMAIL the
// message goes to the profile's own address.
func NewSMTPMailer(cfg *config.Config, fallbackTo string) *SMTPMailer {
	to := cfg.ToEmail
	if to == "" {
		to = fallbackTo
	}
	return &SMTPMailer{Host: cfg.SMTPHost, Port: cfg.SMTPPort, User: cfg.SMTPUser, Pass: cfg.SMTPPass, To: to}
}

func (m *SMTPMailer) Send(name, email, message string) error {
	if m.User == "" || m.Pass == "" {
		return ErrMailNotConfigured
	}

	subject := fmt.Sprintf("Portfolio Contact: %s", name)
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, name, email, message)

	msg := []byte("To: " + m.To + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + m.User + "\r\n" +
		"Reply-To: " + email + "\r\n" +
		"\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", m.User, m.Pass, m.Host)
	if err := smtp.SendMail(m.Host+":"+m.Port, auth, m.User, []string{m.To}, msg); err != nil {
		return fmt.Errorf("sending contact email: %w", err)
	}
	return nil
}

// singleLine rejects values that could inject extra mail headers.
func singleLine(s string) bool {
	return !strings.ContainsAny(s, "\r\n")
}

func (s *Server) handleContact(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("fullName"))
	email := strings.TrimSpace(c.PostForm("email"))
	message := strings.TrimSpace(c.PostForm("message"))

	_, addrErr := mail.ParseAddress(email)
	if name == "" || message == "" || !singleLine(name) || !singleLine(email) || addrErr != nil {
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Please fill in your name, a valid email and a message.",
		})
		return
	}

	log := observability.LoggerFromContext(c.Request.Context())
	if s.mailer == nil {
		log.Error("contact form submitted without a mailer")
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Sorry, there was an error sending your message. Please try again later.",
		})
		return
	}
	if err := s.mailer.Send(name, email, message); err != nil {
		log.Error("sending contact email", "error", err)
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Sorry, there was an error sending your message. Please try again later.",
		})
		return
	}

	log.Info("contact email sent", "name", name)
	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": "Thank you for your message! I'll get back to you soon.",
	})
}
