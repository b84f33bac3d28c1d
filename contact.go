package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/smtp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

var errSMTPNotConfigured = errors.New("SMTP credentials not configured")

// headerSafe keeps visitor input from starting new mail headers.
var headerSafe = strings.NewReplacer("\r", " ", "\n", " ")

// Mailer delivers contact form submissions to the site owner.
type Mailer interface {
	Send(name, email, message string) error
}

type smtpMailer struct {
	host, port string
	user, pass string
	to         string
	send       func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func newSMTPMailer(cfg Config) *smtpMailer {
	return &smtpMailer{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
		to:   cfg.ToEmail,
		send: smtp.SendMail,
	}
}

func (m *smtpMailer) Send(name, email, message string) error {
	if m.user == "" || m.pass == "" {
		return errSMTPNotConfigured
	}

	auth := smtp.PlainAuth("", m.user, m.pass, m.host)
	if err := m.send(m.host+":"+m.port, auth, m.user, []string{m.to}, m.compose(name, email, message)); err != nil {
		return fmt.Errorf("sending mail: %w", err)
	}
	return nil
}

func (m *smtpMailer) compose(name, email, message string) []byte {
	subject := fmt.Sprintf("Portfolio Contact: %s", headerSafe.Replace(name))
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, name, email, message)

	return []byte("To: " + m.to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + m.user + "\r\n" +
		"Reply-To: " + email + "\r\n" +
		"\r\n" +
		body + "\r\n")
}

type contactForm struct {
	FullName string `form:"fullName" binding:"required,max=200"`
	Email    string `form:"email" binding:"required,email,max=320"`
	Message  string `form:"message" binding:"required,max=5000"`
}

// handleContact stores the submission, then tries to mail it. A stored
// message is never lost to a mail failure; it stays undelivered instead.
func (s *server) handleContact(c *gin.Context) {
	var form contactForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "contact-error.html", gin.H{
			"error": "Please provide your name, a valid email address and a message.",
		})
		return
	}

	id, err := s.store.SaveMessage(form.FullName, form.Email, form.Message, time.Now())
	if err != nil {
		log.Printf("Error saving contact message: %v", err)
		c.HTML(http.StatusInternalServerError, "contact-error.html", gin.H{
			"error": "Sorry, there was an error sending your message. Please try again later.",
		})
		return
	}

	if err := s.mailer.Send(form.FullName, form.Email, form.Message); err != nil {
		log.Printf("Error sending email for message %d: %v", id, err)
	} else if err := s.store.MarkDelivered(id); err != nil {
		log.Printf("Error marking message %d delivered: %v", id, err)
	} else {
		log.Printf("Email sent successfully for message %d", id)
	}

	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": "Thank you for your message! I'll get back to you soon.",
	})
}
