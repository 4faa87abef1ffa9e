package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/dtrivino/portfolio/internal/store"
)

// ErrMailerDisabled means no SMTP credentials are configured. Messages are
// still kept in the admin inbox.
var ErrMailerDisabled = errors.New("SMTP credentials not configured")

var validate = validator.New(validator.WithRequiredStructEnabled())

type contactForm struct {
	Name    string `form:"name" validate:"required,max=200"`
	Email   string `form:"email" validate:"required,email,max=254"`
	Subject string `form:"subject" validate:"required,max=200"`
	Message string `form:"message" validate:"required,max=5000"`
}

func (f *contactForm) trim() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Subject = strings.TrimSpace(f.Subject)
	f.Message = strings.TrimSpace(f.Message)
}

// validationErrors returns one message per invalid field, keyed by form field name.
func (f contactForm) validationErrors() map[string]string {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"form": "Invalid submission"}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		key := strings.ToLower(fe.Field())
		if _, seen := out[key]; !seen {
			out[key] = fieldMessage(fe)
		}
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch {
	case fe.Tag() == "max":
		return fe.Field() + " is too long"
	case fe.Field() == "Email":
		return "Valid email required"
	default:
		return fe.Field() + " is required"
	}
}

func (s *site) handleContact(c *gin.Context) {
	var form contactForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusOK, "contact.html", gin.H{
			"errors": map[string]string{"form": "Could not read the form"},
		})
		return
	}
	form.trim()
	if errs := form.validationErrors(); len(errs) > 0 {
		c.HTML(http.StatusOK, "contact.html", gin.H{
			"errors": errs,
			"form":   form,
		})
		return
	}

	ctx := c.Request.Context()
	msg := store.Message{
		Name:      form.Name,
		Email:     form.Email,
		Subject:   form.Subject,
		Body:      form.Message,
		Timestamp: s.now(),
	}
	id, err := s.store.SaveMessage(ctx, msg)
	if err != nil {
		s.logger.Error("saving contact message", "err", err)
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Sorry, there was an error sending your message. Please try again later.",
		})
		return
	}
	msg.ID = id

	switch err := s.mailer.Send(ctx, msg); {
	case errors.Is(err, ErrMailerDisabled):
		s.logger.Warn("contact message stored but not mailed", "id", id, "err", err)
	case err != nil:
		s.logger.Error("mailing contact message", "id", id, "err", err)
	default:
		if err := s.store.MarkMailed(ctx, id); err != nil {
			s.logger.Error("marking message mailed", "id", id, "err", err)
		}
		s.logger.Info("contact message sent", "id", id)
	}

	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": "Thank you! Your message has been sent. I'll get back to you soon.",
	})
}

// Mailer delivers contact messages to the site owner.
type Mailer interface {
	Send(ctx context.Context, msg store.Message) error
}

type smtpMailer struct {
	host, user, pass, to string
	port                 int
}

func newSMTPMailer(cfg appConfig) *smtpMailer {
	return &smtpMailer{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
		to:   cfg.ToEmail,
	}
}

func (m *smtpMailer) Send(_ context.Context, msg store.Message) error {
	if m.user == "" || m.pass == "" {
		return ErrMailerDisabled
	}
	to := m.to
	if to == "" {
		to = m.user
	}
	auth := smtp.PlainAuth("", m.user, m.pass, m.host)
	addr := m.host + ":" + strconv.Itoa(m.port)
	if err := smtp.SendMail(addr, auth, m.user, []string{to}, composeMail(m.user, to, msg)); err != nil {
		return fmt.Errorf("sending mail via %s: %w", addr, err)
	}
	return nil
}

func composeMail(from, to string, msg store.Message) []byte {
	subject := fmt.Sprintf("Portfolio Contact: %s", headerSafe(msg.Subject))
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Subject: %s
Message:
%s

---
Sent from your portfolio contact form
`, msg.Name, msg.Email, msg.Subject, msg.Body)

	return []byte("To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + from + "\r\n" +
		"Reply-To: " + headerSafe(msg.Email) + "\r\n" +
		"\r\n" +
		body + "\r\n")
}

// headerSafe strips line breaks so form input cannot add mail headers.
func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
