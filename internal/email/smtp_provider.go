package email

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"
)

// SMTPProvider delivers mail over SMTP via gomail.
type SMTPProvider struct {
	config    *Config
	dialer    *gomail.Dialer
	templates *TemplateManager
}

// NewSMTPProvider builds the provider; fails fast on an unusable config.
func NewSMTPProvider(config *Config) (*SMTPProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid email config: %w", err)
	}

	tm, err := NewTemplateManager(config.TemplatesDir)
	if err != nil {
		return nil, err
	}

	return &SMTPProvider{
		config:    config,
		dialer:    gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
		templates: tm,
	}, nil
}

// Send delivers a prepared message.
func (p *SMTPProvider) Send(email *Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("no recipients specified")
	}

	m := gomail.NewMessage()
	from := email.From
	if from == "" {
		from = p.config.FromHeader()
	}
	m.SetHeader("From", from)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)
	if email.Body != "" {
		m.SetBody("text/plain", email.Body)
		if email.HTMLBody != "" {
			m.AddAlternative("text/html", email.HTMLBody)
		}
	} else {
		m.SetBody("text/html", email.HTMLBody)
	}

	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendTemplate renders a named template and sends the result.
func (p *SMTPProvider) SendTemplate(to []string, subject, templateName string, data TemplateData) error {
	htmlBody, err := p.templates.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}

	return p.Send(&Email{
		To:       to,
		Subject:  subject,
		HTMLBody: htmlBody,
	})
}

// SendOTP delivers a one-time code. Called synchronously from the auth flow;
// the caller decides what a delivery failure means for session state.
func (p *SMTPProvider) SendOTP(to, code string, purpose Purpose) error {
	title := "Verify your Sakay account"
	subject := "Your Sakay verification code"
	if purpose == PurposeSignin {
		title = "Confirm your sign-in"
		subject = "Your Sakay sign-in code"
	}

	return p.SendTemplate([]string{to}, subject, "otp", TemplateData{
		"Title": title,
		"Code":  code,
	})
}
