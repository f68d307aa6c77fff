package email

// Provider is the notification dispatcher contract. The auth service only
// ever calls SendOTP; the rest exists for operational mail.
type Provider interface {
	// Send delivers a prepared message.
	Send(email *Email) error

	// SendTemplate renders a named template and sends it.
	SendTemplate(to []string, subject, templateName string, data TemplateData) error

	// SendOTP delivers a one-time code for the given purpose.
	SendOTP(to, code string, purpose Purpose) error
}
