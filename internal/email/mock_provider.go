package email

import "sakay_backend/internal/logger"

// MockProvider logs instead of sending. Used when SMTP is not configured
// (local development) and by the test harness, which also reads back the
// last code it "delivered".
type MockProvider struct {
	LastTo      string
	LastCode    string
	LastPurpose Purpose
	FailNext    bool
}

func (m *MockProvider) Send(email *Email) error {
	logger.Info("mock email", "to", email.To, "subject", email.Subject)
	return nil
}

func (m *MockProvider) SendTemplate(to []string, subject, templateName string, data TemplateData) error {
	logger.Info("mock email (template)", "to", to, "subject", subject, "template", templateName)
	return nil
}

func (m *MockProvider) SendOTP(to, code string, purpose Purpose) error {
	if m.FailNext {
		m.FailNext = false
		return errMockDelivery
	}
	m.LastTo = to
	m.LastCode = code
	m.LastPurpose = purpose
	logger.Info("mock OTP email", "to", to, "purpose", string(purpose))
	return nil
}

type mockDeliveryError struct{}

func (mockDeliveryError) Error() string { return "mock delivery failure" }

var errMockDelivery = mockDeliveryError{}
