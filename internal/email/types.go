package email

// Purpose tells the template layer why a code is being sent.
type Purpose string

const (
	PurposeSignup Purpose = "signup"
	PurposeSignin Purpose = "signin"
	PurposeResend Purpose = "resend"
)

// Email is one outgoing message.
type Email struct {
	From     string
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// TemplateData feeds the html templates.
type TemplateData map[string]interface{}
