package email

import "fmt"

// Config holds SMTP connection settings.
type Config struct {
	Host         string
	Port         int
	Username     string
	Password     string
	FromEmail    string
	FromName     string
	TemplatesDir string
}

// Validate checks the fields without which no mail can go out.
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("smtp host is required")
	}
	if c.Port == 0 {
		return fmt.Errorf("smtp port is required")
	}
	if c.FromEmail == "" {
		return fmt.Errorf("from email is required")
	}
	return nil
}

// FromHeader formats the From address with an optional display name.
func (c *Config) FromHeader() string {
	if c.FromName != "" {
		return fmt.Sprintf("%s <%s>", c.FromName, c.FromEmail)
	}
	return c.FromEmail
}
