package email

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
)

// TemplateManager renders named html templates, loaded from a directory with
// built-in fallbacks so a missing templates dir never blocks the OTP flow.
type TemplateManager struct {
	templates map[string]*template.Template
}

var builtinTemplates = map[string]string{
	"otp": `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
  <h2>{{.Title}}</h2>
  <p>Your Sakay verification code is:</p>
  <p style="font-size: 32px; letter-spacing: 8px; font-weight: bold;">{{.Code}}</p>
  <p>The code is valid for 10 minutes. If you did not request it, ignore this email.</p>
</body>
</html>`,
}

// NewTemplateManager loads *.html templates from dir (if it exists) on top of
// the built-ins.
func NewTemplateManager(dir string) (*TemplateManager, error) {
	tm := &TemplateManager{templates: make(map[string]*template.Template)}

	for name, body := range builtinTemplates {
		t, err := template.New(name).Parse(body)
		if err != nil {
			return nil, fmt.Errorf("failed to parse builtin template %q: %w", name, err)
		}
		tm.templates[name] = t
	}

	if dir == "" {
		return tm, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return tm, nil
		}
		return nil, fmt.Errorf("failed to read templates dir %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".html") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".html")
		t, err := template.ParseFiles(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", entry.Name(), err)
		}
		tm.templates[name] = t
	}

	return tm, nil
}

// Render executes a template by name.
func (tm *TemplateManager) Render(name string, data interface{}) (string, error) {
	t, ok := tm.templates[name]
	if !ok {
		return "", fmt.Errorf("template %q not found", name)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template %q: %w", name, err)
	}
	return buf.String(), nil
}
