// Package mail renders and delivers the transactional emails of the API.
package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/mykinyozi/kinyozi-api/internal/core/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer turns a template name and its variables into a subject and an
// HTML body.
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("mail").Option("missingkey=error").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse mail templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

func (r *Renderer) Render(name string, vars map[string]any) (subject, body string, err error) {
	subject, err = subjectFor(name, vars)
	if err != nil {
		return "", "", err
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name+".html", vars); err != nil {
		return "", "", fmt.Errorf("render %s: %w", name, err)
	}
	return subject, buf.String(), nil
}

func subjectFor(name string, vars map[string]any) (string, error) {
	switch name {
	case domain.TemplatePasswordReset:
		return "My Kinyozi App password reset", nil
	case domain.TemplateLowInventory:
		return fmt.Sprintf("KINYOZI APP ALERT: PRODUCT RUNNING %v", vars["level"]), nil
	case domain.TemplateEmployeeOnboard:
		return fmt.Sprintf("%s sign up.", strings.ToUpper(fmt.Sprint(vars["shop_name"]))), nil
	default:
		return "", fmt.Errorf("unknown mail template %q", name)
	}
}
