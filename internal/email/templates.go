package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

type baseEmailData struct {
	Title      string
	Heading    string
	Subheading string
	CTALabel   string
	CTAURL     string
}

type leadAlertEmailData struct {
	baseEmailData
	Name              string
	Email             string
	Phone             string
	Company           string
	Message           string
	Source            string
	Score             int
	Priority          string
	ActionWindow      string
	SuggestedApproach string
}

type confirmationEmailData struct {
	baseEmailData
	Name string
}

type nurturingEmailData struct {
	baseEmailData
	Name        string
	TemplateKey string
}

type dailyReportEmailData struct {
	baseEmailData
	Date         string
	TotalLeads   int
	UrgentLeads  int
	HighLeads    int
	AverageScore float64
	TopSource    string
}

func renderEmailTemplate(name string, data any) (string, error) {
	templates := []string{"templates/base.html", "templates/" + name}
	tmpl, err := template.New("base.html").ParseFS(templateFS, templates...)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}
