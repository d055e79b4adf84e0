package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"leadops_backend/platform/config"
)

// ResendSender implements the Sender interface via the Resend HTTP API.
// The API key is always environment-injected, never a literal.
type ResendSender struct {
	apiKey    string
	fromName  string
	fromEmail string
	client    *http.Client
}

type resendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// NewResendSender creates a sender backed by the Resend API.
func NewResendSender(cfg config.EmailConfig) *ResendSender {
	return &ResendSender{
		apiKey:    cfg.GetResendAPIKey(),
		fromName:  cfg.GetEmailFromName(),
		fromEmail: cfg.GetEmailFromAddress(),
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (r *ResendSender) SendLeadAlertEmail(ctx context.Context, toEmail string, data LeadAlertData) error {
	subject := leadAlertSubject(data.Priority, data.Name)
	content, err := renderEmailTemplate("lead_alert.html", leadAlertEmailData{
		baseEmailData: baseEmailData{
			Title:    "Novo lead recebido",
			Heading:  "Novo lead recebido",
			CTALabel: "Abrir dashboard",
			CTAURL:   data.DashboardURL,
		},
		Name:              data.Name,
		Email:             data.Email,
		Phone:             data.Phone,
		Company:           data.Company,
		Message:           data.Message,
		Source:            data.Source,
		Score:             data.Score,
		Priority:          data.Priority,
		ActionWindow:      data.ActionWindow,
		SuggestedApproach: data.SuggestedApproach,
	})
	if err != nil {
		return err
	}
	return r.send(ctx, toEmail, subject, content)
}

func (r *ResendSender) SendLeadConfirmationEmail(ctx context.Context, toEmail, name string) error {
	content, err := renderEmailTemplate("lead_confirmation.html", confirmationEmailData{
		baseEmailData: baseEmailData{
			Title:   "Recebemos o seu pedido",
			Heading: "Recebemos o seu pedido",
		},
		Name: name,
	})
	if err != nil {
		return err
	}
	return r.send(ctx, toEmail, subjectConfirmation, content)
}

func (r *ResendSender) SendNurturingEmail(ctx context.Context, toEmail, name, templateKey string) error {
	subject := nurturingSubject(templateKey)
	content, err := renderEmailTemplate("nurturing.html", nurturingEmailData{
		baseEmailData: baseEmailData{
			Title:   subject,
			Heading: subject,
		},
		Name:        name,
		TemplateKey: templateKey,
	})
	if err != nil {
		return err
	}
	return r.send(ctx, toEmail, subject, content)
}

func (r *ResendSender) SendDailyReportEmail(ctx context.Context, toEmail string, data DailyReportData) error {
	subject := fmt.Sprintf(subjectDailyReportFmt, data.Date)
	content, err := renderEmailTemplate("daily_report.html", dailyReportEmailData{
		baseEmailData: baseEmailData{
			Title:    "Resumo diário de leads",
			Heading:  "Resumo diário de leads",
			CTALabel: "Abrir dashboard",
			CTAURL:   data.DashboardURL,
		},
		Date:         data.Date,
		TotalLeads:   data.TotalLeads,
		UrgentLeads:  data.UrgentLeads,
		HighLeads:    data.HighLeads,
		AverageScore: data.AverageScore,
		TopSource:    data.TopSource,
	})
	if err != nil {
		return err
	}
	return r.send(ctx, toEmail, subject, content)
}

func (r *ResendSender) SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error {
	return r.send(ctx, toEmail, subject, htmlContent)
}

func (r *ResendSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	payload := resendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", r.fromName, r.fromEmail),
		To:      []string{toEmail},
		Subject: subject,
		HTML:    htmlContent,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.resend.com/emails", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("resend send failed: status %d: %s", resp.StatusCode, string(data))
	}

	return nil
}
