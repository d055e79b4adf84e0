package email

import (
	"context"

	"leadops_backend/platform/config"
)

// LeadAlertData carries everything the sales team needs to act on a hot lead.
type LeadAlertData struct {
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
	DashboardURL      string
}

// DailyReportData summarizes lead activity for the daily digest.
type DailyReportData struct {
	Date           string
	TotalLeads     int
	UrgentLeads    int
	HighLeads      int
	AverageScore   float64
	TopSource      string
	DashboardURL   string
}

type Sender interface {
	SendLeadAlertEmail(ctx context.Context, toEmail string, data LeadAlertData) error
	SendLeadConfirmationEmail(ctx context.Context, toEmail, name string) error
	SendNurturingEmail(ctx context.Context, toEmail, name, templateKey string) error
	SendDailyReportEmail(ctx context.Context, toEmail string, data DailyReportData) error
	SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error
}

type NoopSender struct{}

func (NoopSender) SendLeadAlertEmail(ctx context.Context, toEmail string, data LeadAlertData) error {
	return nil
}

func (NoopSender) SendLeadConfirmationEmail(ctx context.Context, toEmail, name string) error {
	return nil
}

func (NoopSender) SendNurturingEmail(ctx context.Context, toEmail, name, templateKey string) error {
	return nil
}

func (NoopSender) SendDailyReportEmail(ctx context.Context, toEmail string, data DailyReportData) error {
	return nil
}

func (NoopSender) SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error {
	return nil
}

// NewSender builds the configured Sender implementation. Returns NoopSender
// when email delivery is disabled.
func NewSender(cfg config.EmailConfig) (Sender, error) {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}, nil
	}

	switch cfg.GetEmailProvider() {
	case "smtp":
		return NewSMTPSender(
			cfg.GetSMTPHost(),
			cfg.GetSMTPPort(),
			cfg.GetSMTPUsername(),
			cfg.GetSMTPPassword(),
			cfg.GetEmailFromAddress(),
			cfg.GetEmailFromName(),
		), nil
	default:
		return NewResendSender(cfg), nil
	}
}
