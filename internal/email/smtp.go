package email

import (
	"context"
	"fmt"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender implements the Sender interface using a direct SMTP connection via go-mail.
// It renders the same HTML templates as ResendSender but delivers via a self-hosted SMTP server.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSMTPSender creates a new SMTPSender with the given SMTP credentials.
func NewSMTPSender(host string, port int, username, password, fromEmail, fromName string) *SMTPSender {
	return &SMTPSender{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

func (s *SMTPSender) SendLeadAlertEmail(ctx context.Context, toEmail string, data LeadAlertData) error {
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
	return s.send(ctx, toEmail, subject, content)
}

func (s *SMTPSender) SendLeadConfirmationEmail(ctx context.Context, toEmail, name string) error {
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
	return s.send(ctx, toEmail, subjectConfirmation, content)
}

func (s *SMTPSender) SendNurturingEmail(ctx context.Context, toEmail, name, templateKey string) error {
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
	return s.send(ctx, toEmail, subject, content)
}

func (s *SMTPSender) SendDailyReportEmail(ctx context.Context, toEmail string, data DailyReportData) error {
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
	return s.send(ctx, toEmail, subject, content)
}

func (s *SMTPSender) SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error {
	return s.send(ctx, toEmail, subject, htmlContent)
}
