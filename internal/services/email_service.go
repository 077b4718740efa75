package services

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/monazzem/amlak-api/internal/config"
	"github.com/monazzem/amlak-api/internal/models"
	"github.com/monazzem/amlak-api/pkg/logger"
	"github.com/resend/resend-go/v2"
)

//go:embed templates/email/*.html
var emailTemplates embed.FS

type EmailService struct {
	config       *config.Config
	resendClient *resend.Client
}

func NewEmailService(cfg *config.Config) *EmailService {
	client := resend.NewClient(cfg.ResendAPIKey)
	return &EmailService{
		config:       cfg,
		resendClient: client,
	}
}

func (s *EmailService) SendAccountCreated(ctx context.Context, user *models.User) error {
	data := struct {
		Name   string
		AppURL string
	}{
		Name:   user.FullName,
		AppURL: s.config.AppURL,
	}

	body, err := s.renderTemplate("account_created.html", data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.config.FromEmail,
		To:      []string{user.Email},
		Subject: "Welcome to Amlak",
		Html:    body,
	}
	_, err = s.resendClient.Emails.Send(params)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to send email to %s: %v", user.Email, err))
		return err
	}

	logger.Info(fmt.Sprintf("[Email Sent] To: %s | Subject: Welcome to Amlak", user.Email))
	return nil
}

// SendOverdueReminder emails the tenant about one overdue installment. A
// tenant without an email address is silently skipped.
func (s *EmailService) SendOverdueReminder(ctx context.Context, installment *models.Installment) error {
	tenant := installment.Contract.Tenant
	if tenant.Email == nil || *tenant.Email == "" {
		return nil
	}

	propertyCode := "-"
	if installment.Contract.Property.ID != 0 {
		propertyCode = installment.Contract.Property.Code
	}

	data := struct {
		Name         string
		ContractNo   string
		PropertyCode string
		Amount       string
		DueDate      string
		AppURL       string
	}{
		Name:         tenant.Name,
		ContractNo:   installment.Contract.ContractNo,
		PropertyCode: propertyCode,
		Amount:       fmt.Sprintf("%.2f", installment.Amount),
		DueDate:      installment.DueDate.Format(models.DateLayout),
		AppURL:       s.config.AppURL,
	}

	body, err := s.renderTemplate("overdue_installment.html", data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.config.FromEmail,
		To:      []string{*tenant.Email},
		Subject: "Overdue rent installment",
		Html:    body,
	}
	_, err = s.resendClient.Emails.Send(params)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to send email to %s: %v", *tenant.Email, err))
		return err
	}

	logger.Info(fmt.Sprintf("[Email Sent] To: %s | Subject: Overdue rent installment", *tenant.Email))
	return nil
}

func (s *EmailService) renderTemplate(name string, data interface{}) (string, error) {
	tmpl, err := template.ParseFS(emailTemplates, "templates/email/"+name)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	return buf.String(), nil
}
