package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPConfig holds the SMTP transport settings.
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

// GomailProvider implements Provider over SMTP via gomail.
type GomailProvider struct {
	config    SMTPConfig
	templates *TemplateManager
}

func NewGomailProvider(config SMTPConfig) (*GomailProvider, error) {
	tm, err := NewTemplateManager()
	if err != nil {
		return nil, fmt.Errorf("failed to create template manager: %w", err)
	}

	p := &GomailProvider{
		config:    config,
		templates: tm,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *GomailProvider) Send(email *Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("no recipients specified")
	}

	m := gomail.NewMessage()
	from := email.From
	if from == "" {
		from = m.FormatAddress(p.config.FromEmail, p.config.FromName)
	}
	m.SetHeader("From", from)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)
	if email.HTMLBody != "" {
		m.SetBody("text/html", email.HTMLBody)
		if email.Body != "" {
			m.AddAlternative("text/plain", email.Body)
		}
	} else {
		m.SetBody("text/plain", email.Body)
	}

	d := gomail.NewDialer(p.config.Host, p.config.Port, p.config.Username, p.config.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (p *GomailProvider) SendTemplate(to []string, subject string, templateName string, data TemplateData) error {
	htmlBody, err := p.templates.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}

	return p.Send(&Email{
		To:       to,
		Subject:  subject,
		HTMLBody: htmlBody,
	})
}

func (p *GomailProvider) SendPasswordReset(to, name, resetURL string) error {
	return p.SendTemplate(
		[]string{to},
		"Recuperação de Senha - Life Med",
		"password_reset",
		TemplateData{
			"Name":     name,
			"ResetURL": resetURL,
		},
	)
}

func (p *GomailProvider) SendWelcome(to, name string) error {
	return p.SendTemplate(
		[]string{to},
		"Bem-vindo ao Life Med",
		"welcome",
		TemplateData{
			"Name": name,
		},
	)
}

func (p *GomailProvider) Validate() error {
	if p.config.Host == "" {
		return fmt.Errorf("SMTP host is required")
	}
	if p.config.Port <= 0 || p.config.Port > 65535 {
		return fmt.Errorf("invalid SMTP port: %d", p.config.Port)
	}
	return nil
}
