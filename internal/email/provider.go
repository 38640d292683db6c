package email

// Provider is the external mail collaborator contract: deliver or fail.
type Provider interface {
	// Send delivers a prepared email message.
	Send(email *Email) error

	// SendTemplate renders an HTML template and delivers it.
	SendTemplate(to []string, subject string, templateName string, data TemplateData) error

	// SendPasswordReset delivers the reset link to the account owner.
	SendPasswordReset(to, name, resetURL string) error

	// SendWelcome greets a freshly registered account.
	SendWelcome(to, name string) error

	// Validate checks the provider configuration.
	Validate() error
}
