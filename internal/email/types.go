package email

// Email is one outbound message.
type Email struct {
	From     string
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// TemplateData feeds the HTML mail templates.
type TemplateData map[string]interface{}
