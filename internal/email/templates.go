package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// TemplateManager renders the HTML mail templates.
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

func NewTemplateManager() (*TemplateManager, error) {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}

	builtin := map[string]string{
		"password_reset": passwordResetTemplate,
		"welcome":        welcomeTemplate,
	}
	for name, text := range builtin {
		if err := tm.AddTemplate(name, text); err != nil {
			return nil, err
		}
	}

	return tm, nil
}

func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()

	return nil
}

// Mail copy is Portuguese, matching the product UI. The expiry stated here
// must stay in sync with the reset_token_ttl configuration (two hours).
const (
	passwordResetTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Recuperação de Senha - Life Med</title>
</head>
<body style="font-family: Arial, sans-serif; color: #333;">
    <h2>Olá, {{.Name}}!</h2>
    <p>Você solicitou a recuperação de senha para sua conta no Life Med.</p>
    <p>Para redefinir sua senha, clique no botão abaixo:</p>
    <p>
        <a href="{{.ResetURL}}" style="background-color: #0d6efd; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px;">Redefinir Senha</a>
    </p>
    <p><strong>Importante:</strong></p>
    <ul>
        <li>Este link expira em 2 horas</li>
        <li>Só pode ser usado uma vez</li>
        <li>Se você não solicitou esta recuperação, ignore este email</li>
    </ul>
    <p>Se você não conseguir clicar no botão, copie e cole este link no seu navegador:</p>
    <p>{{.ResetURL}}</p>
</body>
</html>`

	welcomeTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Bem-vindo ao Life Med</title>
</head>
<body style="font-family: Arial, sans-serif; color: #333;">
    <h1>Bem-vindo, {{.Name}}!</h1>
    <p>Sua conta no Life Med foi criada com sucesso.</p>
    <p>Acesse a plataforma para agendar suas consultas.</p>
</body>
</html>`
)
