package mail

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"net/url"
	"path/filepath"
	"text/template"

	"gopkg.in/gomail.v2"

	"github.com/jpher/readiness-funnel/internal/entity"
)

const welcomeSubject = "{{.FirstName}}, advice from operators who've been in your shoes"

func NewEmailSender(host string, port int, user, password, from, baseURL, templatesDir string) *EmailSender {
	return &EmailSender{
		Host:         host,
		Port:         port,
		User:         user,
		Password:     password,
		From:         from,
		BaseURL:      baseURL,
		TemplatesDir: templatesDir,
	}
}

// SendWelcome dispara o Email #1, com o breakdown por dimensão.
func (s *EmailSender) SendWelcome(lead *entity.Lead) error {
	return s.send(lead, welcomeSubject, "welcome.html")
}

// SendStep envia o email de um passo da sequência. subject também é um
// template (ex: "{{.FirstName}}, a different kind of conversation").
func (s *EmailSender) SendStep(lead *entity.Lead, subject, templateFile string) error {
	return s.send(lead, subject, templateFile)
}

func (s *EmailSender) send(lead *entity.Lead, subjectTmpl, templateFile string) error {
	data := s.viewFor(lead)

	subject, err := renderSubject(subjectTmpl, data)
	if err != nil {
		return fmt.Errorf("erro ao processar assunto do email: %w", err)
	}

	tmplPath := filepath.Join(s.TemplatesDir, templateFile)
	t, err := htmltemplate.ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("erro ao ler template de email: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("erro ao processar template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", lead.Email)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}

func (s *EmailSender) viewFor(lead *entity.Lead) StepEmailData {
	company := lead.Company
	if company == "" {
		company = "your company"
	}

	return StepEmailData{
		FirstName:      lead.FirstName(),
		FullName:       lead.Name,
		Company:        company,
		TotalScore:     lead.TotalScore,
		Percentage:     lead.Percentage,
		ReadinessLevel: lead.ReadinessLevel,
		DataScore:      lead.Scores.Data,
		ProcessScore:   lead.Scores.Process,
		TeamScore:      lead.Scores.Team,
		StrategicScore: lead.Scores.Strategic,
		ChangeScore:    lead.Scores.Change,
		UnsubscribeURL: s.unsubscribeURL(lead.Email),
	}
}

func (s *EmailSender) unsubscribeURL(email string) string {
	return s.BaseURL + "/unsubscribe?email=" + url.QueryEscape(email)
}

func renderSubject(subjectTmpl string, data StepEmailData) (string, error) {
	t, err := template.New("subject").Parse(subjectTmpl)
	if err != nil {
		return "", err
	}
	var out bytes.Buffer
	if err := t.Execute(&out, data); err != nil {
		return "", err
	}
	return out.String(), nil
}
