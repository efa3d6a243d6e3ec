package services

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendWelcomeEmail(email, name string) error
	SendPayoutEmail(email, name, leadName string) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendWelcomeEmail(email, name string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Bem-vindo ao IndicaMais!")

	body := fmt.Sprintf(`
		<h2>Bem-vindo ao IndicaMais, %s!</h2>
		<p>Sua conta foi criada com sucesso.</p>
		<p>Compartilhe seu código promocional e acompanhe suas indicações pelo painel.</p>
		<p>Abraços,<br>Equipe IndicaMais</p>
	`, name)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}

	return nil
}

func (s *emailService) SendPayoutEmail(email, name, leadName string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Sua indicação foi paga!")

	body := fmt.Sprintf(`
		<h3>Boa notícia, %s!</h3>
		<p>O repasse da sua indicação <strong>%s</strong> foi efetuado.</p>
		<p>O valor cai na chave pix cadastrada no seu perfil.</p>
	`, name, leadName)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send payout email: %w", err)
	}

	return nil
}
