package service

import (
	"context"
	"fmt"
	"html"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"protocolotea/internal/models"
	"protocolotea/internal/validation"
)

type emailSender interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

type aprendizLookup interface {
	GetByID(ctx context.Context, id int64) (*models.Aprendiz, error)
}

// LessonMailer emails the guardian of an aprendiz a summary of each finalized lesson via Amazon SES
type LessonMailer struct {
	client     emailSender
	aprendizes aprendizLookup
	fromEmail  string
	fromName   string
	appBaseURL string
	enabled    bool
	debug      bool
}

// NewLessonMailer creates a mailer. It is disabled when fromEmail is empty.
func NewLessonMailer(awsRegion, fromEmail, fromName, appBaseURL string, aprendizes aprendizLookup, debug bool) (*LessonMailer, error) {
	if fromEmail == "" {
		log.Println("Lesson mailer disabled: SES_FROM_EMAIL not configured")
		return &LessonMailer{enabled: false, debug: debug}, nil
	}

	if debug {
		log.Printf("[DEBUG] Initializing lesson mailer with AWS SES (region=%s, from=%s)", awsRegion, fromEmail)
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(awsRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Lesson mailer enabled: from=%s, region=%s", fromEmail, awsRegion)
	return &LessonMailer{
		client:     sesv2.NewFromConfig(cfg),
		aprendizes: aprendizes,
		fromEmail:  fromEmail,
		fromName:   fromName,
		appBaseURL: strings.TrimSuffix(appBaseURL, "/"),
		enabled:    true,
		debug:      debug,
	}, nil
}

// IsEnabled returns whether the mailer sends anything
func (m *LessonMailer) IsEnabled() bool {
	return m.enabled
}

// LessonFinalized sends the lesson summary to the guardian's email, when the aprendiz has one
func (m *LessonMailer) LessonFinalized(ctx context.Context, report LessonReport) error {
	if !m.enabled {
		if m.debug {
			log.Printf("[DEBUG] Skipping lesson email (mailer disabled): aula %d", report.Aula.ID)
		}
		return nil
	}

	aprendiz, err := m.aprendizes.GetByID(ctx, report.AprendizID)
	if err != nil {
		return fmt.Errorf("failed to load aprendiz %d: %w", report.AprendizID, err)
	}
	if validation.ValidateEmail(aprendiz.ResponsavelEmail) != nil {
		log.Printf("Skipping lesson email for aula %d: aprendiz %d has no valid guardian email", report.Aula.ID, aprendiz.ID)
		return nil
	}

	subject, htmlBody, textBody := m.renderLesson(aprendiz, report)
	return m.sendEmail(ctx, aprendiz.ResponsavelEmail, subject, htmlBody, textBody)
}

func (m *LessonMailer) renderLesson(aprendiz *models.Aprendiz, report LessonReport) (subject, htmlBody, textBody string) {
	data := report.Aula.DataAula.Format("02/01/2006")
	subject = fmt.Sprintf("Resumo da aula de %s em %s", aprendiz.Nome, data)
	link := fmt.Sprintf("%s/aulas/%d", m.appBaseURL, report.Aula.ID)

	saudacao := "Olá"
	if aprendiz.ResponsavelNome != "" {
		saudacao = "Olá, " + aprendiz.ResponsavelNome
	}

	var linhas strings.Builder
	for _, c := range models.Completudes {
		if n := report.Estatisticas.CompletenessDistribution[c]; n > 0 {
			fmt.Fprintf(&linhas, "- %s: %d\n", c, n)
		}
	}

	textBody = fmt.Sprintf(`%s,

A aula de %s em %s foi registrada.

Atividades: %d
Tentativas com pontuação: %d
Pontuação média por atividade: %.1f
Intercorrências registradas: %d

Completude:
%s
Detalhes: %s

---
Este é um e-mail automático do Protocolo TEA. Não responda.
`, saudacao, aprendiz.Nome, data, report.Atividades, report.Estatisticas.TotalAttempts,
		report.Estatisticas.AverageScore, report.Intercorrencias, linhas.String(), link)

	htmlBody = fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<p>%s,</p>
	<p>A aula de <strong>%s</strong> em %s foi registrada.</p>
	<ul>
		<li>Atividades: %d</li>
		<li>Tentativas com pontuação: %d</li>
		<li>Pontuação média por atividade: %.1f</li>
		<li>Intercorrências registradas: %d</li>
	</ul>
	<pre>%s</pre>
	<p><a href="%s">Ver detalhes da aula</a></p>
	<p style="font-size: 12px; color: #666;">Este é um e-mail automático do Protocolo TEA. Não responda.</p>
</body>
</html>
`, html.EscapeString(saudacao), html.EscapeString(aprendiz.Nome), data, report.Atividades,
		report.Estatisticas.TotalAttempts, report.Estatisticas.AverageScore, report.Intercorrencias,
		html.EscapeString(linhas.String()), link)

	return subject, htmlBody, textBody
}

func (m *LessonMailer) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := m.fromEmail
	if m.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", m.fromName, m.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(htmlBody), Charset: aws.String("UTF-8")},
					Text: &types.Content{Data: aws.String(textBody), Charset: aws.String("UTF-8")},
				},
			},
		},
	}

	result, err := m.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}
	if m.debug && result.MessageId != nil {
		log.Printf("[DEBUG] SES message ID: %s", *result.MessageId)
	}

	log.Printf("Email sent successfully: to=%s, subject=%s", toEmail, subject)
	return nil
}
