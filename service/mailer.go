package service

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/leadflow/leadflow_end/config"
	"github.com/leadflow/leadflow_end/models"
	"github.com/leadflow/leadflow_end/utils"

	"gopkg.in/gomail.v2"
)

// Mailer 跟进邮件发送器
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailer 根据SMTP配置创建发送器, 未配置SMTP主机时返回nil
func NewMailer(cfg *config.Config) *Mailer {
	if cfg.SMTPHost == "" {
		utils.Logger.Warn().Msg("未配置SMTP, 邮件发送功能不可用")
		return nil
	}

	return &Mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:   cfg.SMTPFrom,
	}
}

// templateData 模板渲染可用的字段
type templateData struct {
	CompanyName       string
	ContactPersonName string
	ContactEmail      string
	Website           string
	AssignedIntern    string
}

// RenderTemplate 用线索字段渲染邮件模板
// 模板使用 {{.CompanyName}} 形式的占位符
func RenderTemplate(text string, lead models.Lead) (string, error) {
	tmpl, err := template.New("email").Parse(text)
	if err != nil {
		return "", fmt.Errorf("解析邮件模板失败: %w", err)
	}

	data := templateData{
		CompanyName:       lead.CompanyName,
		ContactPersonName: lead.ContactPersonName,
		ContactEmail:      lead.ContactEmail,
		Website:           lead.Website,
		AssignedIntern:    lead.AssignedIntern,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("渲染邮件模板失败: %w", err)
	}

	return buf.String(), nil
}

// Send 发送邮件
func (m *Mailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}

	utils.Logger.Info().Str("to", to).Str("subject", subject).Msg("邮件发送成功")
	return nil
}
