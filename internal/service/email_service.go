package service

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"mime"
	"net/mail"
	"net/smtp"
	"net/url"
	"strings"

	"github.com/laptopstore-next/internal/config"
	"github.com/laptopstore-next/internal/constants"
	"github.com/laptopstore-next/internal/models"
)

// EmailService 邮件发送服务
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// SetConfig 更新运行时邮件配置
func (s *EmailService) SetConfig(cfg *config.EmailConfig) {
	if cfg == nil {
		return
	}
	s.cfg = cfg
}

// BuildVerifyLink 构建验证链接（前端路由会带 token 调回后端）
func (s *EmailService) BuildVerifyLink(token, purpose string) string {
	base := ""
	if s.cfg != nil {
		base = strings.TrimRight(strings.TrimSpace(s.cfg.BaseURL), "/")
	}
	path := "/verify-email"
	if purpose == constants.VerifyPurposeSetupAccount {
		path = "/setup-account"
	}
	return fmt.Sprintf("%s%s?token=%s", base, path, url.QueryEscape(token))
}

// SendVerificationEmail 发送邮箱验证 / 账号激活邮件
func (s *EmailService) SendVerificationEmail(toEmail, token, purpose, locale string) error {
	link := s.BuildVerifyLink(token, purpose)
	subject, body := buildVerificationContent(link, purpose, locale)
	return s.sendTextEmail(toEmail, subject, body)
}

// OrderStatusEmailInput 订单状态邮件输入
type OrderStatusEmailInput struct {
	OrderNo      string
	Status       string
	Total        models.Money
	DeliveryFrom string
	DeliveryTo   string
}

// SendOrderStatusEmail 发送订单状态通知
func (s *EmailService) SendOrderStatusEmail(toEmail string, input OrderStatusEmailInput, locale string) error {
	subject, body := buildOrderStatusContent(input, locale)
	return s.sendTextEmail(toEmail, subject, body)
}

// SendCustomEmail 发送测试邮件或自定义邮件
func (s *EmailService) SendCustomEmail(toEmail, subject, body string) error {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = "LaptopStore SMTP test"
	}
	body = strings.TrimSpace(body)
	if body == "" {
		body = "This is a test email from LaptopStore. Your SMTP configuration works."
	}
	return s.sendTextEmail(toEmail, subject, body)
}

func (s *EmailService) sendTextEmail(toEmail, subject, body string) error {
	if s.cfg == nil || !s.cfg.Enabled {
		return ErrEmailServiceDisabled
	}
	if s.cfg.Host == "" || s.cfg.Port == 0 || s.cfg.From == "" {
		return ErrEmailServiceNotConfigured
	}
	if _, err := mail.ParseAddress(toEmail); err != nil {
		return ErrInvalidEmail
	}

	from := buildFromAddress(s.cfg.From, s.cfg.FromName)
	msg := buildEmailMessage(from, toEmail, subject, body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" || s.cfg.Password != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	if s.cfg.UseSSL {
		return normalizeEmailSendError(sendMailWithSSL(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg)))
	}
	if s.cfg.UseTLS {
		return normalizeEmailSendError(sendMailWithStartTLS(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg)))
	}
	return normalizeEmailSendError(sendMailPlain(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg)))
}

func buildVerificationContent(link, purpose, locale string) (string, string) {
	loc := normalizeLocale(locale)
	if purpose == constants.VerifyPurposeSetupAccount {
		if loc == constants.LocaleEn {
			subject := "Set up your LaptopStore account"
			body := fmt.Sprintf("An account has been created for you on LaptopStore.\r\n\r\nOpen the link below to choose a password and activate the account:\r\n%s\r\n\r\nIf you did not expect this email, you can ignore it.", link)
			return subject, body
		}
		subject := "Thiết lập tài khoản LaptopStore của bạn"
		body := fmt.Sprintf("Một tài khoản đã được tạo cho bạn trên LaptopStore.\r\n\r\nMở liên kết dưới đây để đặt mật khẩu và kích hoạt tài khoản:\r\n%s\r\n\r\nNếu bạn không yêu cầu email này, vui lòng bỏ qua.", link)
		return subject, body
	}
	if loc == constants.LocaleEn {
		subject := "Verify your LaptopStore email"
		body := fmt.Sprintf("Thank you for signing up at LaptopStore.\r\n\r\nOpen the link below to verify your email address:\r\n%s\r\n\r\nThe link expires soon, so please verify promptly.", link)
		return subject, body
	}
	subject := "Xác thực email LaptopStore của bạn"
	body := fmt.Sprintf("Cảm ơn bạn đã đăng ký tại LaptopStore.\r\n\r\nMở liên kết dưới đây để xác thực địa chỉ email:\r\n%s\r\n\r\nLiên kết sẽ sớm hết hạn, vui lòng xác thực ngay.", link)
	return subject, body
}

func buildOrderStatusContent(input OrderStatusEmailInput, locale string) (string, string) {
	loc := normalizeLocale(locale)
	if loc == constants.LocaleEn {
		subject := fmt.Sprintf("Order %s is now %s", input.OrderNo, englishStatusLabel(input.Status))
		var buf bytes.Buffer
		buf.WriteString(fmt.Sprintf("Your order %s has been updated to \"%s\".\r\n", input.OrderNo, englishStatusLabel(input.Status)))
		buf.WriteString(fmt.Sprintf("Order total: %s VND\r\n", input.Total.String()))
		if input.DeliveryFrom != "" && input.DeliveryTo != "" {
			buf.WriteString(fmt.Sprintf("Estimated delivery: %s to %s\r\n", input.DeliveryFrom, input.DeliveryTo))
		}
		buf.WriteString("\r\nThank you for shopping at LaptopStore.")
		return subject, buf.String()
	}
	subject := fmt.Sprintf("Đơn hàng %s: %s", input.OrderNo, vietnameseStatusLabel(input.Status))
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("Đơn hàng %s của bạn đã chuyển sang trạng thái \"%s\".\r\n", input.OrderNo, vietnameseStatusLabel(input.Status)))
	buf.WriteString(fmt.Sprintf("Tổng tiền: %s VND\r\n", input.Total.String()))
	if input.DeliveryFrom != "" && input.DeliveryTo != "" {
		buf.WriteString(fmt.Sprintf("Dự kiến giao hàng: %s đến %s\r\n", input.DeliveryFrom, input.DeliveryTo))
	}
	buf.WriteString("\r\nCảm ơn bạn đã mua sắm tại LaptopStore.")
	return subject, buf.String()
}

func vietnameseStatusLabel(status string) string {
	switch status {
	case constants.OrderStatusPending:
		return "Chờ xác nhận"
	case constants.OrderStatusProcessing:
		return "Đang xử lý"
	case constants.OrderStatusShipping:
		return "Đang giao hàng"
	case constants.OrderStatusDelivered:
		return "Đã giao hàng"
	case constants.OrderStatusCancelled:
		return "Đã hủy"
	default:
		return status
	}
}

func englishStatusLabel(status string) string {
	switch status {
	case constants.OrderStatusPending:
		return "Pending"
	case constants.OrderStatusProcessing:
		return "Processing"
	case constants.OrderStatusShipping:
		return "Shipping"
	case constants.OrderStatusDelivered:
		return "Delivered"
	case constants.OrderStatusCancelled:
		return "Cancelled"
	default:
		return status
	}
}

func normalizeLocale(locale string) string {
	normalized := strings.ToLower(strings.TrimSpace(locale))
	for _, supported := range constants.SupportedLocales {
		if normalized == supported {
			return supported
		}
	}
	return constants.LocaleVi
}

func buildFromAddress(from, name string) string {
	if strings.TrimSpace(name) == "" {
		return from
	}
	encoded := mime.QEncoding.Encode("UTF-8", name)
	return (&mail.Address{Name: encoded, Address: from}).String()
}

func buildEmailMessage(from, to, subject, body string) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("From: %s\r\n", from))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", to))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject)))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	return buf.String()
}

func sendMailWithSSL(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: host})
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendMailWithStartTLS(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
		return err
	}

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendMailPlain(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendSMTPData(client *smtp.Client, from string, to []string, msg []byte) error {
	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func normalizeEmailSendError(err error) error {
	if err == nil {
		return nil
	}
	if isEmailRecipientRejected(err) {
		return ErrEmailRecipientRejected
	}
	return err
}

func isEmailRecipientRejected(err error) bool {
	if err == nil {
		return false
	}
	message := strings.ToLower(strings.TrimSpace(err.Error()))
	if message == "" {
		return false
	}
	directKeywords := []string{
		"no such recipient",
		"no such user",
		"recipient not found",
		"recipient address rejected",
		"invalid recipient",
		"user unknown",
		"unknown user",
		"unknown mailbox",
		"mailbox unavailable",
	}
	for _, keyword := range directKeywords {
		if strings.Contains(message, keyword) {
			return true
		}
	}
	if strings.Contains(message, "550") {
		hints := []string{"recipient", "user", "mailbox", "address", "rcpt"}
		for _, hint := range hints {
			if strings.Contains(message, hint) {
				return true
			}
		}
	}
	return false
}
