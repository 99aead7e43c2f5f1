// Package mail はSMTPによるメール送信を提供します。
package mail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gopkg.in/gomail.v2"

	"lodging_backend/internal/platform/config"
)

const verificationSubject = "メール認証"

// ErrNotConfigured はSMTP設定が不足していて送信できないことを表します。
var ErrNotConfigured = errors.New("mail: smtp config missing")

// sendFunc は組み立てたメッセージを送信します。テストで差し替えます。
type sendFunc func(m *gomail.Message) error

// Mailer は会員登録の認証メールを送信します。
type Mailer struct {
	cfg  config.SMTPConfig
	send sendFunc
}

// NewMailer はSMTP設定からMailerを生成します。
func NewMailer(cfg config.SMTPConfig) *Mailer {
	m := &Mailer{cfg: cfg}
	m.send = func(msg *gomail.Message) error {
		d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
		return d.DialAndSend(msg)
	}
	return m
}

// Configured は送信に必要な設定が揃っているかを返します。
func (m *Mailer) Configured() bool {
	return m.cfg.Host != "" && m.cfg.From != ""
}

// SendVerificationMail は認証リンクを記載したメールを送信します。
func (m *Mailer) SendVerificationMail(ctx context.Context, to, link string) error {
	if !m.Configured() {
		return ErrNotConfigured
	}
	if strings.TrimSpace(to) == "" {
		return errors.New("mail: empty recipient")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", verificationSubject)
	msg.SetBody("text/plain", verificationBody(link))

	if err := m.send(msg); err != nil {
		return fmt.Errorf("send verification mail: %w", err)
	}

	slog.Info("verification mail sent", "to", to)
	return nil
}

func verificationBody(link string) string {
	return "以下のリンクをクリックして会員登録を完了してください。\n" + link
}
