package notifications

import (
	"context"
	"fmt"
	"log"

	"github.com/mrz1836/postmark"

	"github.com/AhmadAkmal83/jwt-sandbox/domain"
)

// Config holds the Postmark credentials and the link base URLs embedded in
// outbound mail.
type Config struct {
	ServerToken     string
	AccountToken    string
	SenderAddress   string
	VerificationURL string
	ResetURL        string
}

// PostmarkServiceImpl implements domain.MailService using Postmark's
// transactional API. Send failures are logged and swallowed: mail dispatch
// is fire-and-forget and must never fail the calling request.
type PostmarkServiceImpl struct {
	client *postmark.Client
	config Config
}

// NewPostmarkService creates a new Postmark-backed mail service. When no
// server token is configured the service logs messages instead of sending,
// which keeps local development working without credentials.
func NewPostmarkService(cfg Config) domain.MailService {
	var client *postmark.Client
	if cfg.ServerToken != "" {
		client = postmark.NewClient(cfg.ServerToken, cfg.AccountToken)
	}
	return &PostmarkServiceImpl{client: client, config: cfg}
}

// SendVerificationEmail implements domain.MailService
func (s *PostmarkServiceImpl) SendVerificationEmail(ctx context.Context, user *domain.User) error {
	if user.VerificationToken == nil {
		log.Printf("MAIL_SKIPPED: kind=verification email=%s reason=no_token", user.Email)
		return nil
	}

	link := fmt.Sprintf("%s?token=%s", s.config.VerificationURL, *user.VerificationToken)
	body := fmt.Sprintf(
		"Hello,\n\nThank you for registering. Please click the link below to verify your email address:\n%s\n\nIf you did not register, please ignore this email.",
		link,
	)

	return s.send(ctx, user.Email, "Verify Your Email Address", body, "email-verification")
}

// SendPasswordResetEmail implements domain.MailService
func (s *PostmarkServiceImpl) SendPasswordResetEmail(ctx context.Context, user *domain.User) error {
	if user.PasswordResetToken == nil {
		log.Printf("MAIL_SKIPPED: kind=password_reset email=%s reason=no_token", user.Email)
		return nil
	}

	link := fmt.Sprintf("%s?token=%s", s.config.ResetURL, *user.PasswordResetToken)
	body := fmt.Sprintf(
		"Hello,\n\nA password reset was requested for your account. Please click the link below to reset your password:\n%s\n\nThis link will expire in 1 hour.\n\nIf you did not request a password reset, please ignore this email.",
		link,
	)

	return s.send(ctx, user.Email, "Password Reset Request", body, "password-reset")
}

func (s *PostmarkServiceImpl) send(ctx context.Context, to, subject, body, tag string) error {
	if s.client == nil {
		log.Printf("[MOCK MAIL] To: %s, Subject: %s\n%s", to, subject, body)
		return nil
	}

	resp, err := s.client.SendEmail(ctx, postmark.Email{
		From:     s.config.SenderAddress,
		To:       to,
		Subject:  subject,
		Tag:      tag,
		TextBody: body,
	})
	if err != nil {
		log.Printf("MAIL_SEND_FAILED: to=%s subject=%q error=%v", to, subject, err)
		return nil
	}
	if resp.ErrorCode > 0 {
		log.Printf("MAIL_SEND_FAILED: to=%s subject=%q postmark_error=%d message=%s", to, subject, resp.ErrorCode, resp.Message)
		return nil
	}

	log.Printf("MAIL_SENT: to=%s subject=%q", to, subject)
	return nil
}
