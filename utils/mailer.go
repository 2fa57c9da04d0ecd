package utils

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// Mailer sends transactional mail through SES.
type Mailer struct {
	client *ses.Client
	sender string
}

func NewMailer(ctx context.Context, region, sender string) (*Mailer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("aws config load failed: %w", err)
	}
	return &Mailer{client: ses.NewFromConfig(cfg), sender: sender}, nil
}

// generic SES sender
func (m *Mailer) sendEmail(ctx context.Context, to, subject, body string) error {
	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(subject),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data: aws.String(body),
				},
			},
		},
		Source: aws.String(m.sender),
	}

	if _, err := m.client.SendEmail(ctx, input); err != nil {
		log.Printf("SES send error: %v", err)
		return fmt.Errorf("email send failed: %w", err)
	}
	return nil
}

// SendVerificationEmail delivers the signup OTP.
func (m *Mailer) SendVerificationEmail(ctx context.Context, to, otp string) error {
	return m.sendEmail(ctx, to, "Verify your account", fmt.Sprintf("Your OTP is %s", otp))
}

// SendResetEmail delivers the password reset OTP.
func (m *Mailer) SendResetEmail(ctx context.Context, to, otp string) error {
	return m.sendEmail(ctx, to, "Password Reset OTP", fmt.Sprintf("Your OTP is %s", otp))
}
