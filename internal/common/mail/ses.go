// internal/common/mail/ses.go
package mail

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"sponsornest/internal/common/config"
	"sponsornest/internal/common/logger"
)

// SESService is the subset of the SES API used here, extracted for mocking.
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESMailer delivers mail through AWS SES.
type SESMailer struct {
	client SESService
	from   string
	logger logger.Logger
}

func NewSESMailer(ctx context.Context, cfg config.MailConfig, log logger.Logger) (*SESMailer, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		return nil, err
	}
	return &SESMailer{
		client: ses.NewFromConfig(awsCfg),
		from:   cfg.FromEmail,
		logger: log.WithFields(map[string]interface{}{"mailer": "ses"}),
	}, nil
}

func (m *SESMailer) Send(ctx context.Context, msg Message) error {
	from := msg.From
	if from == "" {
		from = m.from
	}

	_, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(msg.Subject)},
			Body: &types.Body{
				Html: &types.Content{Data: aws.String(msg.HTMLBody)},
			},
		},
		Source: aws.String(from),
	})
	if err != nil {
		return err
	}

	m.logger.Debug("email sent", map[string]interface{}{
		"to":      msg.To,
		"subject": msg.Subject,
	})
	return nil
}
