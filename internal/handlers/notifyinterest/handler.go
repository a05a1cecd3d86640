// internal/handlers/notifyinterest/handler.go
package notifyinterest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"sponsornest/internal/common/errors"
	"sponsornest/internal/common/logger"
	"sponsornest/internal/common/mail"
	"sponsornest/internal/common/metrics"
	"sponsornest/internal/common/validation"
	"sponsornest/internal/models"
	"sponsornest/internal/store"
)

const OperationName = "notify-interest"

// NotificationAppender appends notification documents.
type NotificationAppender interface {
	Append(ctx context.Context, collection string, fields map[string]any) (string, error)
}

type Handler struct {
	config    *Config
	mailer    mail.Mailer
	store     NotificationAppender
	responder *errors.ErrorResponder
	logger    logger.Logger
}

func NewHandler(config *Config, mailer mail.Mailer, notifications NotificationAppender, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		mailer:    mailer,
		store:     notifications,
		responder: errors.NewErrorResponder(log),
		logger:    log.WithFields(map[string]interface{}{"operation": OperationName}),
	}
}

func (h *Handler) Handle(c *gin.Context) {
	timer := prometheus.NewTimer(metrics.OperationDuration.WithLabelValues(OperationName))
	defer timer.ObserveDuration()

	input, err := decodeInput(c)
	if err != nil {
		h.responder.Respond(c, err)
		return
	}

	output, err := h.execute(c.Request.Context(), input)
	if err != nil {
		h.responder.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, output)
}

func decodeInput(c *gin.Context) (*Input, error) {
	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid JSON body: %v", err))
	}

	if result := validation.ValidateInput(raw, GetInputSchema()); !result.Valid {
		parts := make([]string, 0, len(result.Errors))
		for _, e := range result.Errors {
			parts = append(parts, fmt.Sprintf("%s: %s", e.Field, e.Message))
		}
		return nil, errors.NewValidationError(strings.Join(parts, "; "))
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	var input Input
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, errors.NewValidationError(fmt.Sprintf("malformed input: %v", err))
	}
	return &input, nil
}

/// execute runs the point-to-point path as a unit: validation, notification
// write, then email. Any failure aborts the whole operation.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, errors.NewValidationError("input cannot be nil")
	}

	if input.UserEmail == "" || input.UserID == "" || input.EventName == "" || input.ProviderName == "" {
		return nil, errors.NewValidationError("userEmail, userId, eventName and providerName are required")
	}

	userType := strings.ToLower(strings.TrimSpace(input.UserType))
	if userType == "" {
		userType = models.RequesterSeeker
	}
	if userType != models.RequesterSeeker && userType != models.RequesterEntity {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid user type: %s", input.UserType))
	}
	if !mail.IsValidAddress(input.UserEmail) {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid user email: %s", input.UserEmail))
	}

	notification := models.Notification{
		Type:         models.NotificationSponsorshipInterest,
		Message:      fmt.Sprintf("%s is interested in sponsoring your event: %s", input.ProviderName, input.EventName),
		ProviderName: input.ProviderName,
		EventName:    input.EventName,
		Read:         false,
	}
	fields := notification.Fields()
	fields["timestamp"] = store.ServerTimestamp

	collection := models.ResponseCollection(userType) + "/" + input.UserID + "/notifications"
	notificationID, err := h.store.Append(ctx, collection, fields)
	if err != nil {
		return nil, err
	}

	sendCtx, cancel := context.WithTimeout(ctx, h.config.MailTimeout)
	defer cancel()

	msg := mail.Message{
		From:     h.config.FromEmail,
		To:       input.UserEmail,
		Subject:  fmt.Sprintf("New Sponsorship Interest: %s", input.EventName),
		HTMLBody: buildInterestBody(input.ProviderName, input.EventName),
	}
	if err := h.mailer.Send(sendCtx, msg); err != nil {
		metrics.EmailsSentTotal.WithLabelValues(OperationName, "failed").Inc()
		return nil, errors.NewMailSendError(input.UserEmail, err)
	}
	metrics.EmailsSentTotal.WithLabelValues(OperationName, "sent").Inc()

	h.logger.Info("interest notification delivered", map[string]interface{}{
		"userId":         input.UserID,
		"userType":       userType,
		"notificationId": notificationID,
	})

	return &Output{
		Success:        true,
		Message:        fmt.Sprintf("Successfully notified %s", userType),
		NotificationID: notificationID,
	}, nil
}

func buildInterestBody(providerName, eventName string) string {
	var b strings.Builder

	b.WriteString("<html><body>")
	b.WriteString("<h2>Sponsorship Interest Notification</h2>")
	b.WriteString("<p>Hello,</p>")
	b.WriteString(fmt.Sprintf(
		"<p>We're excited to inform you that <strong>%s</strong> has expressed interest in sponsoring your event:</p>",
		providerName))
	b.WriteString("<h3>Event Details</h3><ul>")
	b.WriteString(fmt.Sprintf("<li><strong>Event Name:</strong> %s</li>", eventName))
	b.WriteString("</ul>")
	b.WriteString("<p>Please log in to your SponsorNest dashboard to view more details and respond to this opportunity.</p>")
	b.WriteString("<p>Best regards,<br>The SponsorNest Team</p>")
	b.WriteString("</body></html>")

	return b.String()
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
