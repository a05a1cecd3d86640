// internal/handlers/notifysponsors/handler.go
package notifysponsors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

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

const OperationName = "notify-sponsors"

// RequestAppender appends sponsorship request documents.
type RequestAppender interface {
	Append(ctx context.Context, collection string, fields map[string]any) (string, error)
}

type Handler struct {
	config    *Config
	mailer    mail.Mailer
	store     RequestAppender
	responder *errors.ErrorResponder
	logger    logger.Logger
}

func NewHandler(config *Config, mailer mail.Mailer, requests RequestAppender, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		mailer:    mailer,
		store:     requests,
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

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, errors.NewValidationError("input cannot be nil")
	}

	if len(input.Sponsors) == 0 {
		return &Output{Message: "No sponsors to notify - no matches found"}, nil
	}

	concurrency := h.config.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	var (
		mu      sync.Mutex
		sent    int
		created int
		failed  int
	)
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for _, sponsor := range input.Sponsors {
		// Fallback-only entries carry no matched criteria and are never
		// emailed.
		if len(sponsor.MatchedCriteria) == 0 {
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(sponsor models.SponsorMatch) {
			defer wg.Done()
			defer func() { <-sem }()

			wasSent, wasCreated, err := h.notifyOne(ctx, input, sponsor)

			mu.Lock()
			if wasSent {
				sent++
			}
			if wasCreated {
				created++
			}
			if err != nil {
				failed++
			}
			mu.Unlock()

			if err != nil {
				h.logger.WithError(err).Error("sponsor notification failed", map[string]interface{}{
					"providerId": sponsor.ProviderID,
					"email":      sponsor.Email,
				})
			}
		}(sponsor)
	}
	wg.Wait()

	message := "No emails sent - no sponsors with matching criteria"
	if sent > 0 {
		message = fmt.Sprintf("Emails sent to %d sponsors", sent)
	}

	h.logger.Info("sponsor broadcast finished", map[string]interface{}{
		"sent":    sent,
		"created": created,
		"failed":  failed,
	})

	return &Output{
		Message:         message,
		SentCount:       sent,
		RequestsCreated: created,
		FailedCount:     failed,
	}, nil
}

// notifyOne sends one sponsor email and, when delivery succeeds, appends
// the matching SponsorshipRequest. Failures are reported to the caller for
// aggregation, never propagated as operation errors.
func (h *Handler) notifyOne(ctx context.Context, input *Input, sponsor models.SponsorMatch) (wasSent, wasCreated bool, err error) {
	sendCtx, cancel := context.WithTimeout(ctx, h.config.MailTimeout)
	defer cancel()

	msg := mail.Message{
		From:     h.config.FromEmail,
		To:       sponsor.Email,
		Subject:  fmt.Sprintf("Sponsorship Opportunity: %s", input.Event.EventName),
		HTMLBody: buildSponsorBody(input.Event, sponsor),
	}
	if err := h.mailer.Send(sendCtx, msg); err != nil {
		metrics.EmailsSentTotal.WithLabelValues(OperationName, "failed").Inc()
		return false, false, errors.NewMailSendError(sponsor.Email, err)
	}
	metrics.EmailsSentTotal.WithLabelValues(OperationName, "sent").Inc()

	userType := input.UserType
	if userType == "" {
		userType = models.RequesterSeeker
	}
	request := models.SponsorshipRequest{
		EventID:            input.Event.EventID,
		EventName:          input.Event.EventName,
		EventDate:          input.Event.EventDate,
		EventLocation:      input.Event.Location,
		RequestingUserID:   input.UserID,
		RequestingUserType: userType,
		Status:             models.RequestStatusPending,
		MatchedCriteria:    sponsor.MatchedCriteria,
		ExpectedCrowd:      input.Event.ExpectedCrowd,
		EventDescription:   input.Event.Description,
		ProposalURL:        input.Event.ProposalURL,
		PosterURL:          input.Event.PosterURL,
	}
	fields := request.Fields()
	fields["createdAt"] = store.ServerTimestamp

	collection := "providers/" + sponsor.ProviderID + "/sponsorshipRequests"
	if _, err := h.store.Append(ctx, collection, fields); err != nil {
		return true, false, err
	}
	return true, true, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
