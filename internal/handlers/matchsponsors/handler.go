// internal/handlers/matchsponsors/handler.go
package matchsponsors

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
	"sponsornest/internal/common/metrics"
	"sponsornest/internal/common/validation"
	"sponsornest/internal/matching"
	"sponsornest/internal/models"
	"sponsornest/internal/store"
)

const OperationName = "match-sponsors"

// ProviderSource supplies the provider population snapshot.
type ProviderSource interface {
	Snapshot(ctx context.Context) ([]models.Provider, error)
}

// RequestStore is the slice of the document store the fan-out writer needs.
type RequestStore interface {
	RunTransaction(ctx context.Context, fn func(store.Writer) error) error
	FindByField(ctx context.Context, collection, field, value string) ([]store.Document, error)
}

type Handler struct {
	config     *Config
	providers  ProviderSource
	store      RequestStore
	normalizer *matching.Normalizer
	responder  *errors.ErrorResponder
	logger     logger.Logger
}

func NewHandler(config *Config, providers ProviderSource, requests RequestStore, log logger.Logger) *Handler {
	return &Handler{
		config:     config,
		providers:  providers,
		store:      requests,
		normalizer: matching.NewNormalizer(config.GenericTerms),
		responder:  errors.NewErrorResponder(log),
		logger:     log.WithFields(map[string]interface{}{"operation": OperationName}),
	}
}

func (h *Handler) Handle(c *gin.Context) {
	timer := prometheus.NewTimer(metrics.OperationDuration.WithLabelValues(OperationName))
	defer timer.ObserveDuration()

	input, err := decodeInput(c)
	if err != nil {
		metrics.MatchRequestsTotal.WithLabelValues("validation_failed").Inc()
		h.responder.Respond(c, err)
		return
	}

	output, err := h.execute(c.Request.Context(), input)
	if err != nil {
		metrics.MatchRequestsTotal.WithLabelValues("error").Inc()
		h.responder.Respond(c, err)
		return
	}

	metrics.MatchRequestsTotal.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, output)
}

func decodeInput(c *gin.Context) (*Input, error) {
	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid JSON body: %v", err))
	}

	if result := validation.ValidateInput(raw, GetInputSchema()); !result.Valid {
		return nil, errors.NewValidationError(formatValidationErrors(result.Errors))
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

func formatValidationErrors(errs []validation.ValidationError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return strings.Join(parts, "; ")
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, errors.NewValidationError("input cannot be nil")
	}

	eventCriteria := h.normalizer.NormalizeEventCriteria(input.EventCriteria)
	h.logger.Debug("normalized event criteria", map[string]interface{}{
		"eventId":  input.EventID,
		"criteria": eventCriteria,
	})

	providers, err := h.providers.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]models.SponsorMatch, 0)
	for _, provider := range providers {
		criteria := matching.Intersect(eventCriteria, h.normalizer.Normalize(provider.SelectedEventCriteria))
		if len(criteria) == 0 {
			continue
		}

		// A failed write is isolated: the provider still appears in the
		// match list, since the match itself is a read-side computation.
		if err := h.fanOut(ctx, input, provider, criteria); err != nil {
			metrics.FanoutWritesTotal.WithLabelValues(metrics.FanoutFailed).Inc()
			h.logger.WithError(err).Error("fan-out write failed", map[string]interface{}{
				"providerId": provider.ID,
				"eventId":    input.EventID,
			})
		}

		matched = append(matched, models.SponsorMatch{
			BusinessName:      provider.BusinessName,
			BusinessType:      provider.BusinessType,
			Email:             provider.Email,
			SponsorshipAmount: provider.SponsorshipAmount,
			EventCount:        provider.EventCount,
			MatchedCriteria:   criteria,
			MatchStrength:     len(criteria),
			ProviderID:        provider.ID,
		})
		metrics.SponsorMatchesTotal.WithLabelValues("exact").Inc()
	}

	// Fallback tier only when nothing matched exactly; these candidates are
	// informational and never produce fan-out writes.
	if len(matched) == 0 {
		fallback := matching.SelectFallback(providers)
		for range fallback {
			metrics.SponsorMatchesTotal.WithLabelValues("fallback").Inc()
		}
		matched = append(matched, fallback...)
	}

	h.logger.Info("match computed", map[string]interface{}{
		"eventId":      input.EventID,
		"providerPool": len(providers),
		"matches":      len(matched),
	})

	return &Output{
		SponsorMatches: matched,
		Message:        fmt.Sprintf("Found %d potential sponsors", len(matched)),
	}, nil
}

// fanOut writes the SponsorshipRequest and its mirrored SponsorshipResponse
// in a single transaction. A missing requester id skips the mirror write.
func (h *Handler) fanOut(ctx context.Context, input *Input, provider models.Provider, criteria []string) error {
	requestColl := "providers/" + provider.ID + "/sponsorshipRequests"

	if h.config.DedupeWrites && input.EventID != "" {
		existing, err := h.store.FindByField(ctx, requestColl, "eventId", input.EventID)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			metrics.FanoutWritesTotal.WithLabelValues(metrics.FanoutDeduped).Inc()
			h.logger.Debug("request already exists, skipping write", map[string]interface{}{
				"providerId": provider.ID,
				"eventId":    input.EventID,
			})
			return nil
		}
	}

	userType := input.UserType
	if userType == "" {
		userType = models.RequesterSeeker
	}

	request := models.SponsorshipRequest{
		EventID:            input.EventID,
		EventName:          input.EventData.EventName,
		EventDate:          input.EventData.EventDate,
		EventLocation:      input.EventData.Location,
		RequestingUserID:   input.UserID,
		RequestingUserType: userType,
		Status:             models.RequestStatusPending,
		MatchedCriteria:    criteria,
		ExpectedCrowd:      input.EventData.ExpectedCrowd,
		EventDescription:   input.EventData.Description,
		ProposalURL:        input.EventData.ProposalURL,
		PosterURL:          input.EventData.PosterURL,
	}

	err := h.store.RunTransaction(ctx, func(w store.Writer) error {
		fields := request.Fields()
		fields["createdAt"] = store.ServerTimestamp
		requestID, err := w.Append(requestColl, fields)
		if err != nil {
			return err
		}

		if input.UserID == "" {
			h.logger.Warn("no requester id, skipping mirrored response", map[string]interface{}{
				"providerId": provider.ID,
			})
			return nil
		}

		response := models.SponsorshipResponse{
			ProviderID:           provider.ID,
			ProviderName:         provider.BusinessName,
			EventID:              input.EventID,
			EventName:            input.EventData.EventName,
			Status:               models.RequestStatusPending,
			SponsorshipRequestID: requestID,
		}
		respFields := response.Fields()
		respFields["requestSentAt"] = store.ServerTimestamp

		responseColl := models.ResponseCollection(input.UserType) + "/" + input.UserID + "/sponsorshipResponses"
		_, err = w.Append(responseColl, respFields)
		return err
	})
	if err != nil {
		return err
	}

	metrics.FanoutWritesTotal.WithLabelValues(metrics.FanoutCreated).Inc()
	return nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
