// internal/handlers/createevent/handler.go
package createevent

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
	"sponsornest/internal/models"
	"sponsornest/internal/store"
)

const OperationName = "create-event"

// EventAppender appends event documents.
type EventAppender interface {
	Append(ctx context.Context, collection string, fields map[string]any) (string, error)
}

type Handler struct {
	config    *Config
	store     EventAppender
	responder *errors.ErrorResponder
	logger    logger.Logger
}

func NewHandler(config *Config, events EventAppender, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		store:     events,
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
	if input.UserID == "" || (input.UserType != models.RequesterSeeker && input.UserType != models.RequesterEntity) {
		return nil, errors.NewValidationError("invalid user information")
	}
	if input.EventName == "" || input.EventDate == "" || input.LocationOfTheEvent == "" || input.ExpectedCrowd == "" {
		return nil, errors.NewValidationError("EventName, EventDate, locationOfTheEvent and expectedCrowd are required")
	}

	fields := map[string]any{
		"EventName":             input.EventName,
		"EventDate":             input.EventDate,
		"locationOfTheEvent":    input.LocationOfTheEvent,
		"expectedCrowd":         input.ExpectedCrowd,
		"description":           input.Description,
		"selectedEventCriteria": input.EventCriteria,
		"proposalUrl":           input.ProposalURL,
		"posterUrl":             input.PosterURL,
		"status":                models.EventStatusActive,
		"createdAt":             store.ServerTimestamp,
	}

	collection := models.EventsCollection(input.UserType, input.UserID)
	eventID, err := h.store.Append(ctx, collection, fields)
	if err != nil {
		return nil, err
	}

	h.logger.Info("event created", map[string]interface{}{
		"eventId":  eventID,
		"userId":   input.UserID,
		"userType": input.UserType,
	})

	return &Output{
		Success:     true,
		EventID:     eventID,
		ProposalURL: input.ProposalURL,
		PosterURL:   input.PosterURL,
		UserType:    input.UserType,
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
