// internal/handlers/createevent/handler_test.go
package createevent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stderrors "sponsornest/internal/common/errors"
	"sponsornest/internal/common/logger"
	"sponsornest/internal/store"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{Timeout: 10 * time.Second}
}

func createTestLogger(t *testing.T) logger.Logger {
	return logger.NewTestLogger(t)
}

func createValidInput() *Input {
	return &Input{
		UserID:             "user-1",
		UserType:           "seeker",
		EventName:          "Charity Gala",
		EventDate:          "2025-06-01",
		LocationOfTheEvent: "Chennai",
		ExpectedCrowd:      "500",
		Description:        "Annual fundraiser",
		EventCriteria:      []string{"Charity Event"},
		ProposalURL:        "https://files.example.com/proposal.pdf",
		PosterURL:          "https://files.example.com/poster.png",
	}
}

type fakeAppender struct {
	collections []string
	fields      []map[string]any
	err         error
}

func (f *fakeAppender) Append(ctx context.Context, collection string, fields map[string]any) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.collections = append(f.collections, collection)
	f.fields = append(f.fields, fields)
	return "ev-1", nil
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	appender := &fakeAppender{}
	handler := NewHandler(createTestConfig(), appender, createTestLogger(t))

	output, err := handler.execute(context.Background(), createValidInput())

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.True(t, output.Success)
	assert.Equal(t, "ev-1", output.EventID)
	assert.Equal(t, "https://files.example.com/proposal.pdf", output.ProposalURL)
	assert.Equal(t, "https://files.example.com/poster.png", output.PosterURL)
	assert.Equal(t, "seeker", output.UserType)

	require.Len(t, appender.collections, 1)
	assert.Equal(t, "seekers/user-1/events", appender.collections[0])

	fields := appender.fields[0]
	assert.Equal(t, "Charity Gala", fields["EventName"])
	assert.Equal(t, "2025-06-01", fields["EventDate"])
	assert.Equal(t, "Chennai", fields["locationOfTheEvent"])
	assert.Equal(t, "500", fields["expectedCrowd"])
	assert.Equal(t, []string{"Charity Event"}, fields["selectedEventCriteria"])
	assert.Equal(t, "active", fields["status"])
	assert.Equal(t, store.ServerTimestamp, fields["createdAt"])
}

func TestHandler_Execute_EntityNamespace(t *testing.T) {
	appender := &fakeAppender{}
	handler := NewHandler(createTestConfig(), appender, createTestLogger(t))

	input := createValidInput()
	input.UserType = "entity"

	output, err := handler.execute(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "entity", output.UserType)
	require.Len(t, appender.collections, 1)
	assert.Equal(t, "entities/user-1/events", appender.collections[0])
}

// ==========================
// Validation Tests
// ==========================

func TestHandler_Execute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(input *Input)
	}{
		{name: "missing user id", mutate: func(i *Input) { i.UserID = "" }},
		{name: "unknown user type", mutate: func(i *Input) { i.UserType = "provider" }},
		{name: "empty user type", mutate: func(i *Input) { i.UserType = "" }},
		{name: "missing event name", mutate: func(i *Input) { i.EventName = "" }},
		{name: "missing event date", mutate: func(i *Input) { i.EventDate = "" }},
		{name: "missing location", mutate: func(i *Input) { i.LocationOfTheEvent = "" }},
		{name: "missing expected crowd", mutate: func(i *Input) { i.ExpectedCrowd = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appender := &fakeAppender{}
			handler := NewHandler(createTestConfig(), appender, createTestLogger(t))

			input := createValidInput()
			tt.mutate(input)

			output, err := handler.execute(context.Background(), input)

			assert.Nil(t, output)
			require.Error(t, err)
			assert.True(t, stderrors.IsValidation(err))
			assert.Empty(t, appender.collections)
		})
	}
}

// ==========================
// Edge Cases
// ==========================

func TestHandler_Execute_StoreFailurePropagates(t *testing.T) {
	appender := &fakeAppender{err: errors.New("store down")}
	handler := NewHandler(createTestConfig(), appender, createTestLogger(t))

	output, err := handler.execute(context.Background(), createValidInput())

	assert.Nil(t, output)
	require.Error(t, err)
	assert.False(t, stderrors.IsValidation(err))
}

func TestHandler_Execute_NilInput(t *testing.T) {
	handler := NewHandler(createTestConfig(), &fakeAppender{}, createTestLogger(t))

	output, err := handler.execute(context.Background(), nil)

	assert.Nil(t, output)
	require.Error(t, err)
}
