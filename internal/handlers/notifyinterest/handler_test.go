// internal/handlers/notifyinterest/handler_test.go
package notifyinterest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stderrors "sponsornest/internal/common/errors"
	"sponsornest/internal/common/logger"
	"sponsornest/internal/common/mail"
	"sponsornest/internal/store"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		FromEmail:   "noreply@sponsornest.com",
		MailTimeout: 5 * time.Second,
	}
}

func createTestLogger(t *testing.T) logger.Logger {
	return logger.NewTestLogger(t)
}

func createValidInput() *Input {
	return &Input{
		UserEmail:    "seeker@example.com",
		UserID:       "user-1",
		EventName:    "Charity Gala",
		ProviderName: "HelpingHands",
		UserType:     "seeker",
	}
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []mail.Message
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, msg mail.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
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
	return "notif-1", nil
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	mailer := &fakeMailer{}
	appender := &fakeAppender{}
	handler := NewHandler(createTestConfig(), mailer, appender, createTestLogger(t))

	output, err := handler.execute(context.Background(), createValidInput())

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.True(t, output.Success)
	assert.Equal(t, "Successfully notified seeker", output.Message)
	assert.Equal(t, "notif-1", output.NotificationID)

	require.Len(t, appender.collections, 1)
	assert.Equal(t, "seekers/user-1/notifications", appender.collections[0])
	fields := appender.fields[0]
	assert.Equal(t, "sponsorship_interest", fields["type"])
	assert.Equal(t, "HelpingHands is interested in sponsoring your event: Charity Gala", fields["message"])
	assert.Equal(t, "HelpingHands", fields["providerName"])
	assert.Equal(t, "Charity Gala", fields["eventName"])
	assert.Equal(t, false, fields["read"])
	assert.Equal(t, store.ServerTimestamp, fields["timestamp"])

	require.Len(t, mailer.sent, 1)
	msg := mailer.sent[0]
	assert.Equal(t, "seeker@example.com", msg.To)
	assert.Equal(t, "New Sponsorship Interest: Charity Gala", msg.Subject)
	assert.Contains(t, msg.HTMLBody, "HelpingHands")
}

func TestHandler_Execute_UserTypeHandling(t *testing.T) {
	tests := []struct {
		name           string
		userType       string
		expectError    bool
		wantCollection string
		wantMessage    string
	}{
		{
			name:           "entity routes to entities namespace",
			userType:       "entity",
			wantCollection: "entities/user-1/notifications",
			wantMessage:    "Successfully notified entity",
		},
		{
			name:           "mixed case is normalized",
			userType:       "  Entity ",
			wantCollection: "entities/user-1/notifications",
			wantMessage:    "Successfully notified entity",
		},
		{
			name:           "empty defaults to seeker",
			userType:       "",
			wantCollection: "seekers/user-1/notifications",
			wantMessage:    "Successfully notified seeker",
		},
		{
			name:        "provider is rejected",
			userType:    "provider",
			expectError: true,
		},
		{
			name:        "arbitrary type is rejected",
			userType:    "admin",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailer := &fakeMailer{}
			appender := &fakeAppender{}
			handler := NewHandler(createTestConfig(), mailer, appender, createTestLogger(t))

			input := createValidInput()
			input.UserType = tt.userType

			output, err := handler.execute(context.Background(), input)

			if tt.expectError {
				require.Error(t, err)
				assert.True(t, stderrors.IsValidation(err))
				assert.Nil(t, output)
				// Rejected before any side effect.
				assert.Empty(t, appender.collections)
				assert.Empty(t, mailer.sent)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantMessage, output.Message)
			require.Len(t, appender.collections, 1)
			assert.Equal(t, tt.wantCollection, appender.collections[0])
		})
	}
}

func TestHandler_Execute_RequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(input *Input)
	}{
		{name: "missing user email", mutate: func(i *Input) { i.UserEmail = "" }},
		{name: "missing user id", mutate: func(i *Input) { i.UserID = "" }},
		{name: "missing event name", mutate: func(i *Input) { i.EventName = "" }},
		{name: "missing provider name", mutate: func(i *Input) { i.ProviderName = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appender := &fakeAppender{}
			handler := NewHandler(createTestConfig(), &fakeMailer{}, appender, createTestLogger(t))

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

func TestHandler_Execute_InvalidEmailRejected(t *testing.T) {
	appender := &fakeAppender{}
	handler := NewHandler(createTestConfig(), &fakeMailer{}, appender, createTestLogger(t))

	input := createValidInput()
	input.UserEmail = "not-an-address"

	output, err := handler.execute(context.Background(), input)

	assert.Nil(t, output)
	require.Error(t, err)
	assert.True(t, stderrors.IsValidation(err))
	assert.Empty(t, appender.collections)
}

func TestHandler_Execute_StoreFailureAborts(t *testing.T) {
	mailer := &fakeMailer{}
	appender := &fakeAppender{err: errors.New("store down")}
	handler := NewHandler(createTestConfig(), mailer, appender, createTestLogger(t))

	output, err := handler.execute(context.Background(), createValidInput())

	assert.Nil(t, output)
	require.Error(t, err)
	// The notification never landed, so no email goes out either.
	assert.Empty(t, mailer.sent)
}

func TestHandler_Execute_MailFailureAborts(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("smtp unreachable")}
	appender := &fakeAppender{}
	handler := NewHandler(createTestConfig(), mailer, appender, createTestLogger(t))

	output, err := handler.execute(context.Background(), createValidInput())

	assert.Nil(t, output)
	require.Error(t, err)
	norm := stderrors.Normalize(err)
	assert.Equal(t, stderrors.ErrCodeMailSendFailed, norm.Code)
	// The notification write happened before the send attempt.
	assert.Len(t, appender.collections, 1)
}

func TestHandler_Execute_NilInput(t *testing.T) {
	handler := NewHandler(createTestConfig(), &fakeMailer{}, &fakeAppender{}, createTestLogger(t))

	output, err := handler.execute(context.Background(), nil)

	assert.Nil(t, output)
	require.Error(t, err)
}
