// internal/handlers/notifysponsors/handler_test.go
package notifysponsors

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sponsornest/internal/common/logger"
	"sponsornest/internal/common/mail"
	"sponsornest/internal/models"
	"sponsornest/internal/store"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		FromEmail:   "noreply@sponsornest.com",
		Concurrency: 4,
		MailTimeout: 5 * time.Second,
	}
}

func createTestLogger(t *testing.T) logger.Logger {
	return logger.NewTestLogger(t)
}

func createValidInput(sponsors ...models.SponsorMatch) *Input {
	return &Input{
		Event: EventInput{
			EventDetails: models.EventDetails{
				EventName:     "Charity Gala",
				EventDate:     "2025-06-01",
				Location:      "Chennai",
				ExpectedCrowd: "500",
			},
			EventID: "ev-1",
		},
		Sponsors: sponsors,
		UserID:   "user-1",
		UserType: "seeker",
	}
}

func sponsor(id, email string, criteria ...string) models.SponsorMatch {
	return models.SponsorMatch{
		BusinessName:    "Sponsor " + id,
		Email:           email,
		MatchedCriteria: criteria,
		MatchStrength:   len(criteria),
		ProviderID:      id,
	}
}

// fakeMailer records sends and fails for configured recipients.
type fakeMailer struct {
	mu      sync.Mutex
	sent    []mail.Message
	failFor map[string]error
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{failFor: map[string]error{}}
}

func (f *fakeMailer) Send(ctx context.Context, msg mail.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failFor[msg.To]; err != nil {
		return err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeMailer) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

type fakeAppender struct {
	mu          sync.Mutex
	collections []string
	fields      []map[string]any
	failFor     map[string]error
}

func newFakeAppender() *fakeAppender {
	return &fakeAppender{failFor: map[string]error{}}
}

func (f *fakeAppender) Append(ctx context.Context, collection string, fields map[string]any) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failFor[collection]; err != nil {
		return "", err
	}
	f.collections = append(f.collections, collection)
	f.fields = append(f.fields, fields)
	return fmt.Sprintf("doc-%d", len(f.collections)), nil
}

func (f *fakeAppender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.collections)
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_BroadcastCounts(t *testing.T) {
	tests := []struct {
		name           string
		sponsors       []models.SponsorMatch
		mailFailures   map[string]error
		validateOutput func(t *testing.T, output *Output, mailer *fakeMailer, appender *fakeAppender)
	}{
		{
			name: "all deliveries succeed",
			sponsors: []models.SponsorMatch{
				sponsor("p1", "p1@example.com", "charity event"),
				sponsor("p2", "p2@example.com", "charity event"),
				sponsor("p3", "p3@example.com", "sport event"),
			},
			validateOutput: func(t *testing.T, output *Output, mailer *fakeMailer, appender *fakeAppender) {
				assert.Equal(t, "Emails sent to 3 sponsors", output.Message)
				assert.Equal(t, 3, output.SentCount)
				assert.Equal(t, 3, output.RequestsCreated)
				assert.Equal(t, 0, output.FailedCount)
				assert.Equal(t, 3, appender.count())
			},
		},
		{
			name: "one delivery fails, others unaffected",
			sponsors: []models.SponsorMatch{
				sponsor("p1", "p1@example.com", "charity event"),
				sponsor("p2", "p2@example.com", "charity event"),
			},
			mailFailures: map[string]error{"p2@example.com": errors.New("connection refused")},
			validateOutput: func(t *testing.T, output *Output, mailer *fakeMailer, appender *fakeAppender) {
				assert.Equal(t, "Emails sent to 1 sponsors", output.Message)
				assert.Equal(t, 1, output.SentCount)
				assert.Equal(t, 1, output.RequestsCreated)
				assert.Equal(t, 1, output.FailedCount)
				assert.Equal(t, 1, appender.count())
			},
		},
		{
			name: "fallback-only sponsors are skipped",
			sponsors: []models.SponsorMatch{
				{ProviderID: "p1", Email: "p1@example.com", MatchedCriteria: []string{}, Note: models.FallbackNote},
			},
			validateOutput: func(t *testing.T, output *Output, mailer *fakeMailer, appender *fakeAppender) {
				assert.Equal(t, "No emails sent - no sponsors with matching criteria", output.Message)
				assert.Equal(t, 0, output.SentCount)
				assert.Equal(t, 0, output.FailedCount)
				assert.Equal(t, 0, mailer.sentCount())
				assert.Equal(t, 0, appender.count())
			},
		},
		{
			name: "fallback entries mixed with matched ones",
			sponsors: []models.SponsorMatch{
				sponsor("p1", "p1@example.com", "charity event"),
				{ProviderID: "p2", Email: "p2@example.com", Note: models.FallbackNote},
			},
			validateOutput: func(t *testing.T, output *Output, mailer *fakeMailer, appender *fakeAppender) {
				assert.Equal(t, 1, output.SentCount)
				assert.Equal(t, 1, mailer.sentCount())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailer := newFakeMailer()
			for to, err := range tt.mailFailures {
				mailer.failFor[to] = err
			}
			appender := newFakeAppender()
			handler := NewHandler(createTestConfig(), mailer, appender, createTestLogger(t))

			output, err := handler.execute(context.Background(), createValidInput(tt.sponsors...))

			require.NoError(t, err)
			require.NotNil(t, output)
			tt.validateOutput(t, output, mailer, appender)
		})
	}
}

func TestHandler_Execute_EmptySponsorList(t *testing.T) {
	mailer := newFakeMailer()
	appender := newFakeAppender()
	handler := NewHandler(createTestConfig(), mailer, appender, createTestLogger(t))

	output, err := handler.execute(context.Background(), createValidInput())

	require.NoError(t, err)
	assert.Equal(t, "No sponsors to notify - no matches found", output.Message)
	assert.Equal(t, 0, output.SentCount)
	assert.Equal(t, 0, mailer.sentCount())
	assert.Equal(t, 0, appender.count())
}

func TestHandler_Execute_AppendFailureAfterSend(t *testing.T) {
	mailer := newFakeMailer()
	appender := newFakeAppender()
	appender.failFor["providers/p1/sponsorshipRequests"] = errors.New("write timeout")
	handler := NewHandler(createTestConfig(), mailer, appender, createTestLogger(t))

	output, err := handler.execute(context.Background(), createValidInput(
		sponsor("p1", "p1@example.com", "charity event"),
	))

	require.NoError(t, err)
	// The email went out, so it counts as sent even though the request
	// document was never written.
	assert.Equal(t, 1, output.SentCount)
	assert.Equal(t, 0, output.RequestsCreated)
	assert.Equal(t, 1, output.FailedCount)
	assert.Equal(t, "Emails sent to 1 sponsors", output.Message)
}

func TestHandler_Execute_RequestDocumentFields(t *testing.T) {
	mailer := newFakeMailer()
	appender := newFakeAppender()
	handler := NewHandler(createTestConfig(), mailer, appender, createTestLogger(t))

	_, err := handler.execute(context.Background(), createValidInput(
		sponsor("p1", "p1@example.com", "charity event", "sport event"),
	))

	require.NoError(t, err)
	require.Equal(t, 1, appender.count())
	assert.Equal(t, "providers/p1/sponsorshipRequests", appender.collections[0])

	fields := appender.fields[0]
	assert.Equal(t, "ev-1", fields["eventId"])
	assert.Equal(t, "Charity Gala", fields["eventName"])
	assert.Equal(t, "Chennai", fields["eventLocation"])
	assert.Equal(t, "user-1", fields["requestingUserId"])
	assert.Equal(t, "seeker", fields["requestingUserType"])
	assert.Equal(t, "pending", fields["status"])
	assert.Equal(t, []string{"charity event", "sport event"}, fields["matchedCriteria"])
	assert.Equal(t, store.ServerTimestamp, fields["createdAt"])
}

func TestHandler_Execute_EmailEnvelope(t *testing.T) {
	mailer := newFakeMailer()
	handler := NewHandler(createTestConfig(), mailer, newFakeAppender(), createTestLogger(t))

	_, err := handler.execute(context.Background(), createValidInput(
		sponsor("p1", "p1@example.com", "charity event"),
	))

	require.NoError(t, err)
	require.Equal(t, 1, mailer.sentCount())
	msg := mailer.sent[0]
	assert.Equal(t, "noreply@sponsornest.com", msg.From)
	assert.Equal(t, "p1@example.com", msg.To)
	assert.Equal(t, "Sponsorship Opportunity: Charity Gala", msg.Subject)
	assert.Contains(t, msg.HTMLBody, "Charity Gala")
	assert.Contains(t, msg.HTMLBody, "charity event")
}

func TestHandler_Execute_MissingUserTypeDefaultsToSeeker(t *testing.T) {
	appender := newFakeAppender()
	handler := NewHandler(createTestConfig(), newFakeMailer(), appender, createTestLogger(t))

	input := createValidInput(sponsor("p1", "p1@example.com", "charity event"))
	input.UserType = ""

	_, err := handler.execute(context.Background(), input)

	require.NoError(t, err)
	require.Equal(t, 1, appender.count())
	assert.Equal(t, "seeker", appender.fields[0]["requestingUserType"])
}

// ==========================
// Edge Cases
// ==========================

func TestHandler_Execute_NilInput(t *testing.T) {
	handler := NewHandler(createTestConfig(), newFakeMailer(), newFakeAppender(), createTestLogger(t))

	output, err := handler.execute(context.Background(), nil)

	assert.Nil(t, output)
	require.Error(t, err)
}

func TestHandler_Execute_ConcurrencyFloor(t *testing.T) {
	// A zero concurrency config still drains the whole sponsor list.
	cfg := createTestConfig()
	cfg.Concurrency = 0
	mailer := newFakeMailer()
	handler := NewHandler(cfg, mailer, newFakeAppender(), createTestLogger(t))

	output, err := handler.execute(context.Background(), createValidInput(
		sponsor("p1", "p1@example.com", "charity event"),
		sponsor("p2", "p2@example.com", "charity event"),
	))

	require.NoError(t, err)
	assert.Equal(t, 2, output.SentCount)
	assert.Equal(t, 2, mailer.sentCount())
}
