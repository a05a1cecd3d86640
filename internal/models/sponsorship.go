// internal/models/sponsorship.go
package models

// Requester types accepted by the fan-out and notification operations.
const (
	RequesterSeeker = "seeker"
	RequesterEntity = "entity"
)

// ResponseCollection returns the requester-side collection name for a
// requester type. Unknown types fall back to the seekers namespace.
func ResponseCollection(requesterType string) string {
	if requesterType == RequesterEntity {
		return "entities"
	}
	return "seekers"
}

// Request lifecycle status values.
const (
	RequestStatusPending = "pending"
)

// SponsorshipRequest is the document written under a provider's
// sponsorshipRequests subcollection during fan-out.
type SponsorshipRequest struct {
	EventID            string   `json:"eventId,omitempty"`
	EventName          string   `json:"eventName"`
	EventDate          string   `json:"eventDate"`
	EventLocation      string   `json:"eventLocation"`
	RequestingUserID   string   `json:"requestingUserId,omitempty"`
	RequestingUserType string   `json:"requestingUserType"`
	Status             string   `json:"status"`
	MatchedCriteria    []string `json:"matchedCriteria"`
	ExpectedCrowd      string   `json:"expectedCrowd"`
	EventDescription   string   `json:"eventDescription,omitempty"`
	ProposalURL        string   `json:"proposalUrl,omitempty"`
	PosterURL          string   `json:"posterUrl,omitempty"`
}

// Fields returns the stored field map. The caller adds the server-assigned
// createdAt timestamp at write time.
func (r SponsorshipRequest) Fields() map[string]any {
	return map[string]any{
		"eventId":            r.EventID,
		"eventName":          r.EventName,
		"eventDate":          r.EventDate,
		"eventLocation":      r.EventLocation,
		"requestingUserId":   r.RequestingUserID,
		"requestingUserType": r.RequestingUserType,
		"status":             r.Status,
		"matchedCriteria":    r.MatchedCriteria,
		"expectedCrowd":      r.ExpectedCrowd,
		"eventDescription":   r.EventDescription,
		"proposalUrl":        r.ProposalURL,
		"posterUrl":          r.PosterURL,
	}
}

// SponsorshipResponse is the requester-side mirror of a fan-out write,
// linked to its SponsorshipRequest by id.
type SponsorshipResponse struct {
	ProviderID           string `json:"providerId"`
	ProviderName         string `json:"providerName"`
	EventID              string `json:"eventId,omitempty"`
	EventName            string `json:"eventName"`
	Status               string `json:"status"`
	SponsorshipRequestID string `json:"sponsorshipRequestId"`
}

// Fields returns the stored field map. The caller adds the server-assigned
// requestSentAt timestamp at write time.
func (r SponsorshipResponse) Fields() map[string]any {
	return map[string]any{
		"providerId":           r.ProviderID,
		"providerName":         r.ProviderName,
		"eventId":              r.EventID,
		"eventName":            r.EventName,
		"status":               r.Status,
		"sponsorshipRequestId": r.SponsorshipRequestID,
	}
}
