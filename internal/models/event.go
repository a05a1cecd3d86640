// internal/models/event.go
package models

// EventDetails carries the event fields supplied by callers. Field names
// follow the client payload exactly.
type EventDetails struct {
	EventName     string `json:"EventName"`
	EventDate     string `json:"EventDate"`
	Location      string `json:"locationOfTheEvent"`
	ExpectedCrowd string `json:"expectedCrowd"`
	Description   string `json:"description,omitempty"`
	ProposalURL   string `json:"proposalUrl,omitempty"`
	PosterURL     string `json:"posterUrl,omitempty"`
}

// Event status values.
const (
	EventStatusActive = "active"
)

// EventsCollection returns the collection path holding a requester's
// events.
func EventsCollection(requesterType, requesterID string) string {
	return ResponseCollection(requesterType) + "/" + requesterID + "/events"
}
