// internal/handlers/notifysponsors/models.go
package notifysponsors

import "sponsornest/internal/models"

// EventInput carries the event fields plus the event's identifier as
// supplied by the caller.
type EventInput struct {
	models.EventDetails
	EventID string `json:"eventId"`
}

type Input struct {
	Event    EventInput            `json:"event"`
	Sponsors []models.SponsorMatch `json:"sponsors"`
	UserID   string                `json:"userId"`
	UserType string                `json:"userType"`
}

type Output struct {
	Message         string `json:"message"`
	SentCount       int    `json:"sentCount"`
	RequestsCreated int    `json:"requestsCreated"`
	FailedCount     int    `json:"failedCount"`
}
