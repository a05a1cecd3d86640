// internal/handlers/matchsponsors/models.go
package matchsponsors

import "sponsornest/internal/models"

type Input struct {
	EventID       string              `json:"eventId"`
	UserID        string              `json:"userId"`
	UserType      string              `json:"userType"`
	EventData     models.EventDetails `json:"eventData"`
	EventCriteria []string            `json:"eventCriteria"`
}

type Output struct {
	SponsorMatches []models.SponsorMatch `json:"sponsorMatches"`
	Message        string                `json:"message"`
}
