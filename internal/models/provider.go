// internal/models/provider.go
package models

// Provider is a sponsorship provider as stored in the providers collection.
// Read-only for the matching engine; the population is read in full per
// match request.
type Provider struct {
	ID                            string   `json:"providerId,omitempty"`
	BusinessName                  string   `json:"businessName"`
	BusinessType                  string   `json:"businessType"`
	Email                         string   `json:"email"`
	SponsorshipAmount             float64  `json:"sponsorshipAmount"`
	EventCount                    int      `json:"eventCount"`
	SelectedEventCriteria         []string `json:"selectedEventCriteria"`
	WillingToSponsorOtherCriteria bool     `json:"willingToSponsorOtherCriteria"`
}

// SponsorMatch is one entry of a match result as returned to callers.
type SponsorMatch struct {
	BusinessName      string   `json:"businessName"`
	BusinessType      string   `json:"businessType"`
	Email             string   `json:"email"`
	SponsorshipAmount float64  `json:"sponsorshipAmount"`
	EventCount        int      `json:"eventCount"`
	MatchedCriteria   []string `json:"matchedCriteria"`
	MatchStrength     int      `json:"matchStrength"`
	ProviderID        string   `json:"providerId"`
	Note              string   `json:"note,omitempty"`
}

// FallbackNote marks providers admitted outside their stated criteria.
const FallbackNote = "Willing to sponsor other event types"
