// internal/handlers/matchsponsors/validation.go
package matchsponsors

import "sponsornest/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"eventId": {
				Type:        "string",
				Description: "Identifier of the event being matched (optional)",
			},
			"userId": {
				Type:        "string",
				Description: "Requester identifier used for the mirrored response record",
			},
			"userType": {
				Type:        "string",
				Description: "Requester type; unknown values fall back to the seeker namespace",
			},
			"eventData": {
				Type:        "object",
				Description: "Event descriptive fields (EventName, EventDate, locationOfTheEvent, ...)",
			},
			"eventCriteria": {
				Type:        "array",
				Description: "Criteria tags used as the matching key",
				Items:       &validation.Property{Type: "string"},
			},
		},
		AdditionalProperties: false,
	}
}
