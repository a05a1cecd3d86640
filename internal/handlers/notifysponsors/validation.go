// internal/handlers/notifysponsors/validation.go
package notifysponsors

import "sponsornest/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"event"},
		Properties: map[string]validation.Property{
			"event": {
				Type:        "object",
				Description: "Event fields (EventName, EventDate, locationOfTheEvent, expectedCrowd, eventId, ...)",
			},
			"sponsors": {
				Type:        "array",
				Description: "Previously matched sponsor entries",
				Items:       &validation.Property{Type: "object"},
			},
			"userId": {
				Type:        "string",
				Description: "Requester identifier recorded on created requests",
			},
			"userType": {
				Type:        "string",
				Description: "Requester type recorded on created requests",
			},
		},
		AdditionalProperties: false,
	}
}
