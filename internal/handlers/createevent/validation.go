// internal/handlers/createevent/validation.go
package createevent

import "sponsornest/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"userId", "userType", "EventName", "EventDate", "locationOfTheEvent", "expectedCrowd"},
		Properties: map[string]validation.Property{
			"userId": {
				Type:        "string",
				Description: "Owning requester identifier",
				MinLength:   intPtr(1),
			},
			"userType": {
				Type:        "string",
				Description: "Owning requester type",
				Enum:        []string{"seeker", "entity"},
			},
			"EventName": {
				Type:        "string",
				Description: "Event name",
				MinLength:   intPtr(1),
			},
			"EventDate": {
				Type:        "string",
				Description: "Event date",
				MinLength:   intPtr(1),
			},
			"locationOfTheEvent": {
				Type:        "string",
				Description: "Physical location of the event",
				MinLength:   intPtr(1),
			},
			"expectedCrowd": {
				Type:        "string",
				Description: "Expected crowd size",
				MinLength:   intPtr(1),
			},
			"description": {
				Type:        "string",
				Description: "Free-text event description",
			},
			"selectedEventCriteria": {
				Type:        "array",
				Description: "Criteria tags for later matching",
				Items:       &validation.Property{Type: "string"},
			},
			"proposalUrl": {
				Type:        "string",
				Description: "Reference to an already-uploaded proposal document",
			},
			"posterUrl": {
				Type:        "string",
				Description: "Reference to an already-uploaded poster image",
			},
		},
		AdditionalProperties: false,
	}
}

func intPtr(i int) *int {
	return &i
}
