// internal/handlers/notifyinterest/validation.go
package notifyinterest

import "sponsornest/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"userEmail", "userId", "eventName", "providerName"},
		Properties: map[string]validation.Property{
			"userEmail": {
				Type:        "string",
				Description: "Target user's email address",
				MinLength:   intPtr(5),
				MaxLength:   intPtr(255),
			},
			"userId": {
				Type:        "string",
				Description: "Target user identifier",
				MinLength:   intPtr(1),
			},
			"eventName": {
				Type:        "string",
				Description: "Name of the event the provider is interested in",
				MinLength:   intPtr(1),
			},
			"providerName": {
				Type:        "string",
				Description: "Business name of the interested provider",
				MinLength:   intPtr(1),
			},
			// userType is checked in the handler after lower-casing, so
			// mixed-case values are accepted.
			"userType": {
				Type:        "string",
				Description: "Target user type; defaults to seeker",
			},
		},
		AdditionalProperties: false,
	}
}

func intPtr(i int) *int {
	return &i
}
