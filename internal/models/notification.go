// internal/models/notification.go
package models

// Notification types.
const (
	NotificationSponsorshipInterest = "sponsorship_interest"
)

// Notification is an in-app notification document stored under a
// requester's notifications subcollection.
type Notification struct {
	Type         string `json:"type"`
	Message      string `json:"message"`
	ProviderName string `json:"providerName"`
	EventName    string `json:"eventName"`
	Read         bool   `json:"read"`
}

// Fields returns the stored field map. The caller adds the server-assigned
// timestamp at write time.
func (n Notification) Fields() map[string]any {
	return map[string]any{
		"type":         n.Type,
		"message":      n.Message,
		"providerName": n.ProviderName,
		"eventName":    n.EventName,
		"read":         n.Read,
	}
}
