// internal/handlers/notifyinterest/models.go
package notifyinterest

type Input struct {
	UserEmail    string `json:"userEmail"`
	UserID       string `json:"userId"`
	EventName    string `json:"eventName"`
	ProviderName string `json:"providerName"`
	UserType     string `json:"userType"`
}

type Output struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	NotificationID string `json:"notificationId"`
}
