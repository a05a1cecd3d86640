// internal/handlers/createevent/models.go
package createevent

type Input struct {
	UserID             string   `json:"userId"`
	UserType           string   `json:"userType"`
	EventName          string   `json:"EventName"`
	EventDate          string   `json:"EventDate"`
	LocationOfTheEvent string   `json:"locationOfTheEvent"`
	ExpectedCrowd      string   `json:"expectedCrowd"`
	Description        string   `json:"description"`
	EventCriteria      []string `json:"selectedEventCriteria"`
	ProposalURL        string   `json:"proposalUrl"`
	PosterURL          string   `json:"posterUrl"`
}

type Output struct {
	Success     bool   `json:"success"`
	EventID     string `json:"eventId"`
	ProposalURL string `json:"proposalUrl,omitempty"`
	PosterURL   string `json:"posterUrl,omitempty"`
	UserType    string `json:"userType"`
}
