// internal/handlers/notifysponsors/email.go
package notifysponsors

import (
	"fmt"
	"strings"

	"sponsornest/internal/models"
)

func buildSponsorBody(event EventInput, sponsor models.SponsorMatch) string {
	var b strings.Builder

	b.WriteString("<html><body>")
	b.WriteString("<h2>New Sponsorship Opportunity</h2>")
	b.WriteString(fmt.Sprintf("<p>Hello %s,</p>", sponsor.BusinessName))
	b.WriteString("<p>We found a potential event that matches your sponsorship criteria:</p>")
	b.WriteString("<h3>Event Details:</h3><ul>")
	b.WriteString(fmt.Sprintf("<li><strong>Event Name:</strong> %s</li>", event.EventName))
	b.WriteString(fmt.Sprintf("<li><strong>Date:</strong> %s</li>", event.EventDate))
	b.WriteString(fmt.Sprintf("<li><strong>Location:</strong> %s</li>", event.Location))
	b.WriteString(fmt.Sprintf("<li><strong>Expected Crowd:</strong> %s</li>", event.ExpectedCrowd))
	b.WriteString("</ul>")
	b.WriteString(fmt.Sprintf("<p>This event matches your criteria for: %s</p>",
		strings.Join(sponsor.MatchedCriteria, ", ")))
	if event.ProposalURL != "" {
		b.WriteString(fmt.Sprintf(
			`<p><strong>Sponsorship Proposal:</strong> <a href="%s" target="_blank">Download Proposal PDF</a></p>`,
			event.ProposalURL))
	}
	b.WriteString("<p>If you're interested in sponsoring this event, please contact the event organizer.</p>")
	b.WriteString("<p>Best regards,<br>Event Sponsorship Platform</p>")
	b.WriteString("</body></html>")

	return b.String()
}
