// internal/matching/fallback.go
package matching

import "sponsornest/internal/models"

// SelectFallback returns providers open to sponsoring outside their stated
// criteria as zero-strength candidates. Called only when no provider
// matched exactly; fallback candidates are informational and never produce
// sponsorship request records.
func SelectFallback(providers []models.Provider) []models.SponsorMatch {
	var out []models.SponsorMatch
	for _, p := range providers {
		if !p.WillingToSponsorOtherCriteria {
			continue
		}
		out = append(out, models.SponsorMatch{
			BusinessName:      p.BusinessName,
			BusinessType:      p.BusinessType,
			Email:             p.Email,
			SponsorshipAmount: p.SponsorshipAmount,
			EventCount:        p.EventCount,
			MatchedCriteria:   []string{},
			MatchStrength:     0,
			ProviderID:        p.ID,
			Note:              models.FallbackNote,
		})
	}
	return out
}
