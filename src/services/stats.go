package services

import "github.com/scopetrack/scopetrack-go/src/models"

// RequestStats are derived counts over the full request collection of a
// project. They are always recomputed from the authoritative collection,
// never adjusted incrementally.
type RequestStats struct {
	Total        int `json:"total"`
	Active       int `json:"active"`
	Addressed    int `json:"addressed"`
	Declined     int `json:"declined"`
	ProposalSent int `json:"proposal_sent"`

	// Classification counts among active requests only
	Pending             int `json:"pending"`
	InScope             int `json:"in_scope"`
	OutOfScope          int `json:"out_of_scope"`
	ClarificationNeeded int `json:"clarification_needed"`
	Revision            int `json:"revision"`
}

func ComputeRequestStats(requests []models.ClientRequest) RequestStats {
	stats := RequestStats{Total: len(requests)}
	for _, r := range requests {
		switch r.Status {
		case models.RequestStatusAddressed:
			stats.Addressed++
		case models.RequestStatusDeclined:
			stats.Declined++
		case models.RequestStatusProposalSent:
			stats.ProposalSent++
		}
	}
	stats.Active = stats.Total - stats.Addressed - stats.Declined - stats.ProposalSent

	for _, r := range requests {
		if !r.Status.Active() {
			continue
		}
		switch r.Classification {
		case models.ClassificationPending:
			stats.Pending++
		case models.ClassificationInScope:
			stats.InScope++
		case models.ClassificationOutOfScope:
			stats.OutOfScope++
		case models.ClassificationClarificationNeeded:
			stats.ClarificationNeeded++
		case models.ClassificationRevision:
			stats.Revision++
		}
	}
	return stats
}

type ProposalStats struct {
	Total               int     `json:"total"`
	Draft               int     `json:"draft"`
	Sent                int     `json:"sent"`
	Accepted            int     `json:"accepted"`
	Declined            int     `json:"declined"`
	Expired             int     `json:"expired"`
	TotalAcceptedAmount float64 `json:"total_accepted_amount"`
}

func ComputeProposalStats(proposals []models.Proposal) ProposalStats {
	stats := ProposalStats{Total: len(proposals)}
	for _, p := range proposals {
		switch p.Status {
		case models.ProposalStatusDraft:
			stats.Draft++
		case models.ProposalStatusSent:
			stats.Sent++
		case models.ProposalStatusAccepted:
			stats.Accepted++
			stats.TotalAcceptedAmount += p.Amount
		case models.ProposalStatusDeclined:
			stats.Declined++
		case models.ProposalStatusExpired:
			stats.Expired++
		}
	}
	return stats
}
