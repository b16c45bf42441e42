package cache

import (
	"fmt"

	"github.com/google/uuid"
)

// Key builders. Keys are hierarchical so that a whole family can be
// invalidated by prefix (every builder result is also a valid prefix).
// Filtered list views are never cached under their own keys; filters are
// applied at read time to the canonical per-project list.

func RequestList(projectID uuid.UUID) string {
	return fmt.Sprintf("requests:list:%s", projectID)
}

func RequestDetail(projectID, requestID uuid.UUID) string {
	return fmt.Sprintf("requests:detail:%s:%s", projectID, requestID)
}

func ProposalList(projectID uuid.UUID) string {
	return fmt.Sprintf("proposals:list:%s", projectID)
}

func ProposalDetail(projectID, proposalID uuid.UUID) string {
	return fmt.Sprintf("proposals:detail:%s:%s", projectID, proposalID)
}

func ProjectDetail(projectID uuid.UUID) string {
	return fmt.Sprintf("project:detail:%s", projectID)
}

func Dashboard(projectID uuid.UUID) string {
	return fmt.Sprintf("dashboard:%s", projectID)
}
