package handlers

import (
	"github.com/scopetrack/scopetrack-go/src/services"
	"github.com/scopetrack/scopetrack-go/src/storage"
)

type Handlers struct {
	Project   *ProjectHandler
	ScopeItem *ScopeItemHandler
	Request   *RequestHandler
	Proposal  *ProposalHandler
	Stats     *StatsHandler
}

func New(svc *services.Services, attachments *storage.AttachmentStore) *Handlers {
	return &Handlers{
		Project:   NewProjectHandler(svc.Project),
		ScopeItem: NewScopeItemHandler(svc.ScopeItem),
		Request:   NewRequestHandler(svc.Request, attachments),
		Proposal:  NewProposalHandler(svc.Proposal),
		Stats:     NewStatsHandler(svc.Stats),
	}
}
