package services

import (
	"github.com/scopetrack/scopetrack-go/src/analyzer"
	"github.com/scopetrack/scopetrack-go/src/cache"
	"github.com/scopetrack/scopetrack-go/src/events"
	"github.com/scopetrack/scopetrack-go/src/repositories"
)

type Services struct {
	Project   *ProjectService
	ScopeItem *ScopeItemService
	Request   *RequestService
	Proposal  *ProposalService
	Stats     *StatsService
}

func New(repos *repositories.Repos, store *cache.Store, hub *events.Hub, an *analyzer.Analyzer) *Services {
	policy := analyzer.KeywordTierPolicy{}
	return &Services{
		Project:   NewProjectService(repos, store),
		ScopeItem: NewScopeItemService(repos),
		Request:   NewRequestService(repos, store, hub, an, policy),
		Proposal:  NewProposalService(repos, store, hub),
		Stats:     NewStatsService(repos, store),
	}
}
