package repositories

type Repos struct {
	Project   ProjectRepo
	ScopeItem ScopeItemRepo
	Request   RequestRepo
	Proposal  ProposalRepo
}

func New() *Repos {
	return &Repos{
		Project:   &DBProjectRepo{},
		ScopeItem: &DBScopeItemRepo{},
		Request:   &DBRequestRepo{},
		Proposal:  &DBProposalRepo{},
	}
}
