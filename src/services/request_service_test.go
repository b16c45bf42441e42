package services_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/scopetrack/scopetrack-go/src/analyzer"
	"github.com/scopetrack/scopetrack-go/src/cache"
	"github.com/scopetrack/scopetrack-go/src/dto"
	"github.com/scopetrack/scopetrack-go/src/events"
	"github.com/scopetrack/scopetrack-go/src/models"
	"github.com/scopetrack/scopetrack-go/src/repositories"
	"github.com/scopetrack/scopetrack-go/src/repositories/mock_repositories"
	"github.com/scopetrack/scopetrack-go/src/services"
)

func newTestStore(t *testing.T) *cache.Store {
	store, err := cache.Open("", nil)
	if err != nil {
		t.Fatalf("failed to open in-memory cache: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func setupRequestMocks(t *testing.T) (*services.RequestService,
	*mock_repositories.MockProjectRepo,
	*mock_repositories.MockScopeItemRepo,
	*mock_repositories.MockRequestRepo,
	*mock_repositories.MockProposalRepo) {

	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	mockProject := mock_repositories.NewMockProjectRepo(ctrl)
	mockScopeItem := mock_repositories.NewMockScopeItemRepo(ctrl)
	mockRequest := mock_repositories.NewMockRequestRepo(ctrl)
	mockProposal := mock_repositories.NewMockProposalRepo(ctrl)

	repos := &repositories.Repos{
		Project:   mockProject,
		ScopeItem: mockScopeItem,
		Request:   mockRequest,
		Proposal:  mockProposal,
	}

	an := analyzer.New(analyzer.DefaultPhrases())
	svc := services.NewRequestService(repos, newTestStore(t), events.NewHub(), an, analyzer.KeywordTierPolicy{})
	return svc, mockProject, mockScopeItem, mockRequest, mockProposal
}

func TestRequestCreate(t *testing.T) {
	svc, mockProject, _, mockRequest, _ := setupRequestMocks(t)
	projectID := uuid.New()

	t.Run("without auto-analyze", func(t *testing.T) {
		off := false
		input := dto.CreateRequestDTO{Title: "Logo swap", Content: "Swap the logo", AutoAnalyze: &off}

		mockProject.EXPECT().GetByID(projectID).Return(models.Project{ID: projectID}, nil)
		mockRequest.EXPECT().Create(gomock.Any()).Return(nil)

		req, err := svc.Create(projectID, input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if req.Status != models.RequestStatusNew {
			t.Fatalf("expected status new, got %s", req.Status)
		}
		if req.Classification != models.ClassificationPending {
			t.Fatalf("expected classification pending, got %s", req.Classification)
		}
		if req.Source != models.RequestSourceEmail {
			t.Fatalf("expected default source email, got %s", req.Source)
		}
	})

	t.Run("auto-analyze classifies on create", func(t *testing.T) {
		svc, mockProject, mockScopeItem, mockRequest, _ := setupRequestMocks(t)
		input := dto.CreateRequestDTO{Title: "Extras", Content: "Can you also add a quick addition? Thanks!", Source: "chat"}

		mockProject.EXPECT().GetByID(projectID).Return(models.Project{ID: projectID}, nil)
		mockRequest.EXPECT().Create(gomock.Any()).Return(nil)
		mockScopeItem.EXPECT().ListByProjectID(projectID).Return([]models.ScopeItem{
			{ID: uuid.New(), ProjectID: projectID, Title: "homepage redesign"},
		}, nil)
		mockRequest.EXPECT().Update(gomock.Any()).Return(nil)

		req, err := svc.Create(projectID, input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if req.Status != models.RequestStatusAnalyzed {
			t.Fatalf("expected status analyzed, got %s", req.Status)
		}
		if req.Classification != models.ClassificationOutOfScope {
			t.Fatalf("expected out_of_scope, got %s", req.Classification)
		}
		if req.Confidence == nil {
			t.Fatal("expected confidence to be recorded")
		}
		if len(req.CreepIndicators) != 3 {
			t.Fatalf("expected 3 creep indicators, got %v", req.CreepIndicators)
		}
	})

	t.Run("project not found", func(t *testing.T) {
		svc, mockProject, _, _, _ := setupRequestMocks(t)
		mockProject.EXPECT().GetByID(projectID).Return(models.Project{}, errors.New("not found"))

		_, err := svc.Create(projectID, dto.CreateRequestDTO{Title: "x", Content: "y"})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}

func TestRequestClassify(t *testing.T) {
	projectID := uuid.New()
	requestID := uuid.New()

	t.Run("active request is reclassified", func(t *testing.T) {
		svc, _, _, mockRequest, _ := setupRequestMocks(t)
		stored := models.ClientRequest{ID: requestID, ProjectID: projectID, Status: models.RequestStatusNew, Classification: models.ClassificationPending}

		mockRequest.EXPECT().GetByID(projectID, requestID).Return(stored, nil)
		mockRequest.EXPECT().Update(gomock.Any()).Return(nil)

		req, err := svc.Classify(projectID, requestID, models.ClassificationInScope)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if req.Classification != models.ClassificationInScope {
			t.Fatalf("expected in_scope, got %s", req.Classification)
		}
		if req.Status != models.RequestStatusAnalyzed {
			t.Fatalf("expected status analyzed, got %s", req.Status)
		}
	})

	t.Run("frozen once no longer active", func(t *testing.T) {
		svc, _, _, mockRequest, _ := setupRequestMocks(t)
		stored := models.ClientRequest{ID: requestID, ProjectID: projectID, Status: models.RequestStatusAddressed, Classification: models.ClassificationInScope}

		// no Update expectation: the guard must reject before any write
		mockRequest.EXPECT().GetByID(projectID, requestID).Return(stored, nil)

		_, err := svc.Classify(projectID, requestID, models.ClassificationOutOfScope)
		var te *services.TransitionError
		if !errors.As(err, &te) {
			t.Fatalf("expected TransitionError, got %v", err)
		}
		if !strings.Contains(te.Message, "frozen") {
			t.Fatalf("unexpected message: %q", te.Message)
		}
	})

	t.Run("same classification is a notice, not a write", func(t *testing.T) {
		svc, _, _, mockRequest, _ := setupRequestMocks(t)
		stored := models.ClientRequest{ID: requestID, ProjectID: projectID, Status: models.RequestStatusAnalyzed, Classification: models.ClassificationInScope}

		mockRequest.EXPECT().GetByID(projectID, requestID).Return(stored, nil)

		req, err := svc.Classify(projectID, requestID, models.ClassificationInScope)
		var ne *services.NoticeError
		if !errors.As(err, &ne) {
			t.Fatalf("expected NoticeError, got %v", err)
		}
		if req.Classification != models.ClassificationInScope {
			t.Fatalf("request should be returned unchanged, got %s", req.Classification)
		}
	})
}

func TestRequestStatusCommands(t *testing.T) {
	projectID := uuid.New()
	requestID := uuid.New()

	t.Run("mark addressed", func(t *testing.T) {
		svc, _, _, mockRequest, _ := setupRequestMocks(t)
		stored := models.ClientRequest{ID: requestID, ProjectID: projectID, Status: models.RequestStatusAnalyzed}

		mockRequest.EXPECT().GetByID(projectID, requestID).Return(stored, nil)
		mockRequest.EXPECT().Update(gomock.Any()).Return(nil)

		req, err := svc.MarkAddressed(projectID, requestID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if req.Status != models.RequestStatusAddressed {
			t.Fatalf("expected addressed, got %s", req.Status)
		}
	})

	t.Run("mark addressed twice is a notice", func(t *testing.T) {
		svc, _, _, mockRequest, _ := setupRequestMocks(t)
		stored := models.ClientRequest{ID: requestID, ProjectID: projectID, Status: models.RequestStatusAddressed}

		mockRequest.EXPECT().GetByID(projectID, requestID).Return(stored, nil)

		_, err := svc.MarkAddressed(projectID, requestID)
		var ne *services.NoticeError
		if !errors.As(err, &ne) {
			t.Fatalf("expected NoticeError, got %v", err)
		}
	})

	t.Run("dismiss", func(t *testing.T) {
		svc, _, _, mockRequest, _ := setupRequestMocks(t)
		stored := models.ClientRequest{ID: requestID, ProjectID: projectID, Status: models.RequestStatusNew}

		mockRequest.EXPECT().GetByID(projectID, requestID).Return(stored, nil)
		mockRequest.EXPECT().Update(gomock.Any()).Return(nil)

		req, err := svc.Dismiss(projectID, requestID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if req.Status != models.RequestStatusDeclined {
			t.Fatalf("expected declined, got %s", req.Status)
		}
	})
}

func TestRequestRestore(t *testing.T) {
	projectID := uuid.New()
	requestID := uuid.New()

	t.Run("restore resets status and classification", func(t *testing.T) {
		svc, _, _, mockRequest, _ := setupRequestMocks(t)
		stored := models.ClientRequest{ID: requestID, ProjectID: projectID, Status: models.RequestStatusDeclined, Classification: models.ClassificationOutOfScope}

		mockRequest.EXPECT().GetByID(projectID, requestID).Return(stored, nil)
		mockRequest.EXPECT().Update(gomock.Any()).DoAndReturn(func(r *models.ClientRequest) error {
			if r.Status != models.RequestStatusNew {
				t.Fatalf("expected status new at write time, got %s", r.Status)
			}
			if r.Classification != models.ClassificationPending {
				t.Fatalf("expected classification pending at write time, got %s", r.Classification)
			}
			return nil
		})

		req, err := svc.Restore(projectID, requestID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if req.Status != models.RequestStatusNew || req.Classification != models.ClassificationPending {
			t.Fatalf("expected new/pending, got %s/%s", req.Status, req.Classification)
		}
	})

	t.Run("restore of a fresh request is a notice", func(t *testing.T) {
		svc, _, _, mockRequest, _ := setupRequestMocks(t)
		stored := models.ClientRequest{ID: requestID, ProjectID: projectID, Status: models.RequestStatusNew, Classification: models.ClassificationPending}

		mockRequest.EXPECT().GetByID(projectID, requestID).Return(stored, nil)

		_, err := svc.Restore(projectID, requestID)
		var ne *services.NoticeError
		if !errors.As(err, &ne) {
			t.Fatalf("expected NoticeError, got %v", err)
		}
	})
}

func TestRequestList(t *testing.T) {
	svc, _, _, mockRequest, _ := setupRequestMocks(t)
	projectID := uuid.New()

	all := []models.ClientRequest{
		{ID: uuid.New(), ProjectID: projectID, Status: models.RequestStatusNew, Classification: models.ClassificationPending},
		{ID: uuid.New(), ProjectID: projectID, Status: models.RequestStatusAnalyzed, Classification: models.ClassificationInScope},
		{ID: uuid.New(), ProjectID: projectID, Status: models.RequestStatusAddressed, Classification: models.ClassificationInScope},
	}
	// one repo read; the filtered views below are served from cache
	mockRequest.EXPECT().ListByProjectID(projectID).Return(all, nil).Times(1)

	got, err := svc.List(projectID, dto.RequestListFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 requests, got %d", len(got))
	}

	active, err := svc.List(projectID, dto.RequestListFilter{ActiveOnly: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("expected 2 active requests, got %d", len(active))
	}

	inScope, err := svc.List(projectID, dto.RequestListFilter{Classification: "in_scope"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(inScope) != 2 {
		t.Fatalf("expected 2 in_scope requests, got %d", len(inScope))
	}
}

func TestRequestUpdateScopeItemGuard(t *testing.T) {
	svc, _, mockScopeItem, mockRequest, _ := setupRequestMocks(t)
	projectID := uuid.New()
	requestID := uuid.New()
	otherProject := uuid.New()
	itemID := uuid.New()

	stored := models.ClientRequest{ID: requestID, ProjectID: projectID, Status: models.RequestStatusNew}
	mockRequest.EXPECT().GetByID(projectID, requestID).Return(stored, nil)
	mockScopeItem.EXPECT().GetByID(itemID).Return(models.ScopeItem{ID: itemID, ProjectID: otherProject}, nil)

	_, err := svc.Update(projectID, requestID, dto.UpdateRequestDTO{LinkedScopeItemID: &itemID})
	var te *services.TransitionError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransitionError for cross-project scope item, got %v", err)
	}
}

func TestRequestSuggest(t *testing.T) {
	svc, mockProject, _, mockRequest, _ := setupRequestMocks(t)
	projectID := uuid.New()
	requestID := uuid.New()

	stored := models.ClientRequest{ID: requestID, ProjectID: projectID, Content: "Can you also add a quick addition? Thanks!"}
	mockRequest.EXPECT().GetByID(projectID, requestID).Return(stored, nil)
	mockProject.EXPECT().GetByID(projectID).Return(models.Project{ID: projectID, HourlyRate: 75}, nil)

	s, err := svc.Suggest(projectID, requestID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Indicators) != 3 {
		t.Fatalf("expected 3 indicators, got %v", s.Indicators)
	}
	if s.EstimatedHours != 2 {
		t.Fatalf("expected 2 hours, got %v", s.EstimatedHours)
	}
	if s.Amount != 150 {
		t.Fatalf("expected amount 150, got %v", s.Amount)
	}
}

func TestCreateProposalFromRequest(t *testing.T) {
	projectID := uuid.New()
	requestID := uuid.New()

	t.Run("saga completes", func(t *testing.T) {
		svc, _, _, mockRequest, mockProposal := setupRequestMocks(t)
		stored := models.ClientRequest{ID: requestID, ProjectID: projectID, Title: "Extra page", Content: "One more page please", AnalysisReasoning: "Request contains scope creep indicators: one more thing."}

		mockRequest.EXPECT().GetByID(projectID, requestID).Return(stored, nil)
		mockProposal.EXPECT().Create(gomock.Any()).DoAndReturn(func(p *models.Proposal) error {
			if p.Title != "Proposal: Extra page" {
				t.Fatalf("unexpected proposal title: %q", p.Title)
			}
			if p.Status != models.ProposalStatusDraft {
				t.Fatalf("expected draft, got %s", p.Status)
			}
			if p.SourceRequestID == nil || *p.SourceRequestID != requestID {
				t.Fatalf("expected source request back-reference, got %v", p.SourceRequestID)
			}
			if !strings.Contains(p.Description, "One more page please") {
				t.Fatalf("description missing request content: %q", p.Description)
			}
			if !strings.Contains(p.Description, "Analysis:") {
				t.Fatalf("description missing analysis section: %q", p.Description)
			}
			return nil
		})
		mockRequest.EXPECT().Update(gomock.Any()).DoAndReturn(func(r *models.ClientRequest) error {
			if r.Status != models.RequestStatusProposalSent {
				t.Fatalf("expected proposal_sent, got %s", r.Status)
			}
			return nil
		})

		proposal, err := svc.CreateProposalFrom(projectID, requestID, dto.ProposalFromRequestDTO{Amount: 500})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if proposal.Amount != 500 {
			t.Fatalf("expected amount 500, got %v", proposal.Amount)
		}
	})

	t.Run("step-two failure reports partial completion", func(t *testing.T) {
		svc, _, _, mockRequest, mockProposal := setupRequestMocks(t)
		stored := models.ClientRequest{ID: requestID, ProjectID: projectID, Title: "Extra page", Content: "One more page please"}

		mockRequest.EXPECT().GetByID(projectID, requestID).Return(stored, nil)
		mockProposal.EXPECT().Create(gomock.Any()).Return(nil)
		mockRequest.EXPECT().Update(gomock.Any()).Return(errors.New("connection reset"))

		proposal, err := svc.CreateProposalFrom(projectID, requestID, dto.ProposalFromRequestDTO{Amount: 500})
		var pe *services.PartialCompletionError
		if !errors.As(err, &pe) {
			t.Fatalf("expected PartialCompletionError, got %v", err)
		}
		if pe.ProposalID != proposal.ID.String() {
			t.Fatalf("error should carry the created proposal ID: %s vs %s", pe.ProposalID, proposal.ID)
		}
	})
}
