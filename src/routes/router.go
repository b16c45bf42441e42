package routes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/scopetrack/scopetrack-go/src/analyzer"
	"github.com/scopetrack/scopetrack-go/src/cache"
	"github.com/scopetrack/scopetrack-go/src/config"
	"github.com/scopetrack/scopetrack-go/src/events"
	"github.com/scopetrack/scopetrack-go/src/handlers"
	"github.com/scopetrack/scopetrack-go/src/middleware"
	"github.com/scopetrack/scopetrack-go/src/repositories"
	"github.com/scopetrack/scopetrack-go/src/services"
	"github.com/scopetrack/scopetrack-go/src/storage"
)

func RegisterRoutes(r *gin.Engine, store *cache.Store, hub *events.Hub) {

	// init
	phrases := analyzer.DefaultPhrases()
	if config.IndicatorFile != "" {
		loaded, err := analyzer.LoadPhrases(config.IndicatorFile)
		if err != nil {
			log.Printf("Failed to load indicator file %s, using defaults: %v", config.IndicatorFile, err)
		} else {
			phrases = loaded
		}
	}

	var attachments *storage.AttachmentStore
	if config.MinioEndpoint != "" {
		var err error
		attachments, err = storage.NewAttachmentStore()
		if err != nil {
			log.Printf("Attachment storage unavailable: %v", err)
			attachments = nil
		}
	}

	repos_instance := repositories.New()
	services_instance := services.New(repos_instance, store, hub, analyzer.New(phrases))
	handlers_instance := handlers.New(services_instance, attachments)

	// setup
	r.Use(middleware.CORSMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/ws/events", handlers.EventsWebSocketHandler(hub))

	projects := r.Group("/projects")
	{
		projects.GET("", handlers_instance.Project.GetProjects)
		projects.POST("", handlers_instance.Project.CreateProject)
		projects.GET("/:id", handlers_instance.Project.GetProjectByID)
		projects.PUT("/:id", handlers_instance.Project.UpdateProject)
		projects.DELETE("/:id", handlers_instance.Project.DeleteProject)

		projects.GET("/:id/dashboard", handlers_instance.Stats.GetDashboard)

		projects.GET("/:id/scope-items", handlers_instance.ScopeItem.ListScopeItems)
		projects.POST("/:id/scope-items", handlers_instance.ScopeItem.CreateScopeItem)

		requests := projects.Group("/:id/requests")
		{
			requests.GET("", handlers_instance.Request.ListRequests)
			requests.POST("", handlers_instance.Request.CreateRequest)
			requests.GET("/stats", handlers_instance.Stats.GetRequestStats)
			requests.GET("/:rid", handlers_instance.Request.GetRequest)
			requests.PATCH("/:rid", handlers_instance.Request.UpdateRequest)
			requests.DELETE("/:rid", handlers_instance.Request.DeleteRequest)
			requests.POST("/:rid/classify", handlers_instance.Request.ClassifyRequest)
			requests.POST("/:rid/analyze", handlers_instance.Request.AnalyzeRequest)
			requests.POST("/:rid/addressed", handlers_instance.Request.MarkAddressed)
			requests.POST("/:rid/dismiss", handlers_instance.Request.DismissRequest)
			requests.POST("/:rid/restore", handlers_instance.Request.RestoreRequest)
			requests.GET("/:rid/suggestion", handlers_instance.Request.GetSuggestion)
			requests.POST("/:rid/create-proposal", handlers_instance.Request.CreateProposalFromRequest)
			requests.POST("/:rid/attachment", handlers_instance.Request.UploadAttachment)
		}

		proposals := projects.Group("/:id/proposals")
		{
			proposals.GET("", handlers_instance.Proposal.ListProposals)
			proposals.POST("", handlers_instance.Proposal.CreateProposal)
			proposals.GET("/stats", handlers_instance.Stats.GetProposalStats)
			proposals.GET("/:rid", handlers_instance.Proposal.GetProposal)
			proposals.PATCH("/:rid", handlers_instance.Proposal.UpdateProposal)
			proposals.DELETE("/:rid", handlers_instance.Proposal.DeleteProposal)
			proposals.POST("/:rid/send", handlers_instance.Proposal.SendProposal)
			proposals.POST("/:rid/accept", handlers_instance.Proposal.AcceptProposal)
			proposals.POST("/:rid/decline", handlers_instance.Proposal.DeclineProposal)
			proposals.POST("/:rid/duplicate", handlers_instance.Proposal.DuplicateProposal)
		}
	}

	scopeItems := r.Group("/scope-items")
	{
		scopeItems.PUT("/:id", handlers_instance.ScopeItem.UpdateScopeItem)
		scopeItems.DELETE("/:id", handlers_instance.ScopeItem.DeleteScopeItem)
	}
}
