package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/EmilyHart/StudioPilot/app/controllers"
	"github.com/EmilyHart/StudioPilot/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	// token-authenticated client link, no API key required
	app.Get("/proposals/view", controllers.HandleViewProposal)

	// API v1 routes
	v1 := api.Group("/v1", middleware.APIKeyAuthMiddleware())

	// leads and pipeline
	v1.Get("/leads", controllers.HandleListLeads)
	v1.Post("/leads", controllers.HandleCreateLead)
	v1.Get("/leads/pipeline", controllers.HandleLeadPipeline)
	v1.Get("/leads/:id", controllers.HandleGetLead)
	v1.Put("/leads/:id", controllers.HandleUpdateLead)
	v1.Delete("/leads/:id", controllers.HandleDeleteLead)

	// catalog
	v1.Get("/catalog", controllers.HandleListCatalog)
	v1.Post("/catalog", controllers.HandleCreateCatalogItem)
	v1.Get("/catalog/grouped", controllers.HandleGroupedCatalog)
	v1.Get("/catalog/:uuid", controllers.HandleGetCatalogItem)
	v1.Put("/catalog/:uuid", controllers.HandleUpdateCatalogItem)
	v1.Delete("/catalog/:uuid", controllers.HandleDeleteCatalogItem)

	// studio sessions
	v1.Get("/sessions", controllers.HandleListSessions)
	v1.Post("/sessions", controllers.HandleCreateSession)
	v1.Get("/sessions/upcoming", controllers.HandleUpcomingSessions)
	v1.Get("/sessions/:id", controllers.HandleGetSession)
	v1.Put("/sessions/:id", controllers.HandleUpdateSession)
	v1.Delete("/sessions/:id", controllers.HandleDeleteSession)

	// experiences
	v1.Get("/experiences", controllers.HandleListExperiences)
	v1.Post("/experiences", controllers.HandleCreateExperience)
	v1.Post("/experiences/preview", controllers.HandlePreviewExperience)
	v1.Get("/experiences/templates", controllers.HandleListExperienceTemplates)
	v1.Get("/experiences/:uuid", controllers.HandleGetExperience)
	v1.Put("/experiences/:uuid", controllers.HandleUpdateExperience)
	v1.Delete("/experiences/:uuid", controllers.HandleDeleteExperience)
	v1.Post("/experiences/:uuid/assign/:leadID", controllers.HandleAssignExperience)

	// proposals
	v1.Get("/proposals", controllers.HandleListProposals)
	v1.Post("/proposals", controllers.HandleCreateProposal)
	v1.Get("/proposals/:uuid", controllers.HandleGetProposal)
	v1.Post("/proposals/:uuid/send", controllers.HandleSendProposal)
	v1.Put("/proposals/:uuid/status", controllers.HandleUpdateProposalStatus)
	v1.Delete("/proposals/:uuid", controllers.HandleDeleteProposal)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
