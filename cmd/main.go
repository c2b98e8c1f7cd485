package main

import (
	"context"
	"net/http"

	"github.com/rs/cors"

	"github.com/pentlavallir/Landscaping-US/internal/app"
	"github.com/pentlavallir/Landscaping-US/internal/config"
	"github.com/pentlavallir/Landscaping-US/internal/controllers"
	"github.com/pentlavallir/Landscaping-US/internal/migrations"
	"github.com/pentlavallir/Landscaping-US/internal/repositories"
	"github.com/pentlavallir/Landscaping-US/internal/seeding"
	"github.com/pentlavallir/Landscaping-US/internal/services"
	"github.com/pentlavallir/Landscaping-US/internal/storage"
	"github.com/pentlavallir/Landscaping-US/internal/utils"
)

func main() {
	cfg := config.LoadConfig()
	utils.InitLogger(cfg.AppName)

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize application:", err)
	}
	defer application.Close()

	if err := migrations.Run(context.Background(), application.DB); err != nil {
		utils.Logger.Fatal("Failed to run migrations:", err)
	}

	store, err := storage.NewStore(cfg.UploadsDir)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize upload storage:", err)
	}

	// Repositories
	propRepo := repositories.NewPropertyRepository(application.DB)
	serviceRepo := repositories.NewPropertyServiceRepository(application.DB)
	userRepo := repositories.NewUserRepository(application.DB)
	ticketRepo := repositories.NewTicketRepository(application.DB)
	eventRepo := repositories.NewServiceEventRepository(application.DB)
	personnelRepo := repositories.NewServicePersonRepository(application.DB)
	priceRepo := repositories.NewPriceMasterRepository(application.DB)
	regionRepo := repositories.NewRegionRepository(application.DB)
	quoteRepo := repositories.NewQuoteRepository(application.DB)
	svcAttRepo := repositories.NewServiceAttachmentRepository(application.DB)
	ticketAttRepo := repositories.NewTicketAttachmentRepository(application.DB)

	if err := seeding.Run(context.Background(), seeding.Repos{
		Properties: propRepo,
		Users:      userRepo,
		Services:   serviceRepo,
		Prices:     priceRepo,
		Personnel:  personnelRepo,
		Events:     eventRepo,
		Tickets:    ticketRepo,
		Regions:    regionRepo,
	}); err != nil {
		utils.Logger.Fatal("Failed to seed demo data:", err)
	}

	// Services
	notifier := services.NewNotificationService(services.NewEmailSender(cfg), services.NewSMSSender(cfg), userRepo)
	authService := services.NewAuthService(userRepo, cfg)
	portfolioService := services.NewPortfolioService(propRepo, serviceRepo, notifier)
	reportService := services.NewReportService(propRepo, serviceRepo, userRepo, ticketRepo, eventRepo, personnelRepo, priceRepo)
	ticketService := services.NewTicketService(ticketRepo)
	attachmentService := services.NewAttachmentService(store, svcAttRepo, ticketAttRepo, serviceRepo, ticketRepo)
	eventService := services.NewEventService(eventRepo, propRepo, serviceRepo, personnelRepo, notifier)
	personnelService := services.NewPersonnelService(personnelRepo)
	pricingService := services.NewPricingService(priceRepo)
	userService := services.NewUserService(userRepo, propRepo)
	quoteService := services.NewQuoteService(quoteRepo, regionRepo, propRepo, serviceRepo, notifier)
	chatService := services.NewChatService(cfg.OpenAIAPIKey, propRepo, serviceRepo)

	// Router setup
	router := controllers.NewRouter(controllers.RouterDeps{
		Auth:        authService,
		Health:      controllers.NewHealthController(application),
		Login:       controllers.NewAuthController(authService),
		Portfolio:   controllers.NewPortfolioController(portfolioService),
		Attachments: controllers.NewAttachmentController(attachmentService),
		Tickets:     controllers.NewTicketController(ticketService),
		Events:      controllers.NewEventController(eventService),
		Personnel:   controllers.NewPersonnelController(personnelService),
		Prices:      controllers.NewPriceController(pricingService),
		Users:       controllers.NewUserController(userService),
		Reports:     controllers.NewReportController(reportService),
		Quotes:      controllers.NewQuoteController(quoteService),
		Owner:       controllers.NewOwnerController(portfolioService, reportService, ticketService, attachmentService),
		Chat:        controllers.NewChatController(chatService, userService),
	})

	co := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("Server failed to start:", err)
	}
}
