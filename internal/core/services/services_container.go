package services

import (
	portsrepo "github.com/SscSPs/cashbook_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cashbook_backend/internal/core/ports/services"
	"github.com/SscSPs/cashbook_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Initialize business service first since every other service authorizes through it
	container.Business = NewBusinessService(repos.BusinessRepo, repos.UserRepo)
	authorizer := container.Business.(portssvc.BusinessAuthorizerSvc)

	container.User = NewUserService(repos.UserRepo)
	container.TokenService = NewTokenService(cfg, repos.UserRepo)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	container.Category = NewCategoryService(repos.CategoryRepo, authorizer)
	container.Party = NewPartyService(repos.TxManager, repos.PartyRepo, repos.CashEntryRepo, authorizer)
	container.Notification = NewNotificationService(repos.NotificationRepo, WithSummaryCache(repos.NotificationCache))

	container.ChangeRequest = NewChangeRequestService(
		repos.TxManager,
		repos.ChangeRequestRepo,
		repos.CashEntryRepo,
		repos.CategoryRepo,
		repos.PartyRepo,
		repos.UserRepo,
		container.Party,
		container.Notification,
		WithBusinessAuthorizer(authorizer),
		WithReviewLocker(repos.ReviewLocker),
	)

	container.Cashbook = NewCashbookService(
		repos.TxManager,
		repos.CashEntryRepo,
		repos.CategoryRepo,
		repos.PartyRepo,
		container.Party,
		container.ChangeRequest,
		WithCashbookAuthorizer(authorizer),
	)

	container.Bank = NewBankService(repos.TxManager, repos.BankRepo, authorizer)
	container.Report = NewReportService(repos.CashEntryRepo, repos.BankRepo, repos.BusinessRepo, container.Party, authorizer)

	return container
}
