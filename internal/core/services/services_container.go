package services

import (
	portsrepo "github.com/SscSPs/crm_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/crm_backend/internal/core/ports/services"
	"github.com/SscSPs/crm_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Client = NewClientService(repos.ClientRepo)

	// The ledger checks client and assignee references through the read side of the other repositories
	container.Deal = NewDealService(
		repos.DealRepo,
		WithClientLookup(repos.ClientRepo),
		WithUserLookup(repos.UserRepo),
	)

	container.Auth = NewAuthService(cfg, container.User)

	return container
}
