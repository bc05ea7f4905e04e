package services

import (
	"fmt"

	portsrepo "github.com/SscSPs/finai_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finai_backend/internal/core/ports/services"
	"github.com/SscSPs/finai_backend/internal/core/projection"
	"github.com/SscSPs/finai_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// generator may be nil, in which case the advisor reports itself unavailable.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, generator portssvc.TextGenerator) (*portssvc.ServiceContainer, error) {
	yearlyMode, err := projection.ParseYearlyMode(cfg.ProjectionYearlyMode)
	if err != nil {
		return nil, fmt.Errorf("invalid PROJECTION_YEARLY_MODE: %w", err)
	}

	container := &portssvc.ServiceContainer{}
	container.User = NewUserService(repos.UserRepo)
	container.Transaction = NewTransactionService(repos.TransactionRepo, WithYearlyMode(yearlyMode), WithStartAtOrigin(cfg.ProjectionStartAtOrigin))
	container.Advisor = NewAdvisorService(repos.TransactionRepo, generator)
	container.TokenService = NewTokenService(cfg, container.User)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)

	return container, nil
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.TransactionSvcFacade = (*transactionService)(nil)
	_ portssvc.UserSvcFacade        = (*userService)(nil)
	_ portssvc.AdvisorSvcFacade     = (*advisorService)(nil)
	_ portssvc.TokenSvcFacade       = (*tokenService)(nil)
	_ portssvc.GoogleOAuthSvcFacade = (*googleOAuthService)(nil)
)
