package services

import (
	"log/slog"

	portsrepo "github.com/pennywiseapp/penny_wise_app/internal/core/ports/repositories"
	portssvc "github.com/pennywiseapp/penny_wise_app/internal/core/ports/services"
	"github.com/pennywiseapp/penny_wise_app/internal/core/recon"
	"github.com/pennywiseapp/penny_wise_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Obligation = NewObligationService(repos.ObligationRepo, repos.AccountRepo)
	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.AccountRepo)
	container.Schedule = NewScheduleService(repos.ObligationRepo, repos.LinkRepo)

	matcher := recon.NewMatcher(cfg.MatcherConfig(), recon.NewResolver(loadAliases(cfg)))
	container.Reconciliation = NewReconciliationService(
		repos.ObligationRepo,
		repos.TransactionRepo,
		repos.LinkRepo,
		matcher,
	)

	return container
}

// loadAliases reads the configured provider alias dictionary, falling back
// to the built-in defaults when the file is absent or unreadable.
func loadAliases(cfg *config.Config) recon.AliasDictionary {
	if cfg.AliasDictPath == "" {
		return recon.DefaultAliasDictionary()
	}
	dict, err := recon.LoadAliasDictionary(cfg.AliasDictPath)
	if err != nil {
		slog.Warn("Failed to load alias dictionary, using defaults",
			slog.String("path", cfg.AliasDictPath),
			slog.String("error", err.Error()))
		return recon.DefaultAliasDictionary()
	}
	return dict
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.ObligationSvcFacade     = (*obligationService)(nil)
	_ portssvc.TransactionSvcFacade    = (*transactionService)(nil)
	_ portssvc.AccountSvcFacade        = (*accountService)(nil)
	_ portssvc.ScheduleSvcFacade       = (*scheduleService)(nil)
	_ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)
)
