package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TxManager         TransactionManager
	UserRepo          UserRepositoryFacade
	BusinessRepo      BusinessRepositoryFacade
	CategoryRepo      CategoryRepositoryFacade
	CashEntryRepo     CashEntryRepositoryFacade
	BankRepo          BankRepositoryFacade
	PartyRepo         PartyRepositoryFacade
	ChangeRequestRepo ChangeRequestRepositoryFacade
	NotificationRepo  NotificationRepositoryFacade

	// Optional redis-backed helpers. Nil values fall back to no-op implementations.
	NotificationCache NotificationSummaryCache
	ReviewLocker      Locker
}
