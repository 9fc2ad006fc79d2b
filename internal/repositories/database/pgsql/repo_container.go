package pgsql

import (
	portsrepo "github.com/SscSPs/cashbook_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every postgres repository onto one pool. The redis-backed
// helpers of the provider are left nil for the caller to fill in.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:         &BaseRepository{Pool: dbPool},
		UserRepo:          newPgxUserRepository(dbPool),
		BusinessRepo:      newPgxBusinessRepository(dbPool),
		CategoryRepo:      newPgxCategoryRepository(dbPool),
		CashEntryRepo:     newPgxCashEntryRepository(dbPool),
		BankRepo:          newPgxBankRepository(dbPool),
		PartyRepo:         newPgxPartyRepository(dbPool),
		ChangeRequestRepo: newPgxChangeRequestRepository(dbPool),
		NotificationRepo:  newPgxNotificationRepository(dbPool),
	}
}
