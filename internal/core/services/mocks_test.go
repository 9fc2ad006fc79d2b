package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	"github.com/SscSPs/cashbook_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func ptrArg[T any](args mock.Arguments, i int) *T {
	if v := args.Get(i); v != nil {
		return v.(*T)
	}
	return nil
}

func sliceArg[T any](args mock.Arguments, i int) []T {
	if v := args.Get(i); v != nil {
		return v.([]T)
	}
	return nil
}

// --- Transactions ---

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

// --- Users ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	return ptrArg[domain.User](args, 0), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	return ptrArg[domain.User](args, 0), args.Error(1)
}

func (m *MockUserRepository) FindUserByProviderDetails(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error) {
	args := m.Called(ctx, provider, providerUserID)
	return ptrArg[domain.User](args, 0), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, tokenHash string, expiresAt *time.Time) error {
	return m.Called(ctx, userID, tokenHash, expiresAt).Error(0)
}

// --- Businesses ---

type MockBusinessRepository struct {
	mock.Mock
}

func (m *MockBusinessRepository) FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error) {
	args := m.Called(ctx, businessID)
	return ptrArg[domain.Business](args, 0), args.Error(1)
}

func (m *MockBusinessRepository) ListBusinessesForUser(ctx context.Context, userID string) ([]domain.BusinessMembership, error) {
	args := m.Called(ctx, userID)
	return sliceArg[domain.BusinessMembership](args, 0), args.Error(1)
}

func (m *MockBusinessRepository) SaveBusiness(ctx context.Context, business domain.Business, owner domain.BusinessUser) error {
	return m.Called(ctx, business, owner).Error(0)
}

func (m *MockBusinessRepository) FindStaffMember(ctx context.Context, businessID, userID string) (*domain.BusinessUser, error) {
	args := m.Called(ctx, businessID, userID)
	return ptrArg[domain.BusinessUser](args, 0), args.Error(1)
}

func (m *MockBusinessRepository) FindStaffByID(ctx context.Context, businessID, businessUserID string) (*domain.BusinessUser, error) {
	args := m.Called(ctx, businessID, businessUserID)
	return ptrArg[domain.BusinessUser](args, 0), args.Error(1)
}

func (m *MockBusinessRepository) ListStaff(ctx context.Context, businessID string) ([]domain.BusinessUser, error) {
	args := m.Called(ctx, businessID)
	return sliceArg[domain.BusinessUser](args, 0), args.Error(1)
}

func (m *MockBusinessRepository) SaveStaff(ctx context.Context, staff domain.BusinessUser) error {
	return m.Called(ctx, staff).Error(0)
}

func (m *MockBusinessRepository) UpdateStaff(ctx context.Context, staff domain.BusinessUser) error {
	return m.Called(ctx, staff).Error(0)
}

// --- Authorizer ---

type MockAuthorizer struct {
	mock.Mock
}

func (m *MockAuthorizer) AuthorizeMember(ctx context.Context, userID, businessID string, minRole domain.StaffRole) (*domain.BusinessUser, error) {
	args := m.Called(ctx, userID, businessID, minRole)
	return ptrArg[domain.BusinessUser](args, 0), args.Error(1)
}

func (m *MockAuthorizer) BusinessOwner(ctx context.Context, businessID string) (string, error) {
	args := m.Called(ctx, businessID)
	return args.String(0), args.Error(1)
}

// --- Categories ---

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, businessID, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, businessID, categoryID)
	return ptrArg[domain.Category](args, 0), args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context, businessID string, categoryType *domain.CategoryType) ([]domain.Category, error) {
	args := m.Called(ctx, businessID, categoryType)
	return sliceArg[domain.Category](args, 0), args.Error(1)
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	return m.Called(ctx, category).Error(0)
}

// --- Cash entries ---

type MockCashEntryRepository struct {
	mock.Mock
}

func (m *MockCashEntryRepository) FindEntryByID(ctx context.Context, businessID, entryID string) (*domain.CashEntry, error) {
	args := m.Called(ctx, businessID, entryID)
	return ptrArg[domain.CashEntry](args, 0), args.Error(1)
}

func (m *MockCashEntryRepository) ListEntries(ctx context.Context, businessID string, filter domain.CashEntryFilter, limit, offset int) ([]domain.CashEntry, int64, error) {
	args := m.Called(ctx, businessID, filter, limit, offset)
	return sliceArg[domain.CashEntry](args, 0), args.Get(1).(int64), args.Error(2)
}

func (m *MockCashEntryRepository) ListAllEntries(ctx context.Context, businessID string, filter domain.CashEntryFilter) ([]domain.CashEntry, error) {
	args := m.Called(ctx, businessID, filter)
	return sliceArg[domain.CashEntry](args, 0), args.Error(1)
}

func (m *MockCashEntryRepository) BalanceBroughtForward(ctx context.Context, businessID string, filter domain.CashEntryFilter, offset int) (decimal.Decimal, error) {
	args := m.Called(ctx, businessID, filter, offset)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockCashEntryRepository) SummarizeEntries(ctx context.Context, businessID string, filter domain.CashEntryFilter) (domain.CashbookSummary, error) {
	args := m.Called(ctx, businessID, filter)
	return args.Get(0).(domain.CashbookSummary), args.Error(1)
}

func (m *MockCashEntryRepository) CategoryTotals(ctx context.Context, businessID string, filter domain.CashEntryFilter) ([]domain.CategoryTotal, error) {
	args := m.Called(ctx, businessID, filter)
	return sliceArg[domain.CategoryTotal](args, 0), args.Error(1)
}

func (m *MockCashEntryRepository) SaveEntry(ctx context.Context, entry domain.CashEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockCashEntryRepository) UpdateEntry(ctx context.Context, entry domain.CashEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockCashEntryRepository) DeleteEntry(ctx context.Context, businessID, entryID string) error {
	return m.Called(ctx, businessID, entryID).Error(0)
}

// --- Bank ---

type MockBankRepository struct {
	mock.Mock
}

func (m *MockBankRepository) FindBankAccountByID(ctx context.Context, businessID, bankAccountID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, businessID, bankAccountID)
	return ptrArg[domain.BankAccount](args, 0), args.Error(1)
}

func (m *MockBankRepository) ListBankAccounts(ctx context.Context, businessID string) ([]domain.BankAccount, error) {
	args := m.Called(ctx, businessID)
	return sliceArg[domain.BankAccount](args, 0), args.Error(1)
}

func (m *MockBankRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockBankRepository) UpdateBankAccount(ctx context.Context, account domain.BankAccount) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockBankRepository) DeleteBankAccount(ctx context.Context, businessID, bankAccountID string) error {
	return m.Called(ctx, businessID, bankAccountID).Error(0)
}

func (m *MockBankRepository) FindBankTransactionByID(ctx context.Context, bankAccountID, transactionID string) (*domain.BankTransaction, error) {
	args := m.Called(ctx, bankAccountID, transactionID)
	return ptrArg[domain.BankTransaction](args, 0), args.Error(1)
}

func (m *MockBankRepository) ListBankTransactions(ctx context.Context, bankAccountID string, dates domain.DateRange, limit, offset int) ([]domain.BankTransaction, int64, error) {
	args := m.Called(ctx, bankAccountID, dates, limit, offset)
	return sliceArg[domain.BankTransaction](args, 0), args.Get(1).(int64), args.Error(2)
}

func (m *MockBankRepository) ListAllBankTransactions(ctx context.Context, bankAccountID string) ([]domain.BankTransaction, error) {
	args := m.Called(ctx, bankAccountID)
	return sliceArg[domain.BankTransaction](args, 0), args.Error(1)
}

func (m *MockBankRepository) BankTotals(ctx context.Context, bankAccountID string, dates domain.DateRange) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, bankAccountID, dates)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockBankRepository) LockBankAccount(ctx context.Context, businessID, bankAccountID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, businessID, bankAccountID)
	return ptrArg[domain.BankAccount](args, 0), args.Error(1)
}

func (m *MockBankRepository) SaveBankTransaction(ctx context.Context, txn domain.BankTransaction) error {
	return m.Called(ctx, txn).Error(0)
}

func (m *MockBankRepository) DeleteBankTransaction(ctx context.Context, bankAccountID, transactionID string) error {
	return m.Called(ctx, bankAccountID, transactionID).Error(0)
}

func (m *MockBankRepository) UpdateBalances(ctx context.Context, bankAccountID string, balanceAfter map[string]decimal.Decimal, currentBalance decimal.Decimal) error {
	return m.Called(ctx, bankAccountID, balanceAfter, currentBalance).Error(0)
}

// --- Parties ---

type MockPartyRepository struct {
	mock.Mock
}

func (m *MockPartyRepository) FindPartyByID(ctx context.Context, businessID, partyID string) (*domain.Party, error) {
	args := m.Called(ctx, businessID, partyID)
	return ptrArg[domain.Party](args, 0), args.Error(1)
}

func (m *MockPartyRepository) LockPartyByID(ctx context.Context, businessID, partyID string) (*domain.Party, error) {
	args := m.Called(ctx, businessID, partyID)
	return ptrArg[domain.Party](args, 0), args.Error(1)
}

func (m *MockPartyRepository) ListParties(ctx context.Context, businessID string, partyType *domain.PartyType, search string, limit, offset int) ([]domain.Party, int64, error) {
	args := m.Called(ctx, businessID, partyType, search, limit, offset)
	return sliceArg[domain.Party](args, 0), args.Get(1).(int64), args.Error(2)
}

func (m *MockPartyRepository) SaveParty(ctx context.Context, party domain.Party) error {
	return m.Called(ctx, party).Error(0)
}

func (m *MockPartyRepository) UpdateParty(ctx context.Context, party domain.Party) error {
	return m.Called(ctx, party).Error(0)
}

func (m *MockPartyRepository) SetPartyBalance(ctx context.Context, partyID string, balance decimal.Decimal) error {
	return m.Called(ctx, partyID, balance).Error(0)
}

type MockPartyBalance struct {
	mock.Mock
}

func (m *MockPartyBalance) RecalculateBalance(ctx context.Context, businessID, partyID string) error {
	return m.Called(ctx, businessID, partyID).Error(0)
}

// --- Change requests ---

type MockChangeRequestRepository struct {
	mock.Mock
}

func (m *MockChangeRequestRepository) FindChangeRequestByID(ctx context.Context, businessID, requestID string) (*domain.ChangeRequest, error) {
	args := m.Called(ctx, businessID, requestID)
	return ptrArg[domain.ChangeRequest](args, 0), args.Error(1)
}

func (m *MockChangeRequestRepository) FindPendingRequestForEntry(ctx context.Context, businessID, entryID string) (*domain.ChangeRequest, error) {
	args := m.Called(ctx, businessID, entryID)
	return ptrArg[domain.ChangeRequest](args, 0), args.Error(1)
}

func (m *MockChangeRequestRepository) ListChangeRequests(ctx context.Context, businessID string, filter domain.ChangeRequestFilter, limit, offset int) ([]domain.ChangeRequest, int64, error) {
	args := m.Called(ctx, businessID, filter, limit, offset)
	return sliceArg[domain.ChangeRequest](args, 0), args.Get(1).(int64), args.Error(2)
}

func (m *MockChangeRequestRepository) SummarizeChangeRequests(ctx context.Context, businessID string, requestedBy *string) (domain.ChangeRequestSummary, error) {
	args := m.Called(ctx, businessID, requestedBy)
	return args.Get(0).(domain.ChangeRequestSummary), args.Error(1)
}

func (m *MockChangeRequestRepository) SaveChangeRequest(ctx context.Context, req domain.ChangeRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockChangeRequestRepository) UpdateReviewedRequest(ctx context.Context, req domain.ChangeRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockChangeRequestRepository) DeletePendingRequest(ctx context.Context, businessID, requestID string) error {
	return m.Called(ctx, businessID, requestID).Error(0)
}

type MockChangeRequestWriter struct {
	mock.Mock
}

func (m *MockChangeRequestWriter) CreateChangeRequest(ctx context.Context, businessID string, req dto.CreateChangeRequestRequest, requesterID string) (*domain.ChangeRequest, error) {
	args := m.Called(ctx, businessID, req, requesterID)
	return ptrArg[domain.ChangeRequest](args, 0), args.Error(1)
}

func (m *MockChangeRequestWriter) ReviewChangeRequest(ctx context.Context, businessID, requestID string, req dto.ReviewChangeRequestRequest, reviewerID string) (*domain.ChangeRequest, error) {
	args := m.Called(ctx, businessID, requestID, req, reviewerID)
	return ptrArg[domain.ChangeRequest](args, 0), args.Error(1)
}

func (m *MockChangeRequestWriter) WithdrawChangeRequest(ctx context.Context, businessID, requestID, userID string) error {
	return m.Called(ctx, businessID, requestID, userID).Error(0)
}

// --- Notifications ---

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) FindNotificationByID(ctx context.Context, notificationID string) (*domain.Notification, error) {
	args := m.Called(ctx, notificationID)
	return ptrArg[domain.Notification](args, 0), args.Error(1)
}

func (m *MockNotificationRepository) ListNotifications(ctx context.Context, recipientUserID string, filter domain.NotificationFilter, limit, offset int) ([]domain.Notification, int64, error) {
	args := m.Called(ctx, recipientUserID, filter, limit, offset)
	return sliceArg[domain.Notification](args, 0), args.Get(1).(int64), args.Error(2)
}

func (m *MockNotificationRepository) SummarizeNotifications(ctx context.Context, recipientUserID string, businessID *string) (domain.NotificationSummary, error) {
	args := m.Called(ctx, recipientUserID, businessID)
	return args.Get(0).(domain.NotificationSummary), args.Error(1)
}

func (m *MockNotificationRepository) SaveNotification(ctx context.Context, n domain.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockNotificationRepository) MarkNotificationRead(ctx context.Context, notificationID, recipientUserID string, at time.Time) (bool, error) {
	args := m.Called(ctx, notificationID, recipientUserID, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockNotificationRepository) MarkAllNotificationsRead(ctx context.Context, recipientUserID string, businessID *string, at time.Time) (int64, error) {
	args := m.Called(ctx, recipientUserID, businessID, at)
	return args.Get(0).(int64), args.Error(1)
}

type MockSummaryCache struct {
	mock.Mock
}

func (m *MockSummaryCache) Get(ctx context.Context, recipientUserID, scope string) (*domain.NotificationSummary, int64, bool) {
	args := m.Called(ctx, recipientUserID, scope)
	return ptrArg[domain.NotificationSummary](args, 0), args.Get(1).(int64), args.Bool(2)
}

func (m *MockSummaryCache) Set(ctx context.Context, recipientUserID, scope string, generation int64, summary domain.NotificationSummary) {
	m.Called(ctx, recipientUserID, scope, generation, summary)
}

func (m *MockSummaryCache) Invalidate(ctx context.Context, recipientUserID string) {
	m.Called(ctx, recipientUserID)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) OnChangeRequestCreated(ctx context.Context, req domain.ChangeRequest, ownerUserID string) (*domain.Notification, error) {
	args := m.Called(ctx, req, ownerUserID)
	return ptrArg[domain.Notification](args, 0), args.Error(1)
}

func (m *MockNotifier) OnChangeRequestReviewed(ctx context.Context, req domain.ChangeRequest) (*domain.Notification, error) {
	args := m.Called(ctx, req)
	return ptrArg[domain.Notification](args, 0), args.Error(1)
}

func (m *MockNotifier) AfterCommit(ctx context.Context, notifications ...*domain.Notification) {
	m.Called(ctx, notifications)
}

type MockLocker struct {
	mock.Mock
	released int
}

func (m *MockLocker) Obtain(ctx context.Context, key string) (func(context.Context), error) {
	args := m.Called(ctx, key)
	if err := args.Error(0); err != nil {
		return nil, err
	}
	return func(context.Context) { m.released++ }, nil
}
