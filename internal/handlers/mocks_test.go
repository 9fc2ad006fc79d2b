package handlers_test

import (
	"context"

	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	portssvc "github.com/SscSPs/cashbook_backend/internal/core/ports/services"
	"github.com/SscSPs/cashbook_backend/internal/dto"
	"github.com/SscSPs/cashbook_backend/internal/utils/pagination"
	"github.com/stretchr/testify/mock"
)

func ptrArg[T any](args mock.Arguments, i int) *T {
	if v := args.Get(i); v != nil {
		return v.(*T)
	}
	return nil
}

// --- Mock ChangeRequestService ---
type MockChangeRequestService struct {
	mock.Mock
}

func (m *MockChangeRequestService) GetChangeRequest(ctx context.Context, businessID, requestID, userID string) (*domain.ChangeRequest, error) {
	args := m.Called(ctx, businessID, requestID, userID)
	return ptrArg[domain.ChangeRequest](args, 0), args.Error(1)
}

func (m *MockChangeRequestService) ListChangeRequests(ctx context.Context, businessID string, params dto.ListChangeRequestsParams, userID string) (*pagination.Page[domain.ChangeRequest], error) {
	args := m.Called(ctx, businessID, params, userID)
	return ptrArg[pagination.Page[domain.ChangeRequest]](args, 0), args.Error(1)
}

func (m *MockChangeRequestService) ListMyChangeRequests(ctx context.Context, businessID string, params dto.ListChangeRequestsParams, userID string) (*pagination.Page[domain.ChangeRequest], error) {
	args := m.Called(ctx, businessID, params, userID)
	return ptrArg[pagination.Page[domain.ChangeRequest]](args, 0), args.Error(1)
}

func (m *MockChangeRequestService) GetSummary(ctx context.Context, businessID, userID string) (*domain.ChangeRequestSummary, error) {
	args := m.Called(ctx, businessID, userID)
	return ptrArg[domain.ChangeRequestSummary](args, 0), args.Error(1)
}

func (m *MockChangeRequestService) CreateChangeRequest(ctx context.Context, businessID string, req dto.CreateChangeRequestRequest, requesterID string) (*domain.ChangeRequest, error) {
	args := m.Called(ctx, businessID, req, requesterID)
	return ptrArg[domain.ChangeRequest](args, 0), args.Error(1)
}

func (m *MockChangeRequestService) ReviewChangeRequest(ctx context.Context, businessID, requestID string, req dto.ReviewChangeRequestRequest, reviewerID string) (*domain.ChangeRequest, error) {
	args := m.Called(ctx, businessID, requestID, req, reviewerID)
	return ptrArg[domain.ChangeRequest](args, 0), args.Error(1)
}

func (m *MockChangeRequestService) WithdrawChangeRequest(ctx context.Context, businessID, requestID, userID string) error {
	return m.Called(ctx, businessID, requestID, userID).Error(0)
}

var _ portssvc.ChangeRequestSvcFacade = (*MockChangeRequestService)(nil)

// --- Mock NotificationService ---
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) OnChangeRequestCreated(ctx context.Context, req domain.ChangeRequest, ownerUserID string) (*domain.Notification, error) {
	args := m.Called(ctx, req, ownerUserID)
	return ptrArg[domain.Notification](args, 0), args.Error(1)
}

func (m *MockNotificationService) OnChangeRequestReviewed(ctx context.Context, req domain.ChangeRequest) (*domain.Notification, error) {
	args := m.Called(ctx, req)
	return ptrArg[domain.Notification](args, 0), args.Error(1)
}

func (m *MockNotificationService) AfterCommit(ctx context.Context, notifications ...*domain.Notification) {
	m.Called(ctx, notifications)
}

func (m *MockNotificationService) ListNotifications(ctx context.Context, params dto.ListNotificationsParams, userID string) (*pagination.Page[domain.Notification], error) {
	args := m.Called(ctx, params, userID)
	return ptrArg[pagination.Page[domain.Notification]](args, 0), args.Error(1)
}

func (m *MockNotificationService) GetSummary(ctx context.Context, businessID string, userID string) (*domain.NotificationSummary, error) {
	args := m.Called(ctx, businessID, userID)
	return ptrArg[domain.NotificationSummary](args, 0), args.Error(1)
}

func (m *MockNotificationService) MarkAsRead(ctx context.Context, notificationID, userID string) (*domain.Notification, error) {
	args := m.Called(ctx, notificationID, userID)
	return ptrArg[domain.Notification](args, 0), args.Error(1)
}

func (m *MockNotificationService) MarkAllAsRead(ctx context.Context, businessID string, userID string) (int64, error) {
	args := m.Called(ctx, businessID, userID)
	return args.Get(0).(int64), args.Error(1)
}

var _ portssvc.NotificationSvcFacade = (*MockNotificationService)(nil)

// --- Mock CashbookService ---
type MockCashbookService struct {
	mock.Mock
}

func (m *MockCashbookService) GetEntry(ctx context.Context, businessID, entryID, userID string) (*domain.CashEntry, error) {
	args := m.Called(ctx, businessID, entryID, userID)
	return ptrArg[domain.CashEntry](args, 0), args.Error(1)
}

func (m *MockCashbookService) ListEntries(ctx context.Context, businessID string, params dto.ListCashEntriesParams, userID string) (*dto.CashbookPage, error) {
	args := m.Called(ctx, businessID, params, userID)
	return ptrArg[dto.CashbookPage](args, 0), args.Error(1)
}

func (m *MockCashbookService) CreateEntry(ctx context.Context, businessID string, req dto.CreateCashEntryRequest, userID string) (*domain.CashEntry, error) {
	args := m.Called(ctx, businessID, req, userID)
	return ptrArg[domain.CashEntry](args, 0), args.Error(1)
}

func (m *MockCashbookService) UpdateEntry(ctx context.Context, businessID, entryID string, req dto.UpdateCashEntryRequest, userID string) (*dto.MutationResult, error) {
	args := m.Called(ctx, businessID, entryID, req, userID)
	return ptrArg[dto.MutationResult](args, 0), args.Error(1)
}

func (m *MockCashbookService) DeleteEntry(ctx context.Context, businessID, entryID string, reason string, userID string) (*dto.MutationResult, error) {
	args := m.Called(ctx, businessID, entryID, reason, userID)
	return ptrArg[dto.MutationResult](args, 0), args.Error(1)
}

var _ portssvc.CashbookSvcFacade = (*MockCashbookService)(nil)

// --- Mock ReportService ---
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) GetSummary(ctx context.Context, businessID string, dates domain.DateRange, userID string) (*dto.ReportSummary, error) {
	args := m.Called(ctx, businessID, dates, userID)
	return ptrArg[dto.ReportSummary](args, 0), args.Error(1)
}

func (m *MockReportService) ExportCashbook(ctx context.Context, businessID string, dates domain.DateRange, userID string) (*portssvc.ExportFile, error) {
	args := m.Called(ctx, businessID, dates, userID)
	return ptrArg[portssvc.ExportFile](args, 0), args.Error(1)
}

func (m *MockReportService) ExportPartyLedger(ctx context.Context, businessID, partyID string, dates domain.DateRange, format string, userID string) (*portssvc.ExportFile, error) {
	args := m.Called(ctx, businessID, partyID, dates, format, userID)
	return ptrArg[portssvc.ExportFile](args, 0), args.Error(1)
}

var _ portssvc.ReportSvcFacade = (*MockReportService)(nil)
