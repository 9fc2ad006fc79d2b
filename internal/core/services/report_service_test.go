package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/cashbook_backend/internal/apperrors"
	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	portssvc "github.com/SscSPs/cashbook_backend/internal/core/ports/services"
	"github.com/SscSPs/cashbook_backend/internal/core/services"
	"github.com/SscSPs/cashbook_backend/internal/dto"
	"github.com/SscSPs/cashbook_backend/internal/export"
	"github.com/SscSPs/cashbook_backend/internal/utils/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockPartyReader struct {
	mock.Mock
}

func (m *MockPartyReader) ListParties(ctx context.Context, businessID string, params dto.ListPartiesParams, userID string) (*pagination.Page[domain.Party], error) {
	args := m.Called(ctx, businessID, params, userID)
	return ptrArg[pagination.Page[domain.Party]](args, 0), args.Error(1)
}

func (m *MockPartyReader) GetParty(ctx context.Context, businessID, partyID, userID string) (*domain.Party, error) {
	args := m.Called(ctx, businessID, partyID, userID)
	return ptrArg[domain.Party](args, 0), args.Error(1)
}

func (m *MockPartyReader) GetLedger(ctx context.Context, businessID, partyID string, dates domain.DateRange, userID string) (*domain.PartyLedger, error) {
	args := m.Called(ctx, businessID, partyID, dates, userID)
	return ptrArg[domain.PartyLedger](args, 0), args.Error(1)
}

var _ portssvc.PartyReaderSvc = (*MockPartyReader)(nil)

type ReportServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	authz    *MockAuthorizer
	entries  *MockCashEntryRepository
	bank     *MockBankRepository
	business *MockBusinessRepository
	parties  *MockPartyReader
	service  portssvc.ReportSvcFacade
}

func (suite *ReportServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.authz = new(MockAuthorizer)
	suite.entries = new(MockCashEntryRepository)
	suite.bank = new(MockBankRepository)
	suite.business = new(MockBusinessRepository)
	suite.parties = new(MockPartyReader)
	suite.service = services.NewReportService(suite.entries, suite.bank, suite.business, suite.parties, suite.authz)

	suite.authz.On("AuthorizeMember", mock.Anything, testOwnerID, testBusinessID, domain.RoleViewer).Return(ownerMember(), nil).Maybe()
}

func day(d int) *time.Time {
	t := time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func (suite *ReportServiceTestSuite) TestGetSummary_AddsActiveBankBalances() {
	dates := domain.DateRange{From: day(1), To: day(31)}
	suite.entries.On("SummarizeEntries", mock.Anything, testBusinessID, domain.CashEntryFilter{Dates: dates}).Return(domain.CashbookSummary{
		TotalIncome:  decimal.RequireFromString("1500.75"),
		TotalExpense: decimal.NewFromInt(500),
		NetBalance:   decimal.RequireFromString("1000.75"),
	}, nil).Once()
	suite.entries.On("CategoryTotals", mock.Anything, testBusinessID, mock.Anything).Return(nil, nil).Once()
	suite.bank.On("ListBankAccounts", mock.Anything, testBusinessID).Return([]domain.BankAccount{
		{BankAccountID: "a", CurrentBalance: decimal.NewFromInt(200), IsActive: true},
		{BankAccountID: "b", CurrentBalance: decimal.NewFromInt(999), IsActive: false},
		{BankAccountID: "c", CurrentBalance: decimal.NewFromInt(50), IsActive: true},
	}, nil).Once()

	summary, err := suite.service.GetSummary(suite.ctx, testBusinessID, dates, testOwnerID)
	suite.Require().NoError(err)
	suite.Equal("1000.75", summary.NetBalance.String())
	suite.Equal("250", summary.BankBalance.String())
	suite.Equal("1,000", summary.DisplayNetBalance)
	suite.NotNil(summary.CategoryTotals)
	suite.Empty(summary.CategoryTotals)
	suite.Require().NotNil(summary.StartDate)
	suite.True(summary.StartDate.Time.Equal(*day(1)))
}

func (suite *ReportServiceTestSuite) TestGetSummary_NonMemberDenied() {
	suite.authz.On("AuthorizeMember", mock.Anything, "stranger", testBusinessID, domain.RoleViewer).
		Return(nil, apperrors.NewForbiddenError("not a member")).Once()

	_, err := suite.service.GetSummary(suite.ctx, testBusinessID, domain.DateRange{}, "stranger")
	suite.Equal(apperrors.KindAuthorization, apperrors.KindOf(err))
	suite.entries.AssertNotCalled(suite.T(), "SummarizeEntries", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportServiceTestSuite) TestExportCashbook_BringsBalanceForward() {
	dates := domain.DateRange{From: day(10), To: day(20)}
	entries := []domain.CashEntry{
		{EntryID: "e2", EntryType: domain.EntryExpense, Amount: decimal.NewFromInt(30), EntryDate: *day(15)},
		{EntryID: "e1", EntryType: domain.EntryIncome, Amount: decimal.NewFromInt(100), EntryDate: *day(11)},
	}
	suite.entries.On("ListAllEntries", mock.Anything, testBusinessID, domain.CashEntryFilter{Dates: dates}).Return(entries, nil).Once()
	suite.entries.On("SummarizeEntries", mock.Anything, testBusinessID, domain.CashEntryFilter{Dates: dates}).
		Return(domain.CashbookSummary{TotalIncome: decimal.NewFromInt(100), TotalExpense: decimal.NewFromInt(30), NetBalance: decimal.NewFromInt(70)}, nil).Once()
	suite.entries.On("SummarizeEntries", mock.Anything, testBusinessID, mock.MatchedBy(func(f domain.CashEntryFilter) bool {
		return f.Dates.From == nil && f.Dates.To != nil && f.Dates.To.Equal(*day(9))
	})).Return(domain.CashbookSummary{NetBalance: decimal.NewFromInt(500)}, nil).Once()

	file, err := suite.service.ExportCashbook(suite.ctx, testBusinessID, dates, testOwnerID)
	suite.Require().NoError(err)
	suite.Equal("cashbook-2024-03-10_2024-03-20.xlsx", file.FileName)
	suite.Equal(export.XLSXContentType, file.ContentType)
	suite.NotEmpty(file.Content)
	suite.entries.AssertExpectations(suite.T())
}

func (suite *ReportServiceTestSuite) TestExportPartyLedger_RejectsUnknownFormat() {
	_, err := suite.service.ExportPartyLedger(suite.ctx, testBusinessID, "party-1", domain.DateRange{}, "csv", testOwnerID)
	suite.Equal(apperrors.KindValidation, apperrors.KindOf(err))
	suite.parties.AssertNotCalled(suite.T(), "GetLedger", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportServiceTestSuite) TestExportPartyLedger_PDF() {
	ledger := &domain.PartyLedger{
		Party:          domain.Party{PartyID: "party-1", Name: "Sharma Traders & Co", PartyType: domain.PartyCustomer},
		OpeningBalance: decimal.Zero,
		TotalDebit:     decimal.NewFromInt(100),
		TotalCredit:    decimal.NewFromInt(40),
		NetBalance:     decimal.NewFromInt(60),
	}
	suite.parties.On("GetLedger", mock.Anything, testBusinessID, "party-1", domain.DateRange{}, testOwnerID).Return(ledger, nil).Once()
	suite.business.On("FindBusinessByID", mock.Anything, testBusinessID).
		Return(&domain.Business{BusinessID: testBusinessID, Name: "Corner Store", CurrencyCode: "INR"}, nil).Once()

	file, err := suite.service.ExportPartyLedger(suite.ctx, testBusinessID, "party-1", domain.DateRange{}, " PDF ", testOwnerID)
	suite.Require().NoError(err)
	suite.Equal("ledger-sharma-traders-co.pdf", file.FileName)
	suite.Equal(export.PDFContentType, file.ContentType)
	suite.Equal("%PDF", string(file.Content[:4]))
}

func TestReportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportServiceTestSuite))
}
