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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PartyServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	tx      *fakeTxManager
	authz   *MockAuthorizer
	parties *MockPartyRepository
	entries *MockCashEntryRepository
	service portssvc.PartySvcFacade
	ramesh  *domain.Party
}

func (suite *PartyServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.tx = &fakeTxManager{}
	suite.authz = new(MockAuthorizer)
	suite.parties = new(MockPartyRepository)
	suite.entries = new(MockCashEntryRepository)
	suite.service = services.NewPartyService(suite.tx, suite.parties, suite.entries, suite.authz)

	suite.authz.On("AuthorizeMember", mock.Anything, testOwnerID, testBusinessID, mock.Anything).Return(ownerMember(), nil).Maybe()
	suite.ramesh = &domain.Party{
		PartyID:        "party-1",
		BusinessID:     testBusinessID,
		Name:           "Ramesh",
		PartyType:      domain.PartyCustomer,
		OpeningBalance: decimal.NewFromInt(1000),
		CurrentBalance: decimal.NewFromInt(1000),
		IsActive:       true,
	}
	suite.parties.On("FindPartyByID", mock.Anything, testBusinessID, "party-1").Return(suite.ramesh, nil).Maybe()
	suite.parties.On("LockPartyByID", mock.Anything, testBusinessID, "party-1").Return(suite.ramesh, nil).Maybe()
}

func partyEntry(id string, t domain.EntryType, amount int64, day int) domain.CashEntry {
	partyID := "party-1"
	return domain.CashEntry{
		EntryID:    id,
		BusinessID: testBusinessID,
		EntryType:  t,
		Amount:     decimal.NewFromInt(amount),
		EntryDate:  time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC),
		PartyID:    &partyID,
	}
}

func partyFilter(f domain.CashEntryFilter) bool {
	return f.PartyID != nil && *f.PartyID == "party-1"
}

func (suite *PartyServiceTestSuite) TestGetLedger_OpeningPlusIncome() {
	// Stored out of order; the ledger sorts chronologically.
	entries := []domain.CashEntry{
		partyEntry("e2", domain.EntryIncome, 300, 12),
		partyEntry("e1", domain.EntryIncome, 200, 5),
	}
	suite.entries.On("ListAllEntries", mock.Anything, testBusinessID, mock.MatchedBy(partyFilter)).Return(entries, nil)

	ledger, err := suite.service.GetLedger(suite.ctx, testBusinessID, "party-1", domain.DateRange{}, testOwnerID)

	suite.Require().NoError(err)
	suite.Equal("1000", ledger.OpeningBalance.String())
	suite.Equal("500", ledger.TotalDebit.String())
	suite.Equal("0", ledger.TotalCredit.String())
	suite.Equal("1500", ledger.NetBalance.String())
	suite.Require().Len(ledger.Entries, 2)
	suite.Equal("e1", ledger.Entries[0].EntryID)
	suite.Equal("1200", ledger.Entries[0].RunningBalance.String())
	suite.Equal("1500", ledger.Entries[1].RunningBalance.String())
	suite.entries.AssertNotCalled(suite.T(), "SummarizeEntries", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PartyServiceTestSuite) TestGetLedger_BroughtForwardBeforeStartDate() {
	from := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	suite.entries.On("SummarizeEntries", mock.Anything, testBusinessID, mock.MatchedBy(func(f domain.CashEntryFilter) bool {
		return partyFilter(f) && f.Dates.From == nil && f.Dates.To != nil && f.Dates.To.Equal(from.AddDate(0, 0, -1))
	})).Return(domain.CashbookSummary{
		TotalIncome:  decimal.NewFromInt(200),
		TotalExpense: decimal.NewFromInt(50),
		NetBalance:   decimal.NewFromInt(150),
	}, nil).Once()
	suite.entries.On("ListAllEntries", mock.Anything, testBusinessID, mock.MatchedBy(func(f domain.CashEntryFilter) bool {
		return partyFilter(f) && f.Dates.From != nil && f.Dates.From.Equal(from)
	})).Return([]domain.CashEntry{partyEntry("e3", domain.EntryExpense, 100, 15)}, nil)

	ledger, err := suite.service.GetLedger(suite.ctx, testBusinessID, "party-1", domain.DateRange{From: &from}, testOwnerID)

	suite.Require().NoError(err)
	suite.Equal("1150", ledger.OpeningBalance.String())
	suite.Equal("0", ledger.TotalDebit.String())
	suite.Equal("100", ledger.TotalCredit.String())
	suite.Equal("1050", ledger.NetBalance.String())
	suite.Equal("100", ledger.Entries[0].Credit.String())
	suite.True(ledger.Entries[0].Debit.IsZero())
}

func (suite *PartyServiceTestSuite) TestGetLedger_UnknownParty() {
	suite.parties.On("FindPartyByID", mock.Anything, testBusinessID, "missing").Return(nil, apperrors.ErrNotFound)

	_, err := suite.service.GetLedger(suite.ctx, testBusinessID, "missing", domain.DateRange{}, testOwnerID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *PartyServiceTestSuite) TestRecalculateBalance() {
	suite.entries.On("ListAllEntries", mock.Anything, testBusinessID, mock.MatchedBy(partyFilter)).Return([]domain.CashEntry{
		partyEntry("e1", domain.EntryIncome, 200, 5),
		partyEntry("e2", domain.EntryExpense, 50, 6),
	}, nil)
	suite.parties.On("SetPartyBalance", mock.Anything, "party-1", mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.NewFromInt(1150))
	})).Return(nil).Once()

	suite.Require().NoError(suite.service.RecalculateBalance(suite.ctx, testBusinessID, "party-1"))
	suite.parties.AssertExpectations(suite.T())
}

func (suite *PartyServiceTestSuite) TestCreateParty_StartsAtOpeningBalance() {
	suite.parties.On("SaveParty", mock.Anything, mock.MatchedBy(func(p domain.Party) bool {
		return p.Name == "Suresh" && p.CurrentBalance.Equal(decimal.NewFromInt(250)) && p.IsActive
	})).Return(nil).Once()

	party, err := suite.service.CreateParty(suite.ctx, testBusinessID, dto.CreatePartyRequest{
		Name: "  Suresh ", PartyType: domain.PartySupplier, OpeningBalance: decimal.NewFromInt(250),
	}, testOwnerID)

	suite.Require().NoError(err)
	suite.Equal("Suresh", party.Name)
}

func (suite *PartyServiceTestSuite) TestUpdateParty_OpeningChangeRecalculates() {
	opening := decimal.NewFromInt(2000)
	suite.parties.On("UpdateParty", mock.Anything, mock.MatchedBy(func(p domain.Party) bool {
		return p.OpeningBalance.Equal(opening)
	})).Return(nil).Once()
	suite.entries.On("ListAllEntries", mock.Anything, testBusinessID, mock.MatchedBy(partyFilter)).Return([]domain.CashEntry{
		partyEntry("e1", domain.EntryIncome, 200, 5),
	}, nil)
	suite.parties.On("SetPartyBalance", mock.Anything, "party-1", mock.Anything).Return(nil).Once()

	party, err := suite.service.UpdateParty(suite.ctx, testBusinessID, "party-1", dto.UpdatePartyRequest{OpeningBalance: &opening}, testOwnerID)

	suite.Require().NoError(err)
	suite.Equal("2200", party.CurrentBalance.String())
	suite.Equal(1, suite.tx.calls)
	suite.parties.AssertCalled(suite.T(), "LockPartyByID", mock.Anything, testBusinessID, "party-1")
	suite.parties.AssertNotCalled(suite.T(), "FindPartyByID", mock.Anything, testBusinessID, "party-1")
}

func (suite *PartyServiceTestSuite) TestDeleteParty_Deactivates() {
	suite.parties.On("UpdateParty", mock.Anything, mock.MatchedBy(func(p domain.Party) bool { return !p.IsActive })).Return(nil).Once()

	suite.Require().NoError(suite.service.DeleteParty(suite.ctx, testBusinessID, "party-1", testOwnerID))
	suite.parties.AssertExpectations(suite.T())
}

func TestPartyService(t *testing.T) {
	suite.Run(t, new(PartyServiceTestSuite))
}
