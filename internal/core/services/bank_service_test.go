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

type BankServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	tx      *fakeTxManager
	authz   *MockAuthorizer
	bank    *MockBankRepository
	service portssvc.BankSvcFacade
	account *domain.BankAccount
}

func (suite *BankServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.tx = &fakeTxManager{}
	suite.authz = new(MockAuthorizer)
	suite.bank = new(MockBankRepository)
	suite.service = services.NewBankService(suite.tx, suite.bank, suite.authz)

	suite.authz.On("AuthorizeMember", mock.Anything, testOwnerID, testBusinessID, mock.Anything).Return(ownerMember(), nil).Maybe()
	suite.account = &domain.BankAccount{
		BankAccountID:  "acct-1",
		BusinessID:     testBusinessID,
		BankName:       "SBI",
		AccountNumber:  "0001",
		OpeningBalance: decimal.NewFromInt(1000),
		CurrentBalance: decimal.NewFromInt(1070),
		IsActive:       true,
	}
}

func bankTxn(id string, t domain.BankTransactionType, amount int64, day int) domain.BankTransaction {
	return domain.BankTransaction{
		TransactionID:   id,
		BankAccountID:   "acct-1",
		BusinessID:      testBusinessID,
		TransactionType: t,
		Amount:          decimal.NewFromInt(amount),
		TransactionDate: time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC),
		AuditFields:     domain.AuditFields{CreatedAt: time.Date(2024, 1, day, 9, 0, 0, 0, time.UTC)},
	}
}

func (suite *BankServiceTestSuite) TestAddTransaction_BackDatedRebalances() {
	existing := []domain.BankTransaction{
		bankTxn("t1", domain.BankDeposit, 100, 1),
		bankTxn("t2", domain.BankWithdrawal, 30, 10),
	}
	suite.bank.On("LockBankAccount", mock.Anything, testBusinessID, "acct-1").Return(suite.account, nil).Once()

	suite.bank.On("SaveBankTransaction", mock.Anything, mock.AnythingOfType("domain.BankTransaction")).Return(nil).Run(func(args mock.Arguments) {
		inserted := args.Get(1).(domain.BankTransaction)
		// Storage order is insertion order; the service has to sort.
		suite.bank.On("ListAllBankTransactions", mock.Anything, "acct-1").
			Return(append(append([]domain.BankTransaction{}, existing...), inserted), nil).Once()
	}).Once()

	var stored map[string]decimal.Decimal
	suite.bank.On("UpdateBalances", mock.Anything, "acct-1", mock.Anything, mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.NewFromInt(1120))
	})).Return(nil).Run(func(args mock.Arguments) {
		stored = args.Get(2).(map[string]decimal.Decimal)
	}).Once()

	txn, err := suite.service.AddTransaction(suite.ctx, testBusinessID, "acct-1", dto.CreateBankTransactionRequest{
		TransactionType: domain.BankDeposit,
		Amount:          decimal.NewFromInt(50),
		TransactionDate: dto.Date{Time: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
	}, testOwnerID)

	suite.Require().NoError(err)
	suite.Equal("1150", txn.BalanceAfter.String())
	suite.Equal("1100", stored["t1"].String())
	suite.Equal("1150", stored[txn.TransactionID].String())
	suite.Equal("1120", stored["t2"].String())
	suite.Equal("1120", suite.account.CurrentBalance.String())
	suite.bank.AssertExpectations(suite.T())
}

func (suite *BankServiceTestSuite) TestAddTransaction_InactiveAccount() {
	suite.account.IsActive = false
	suite.bank.On("LockBankAccount", mock.Anything, testBusinessID, "acct-1").Return(suite.account, nil)

	_, err := suite.service.AddTransaction(suite.ctx, testBusinessID, "acct-1", dto.CreateBankTransactionRequest{
		TransactionType: domain.BankWithdrawal,
		Amount:          decimal.NewFromInt(10),
		TransactionDate: dto.Date{Time: time.Now()},
	}, testOwnerID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.bank.AssertNotCalled(suite.T(), "SaveBankTransaction", mock.Anything, mock.Anything)
}

func (suite *BankServiceTestSuite) TestDeleteTransaction_Rebalances() {
	suite.bank.On("LockBankAccount", mock.Anything, testBusinessID, "acct-1").Return(suite.account, nil)
	suite.bank.On("DeleteBankTransaction", mock.Anything, "acct-1", "t1").Return(nil).Once()
	suite.bank.On("ListAllBankTransactions", mock.Anything, "acct-1").Return([]domain.BankTransaction{
		bankTxn("t2", domain.BankWithdrawal, 30, 10),
	}, nil)
	suite.bank.On("UpdateBalances", mock.Anything, "acct-1", mock.MatchedBy(func(m map[string]decimal.Decimal) bool {
		return len(m) == 1 && m["t2"].Equal(decimal.NewFromInt(970))
	}), mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.NewFromInt(970))
	})).Return(nil).Once()

	suite.Require().NoError(suite.service.DeleteTransaction(suite.ctx, testBusinessID, "acct-1", "t1", testOwnerID))
	suite.bank.AssertExpectations(suite.T())
}

func (suite *BankServiceTestSuite) TestDeleteTransaction_Unknown() {
	suite.bank.On("LockBankAccount", mock.Anything, testBusinessID, "acct-1").Return(suite.account, nil)
	suite.bank.On("DeleteBankTransaction", mock.Anything, "acct-1", "nope").Return(apperrors.ErrNotFound)

	err := suite.service.DeleteTransaction(suite.ctx, testBusinessID, "acct-1", "nope", testOwnerID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.bank.AssertNotCalled(suite.T(), "UpdateBalances", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BankServiceTestSuite) TestCreateBankAccount_DuplicateNumber() {
	suite.bank.On("SaveBankAccount", mock.Anything, mock.Anything).Return(apperrors.ErrDuplicate)

	_, err := suite.service.CreateBankAccount(suite.ctx, testBusinessID, dto.CreateBankAccountRequest{
		BankName: "SBI", AccountNumber: "0001",
	}, testOwnerID)

	suite.Equal(apperrors.KindConflict, apperrors.KindOf(err))
}

func (suite *BankServiceTestSuite) TestListTransactions_Totals() {
	suite.bank.On("FindBankAccountByID", mock.Anything, testBusinessID, "acct-1").Return(suite.account, nil)
	suite.bank.On("ListBankTransactions", mock.Anything, "acct-1", domain.DateRange{}, 20, 0).
		Return([]domain.BankTransaction{bankTxn("t1", domain.BankDeposit, 100, 1)}, int64(1), nil)
	suite.bank.On("BankTotals", mock.Anything, "acct-1", domain.DateRange{}).
		Return(decimal.NewFromInt(100), decimal.Zero, nil)

	page, err := suite.service.ListTransactions(suite.ctx, testBusinessID, "acct-1", dto.ListBankTransactionsParams{}, testOwnerID)

	suite.Require().NoError(err)
	suite.Len(page.Items, 1)
	suite.Equal("100", page.TotalDeposits.String())
	suite.Equal("SBI", page.Account.BankName)
}

func TestBankService(t *testing.T) {
	suite.Run(t, new(BankServiceTestSuite))
}
