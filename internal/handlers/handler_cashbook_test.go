package handlers_test

import (
	"net/http"

	"github.com/SscSPs/cashbook_backend/internal/apperrors"
	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	portssvc "github.com/SscSPs/cashbook_backend/internal/core/ports/services"
	"github.com/SscSPs/cashbook_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func (s *handlerSuite) TestCreateEntry_RejectsNonPositiveAmount() {
	w := s.do(http.MethodPost, "/api/v1/business/biz-1/cashbook", map[string]any{
		"entryType": "INCOME",
		"amount":    "0",
		"entryDate": "2024-04-01",
	})

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *handlerSuite) TestCreateEntry() {
	s.cashbook.On("CreateEntry", mockCtx, testBusinessID, mock.MatchedBy(func(r dto.CreateCashEntryRequest) bool {
		return r.EntryType == "INCOME" && r.Amount.Equal(decimal.NewFromInt(1500)) && r.EntryDate.Format(dto.DateLayout) == "2024-04-01"
	}), testUserID).Return(&domain.CashEntry{EntryID: "entry-1"}, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/business/biz-1/cashbook", map[string]any{
		"entryType": "INCOME",
		"amount":    1500,
		"entryDate": "2024-04-01",
	})

	s.Equal(http.StatusCreated, w.Code)
}

func (s *handlerSuite) TestUpdateEntry_GatedReturnsAccepted() {
	s.cashbook.On("UpdateEntry", mockCtx, testBusinessID, "entry-1", mock.MatchedBy(func(r dto.UpdateCashEntryRequest) bool {
		return r.Amount != nil && r.Amount.Equal(decimal.NewFromInt(900)) && r.Reason == "typo"
	}), testUserID).Return(&dto.MutationResult{
		Applied:       false,
		ChangeRequest: &domain.ChangeRequest{RequestID: "cr-1", Status: domain.StatusPending},
	}, nil).Once()

	w := s.do(http.MethodPut, "/api/v1/business/biz-1/cashbook/entry-1", map[string]any{"amount": "900", "reason": "typo"})

	s.Equal(http.StatusAccepted, w.Code)
	s.Contains(w.Body.String(), `"requestID":"cr-1"`)
}

func (s *handlerSuite) TestUpdateEntry_AppliedDirectly() {
	s.cashbook.On("UpdateEntry", mockCtx, testBusinessID, "entry-1", mock.Anything, testUserID).
		Return(&dto.MutationResult{Applied: true, Entry: &domain.CashEntry{EntryID: "entry-1"}}, nil).Once()

	w := s.do(http.MethodPut, "/api/v1/business/biz-1/cashbook/entry-1", map[string]any{"description": "rent"})

	s.Equal(http.StatusOK, w.Code)
}

func (s *handlerSuite) TestDeleteEntry_ReasonFromBody() {
	s.cashbook.On("DeleteEntry", mockCtx, testBusinessID, "entry-1", "duplicate", testUserID).
		Return(&dto.MutationResult{Applied: false, ChangeRequest: &domain.ChangeRequest{RequestID: "cr-2"}}, nil).Once()

	w := s.do(http.MethodDelete, "/api/v1/business/biz-1/cashbook/entry-1", map[string]any{"reason": "duplicate"})

	s.Equal(http.StatusAccepted, w.Code)
}

func (s *handlerSuite) TestDeleteEntry_WithoutBody() {
	s.cashbook.On("DeleteEntry", mockCtx, testBusinessID, "entry-1", "", testUserID).
		Return(&dto.MutationResult{Applied: true}, nil).Once()

	w := s.do(http.MethodDelete, "/api/v1/business/biz-1/cashbook/entry-1", nil)

	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"applied":true}`, w.Body.String())
}

func (s *handlerSuite) TestDeleteEntry_ReasonMissingForGatedDelete() {
	s.cashbook.On("DeleteEntry", mockCtx, testBusinessID, "entry-1", "", testUserID).
		Return(nil, apperrors.NewValidationFailedError("reason is required")).Once()

	w := s.do(http.MethodDelete, "/api/v1/business/biz-1/cashbook/entry-1", nil)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("reason is required", s.decodeError(w).Error)
}

func (s *handlerSuite) TestListEntries_RejectsUnknownSort() {
	w := s.do(http.MethodGet, "/api/v1/business/biz-1/cashbook?sort=sideways", nil)

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *handlerSuite) TestExportCashbook() {
	s.reports.On("ExportCashbook", mockCtx, testBusinessID, mock.MatchedBy(func(r domain.DateRange) bool {
		return r.From != nil && r.From.Format(dto.DateLayout) == "2024-04-01" && r.To == nil
	}), testUserID).Return(&portssvc.ExportFile{
		FileName:    "cashbook.xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Content:     []byte("xlsx"),
	}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/business/biz-1/cashbook/export?startDate=2024-04-01", nil)

	s.Equal(http.StatusOK, w.Code)
	s.Equal(`attachment; filename="cashbook.xlsx"`, w.Header().Get("Content-Disposition"))
	s.Equal("xlsx", w.Body.String())
}

func (s *handlerSuite) TestExportCashbook_InvertedRange() {
	w := s.do(http.MethodGet, "/api/v1/business/biz-1/cashbook/export?startDate=2024-04-10&endDate=2024-04-01", nil)

	s.Equal(http.StatusBadRequest, w.Code)
}
