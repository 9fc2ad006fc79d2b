package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/SscSPs/cashbook_backend/internal/apperrors"
	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	"github.com/SscSPs/cashbook_backend/internal/dto"
	"github.com/SscSPs/cashbook_backend/internal/utils/pagination"
	"github.com/stretchr/testify/mock"
)

var mockCtx = mock.Anything

func (s *handlerSuite) TestReviewChangeRequest_Approve() {
	approve := true
	req := dto.ReviewChangeRequestRequest{Approve: &approve}
	s.changeRequests.On("ReviewChangeRequest", mockCtx, testBusinessID, "cr-1", req, testUserID).
		Return(&domain.ChangeRequest{RequestID: "cr-1", Status: domain.StatusApproved}, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/business/biz-1/changerequests/cr-1/review", map[string]any{"approve": true})

	s.Require().Equal(http.StatusOK, w.Code)
	var got domain.ChangeRequest
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	s.Equal(domain.StatusApproved, got.Status)
}

func (s *handlerSuite) TestReviewChangeRequest_AlreadyReviewed() {
	s.changeRequests.On("ReviewChangeRequest", mockCtx, testBusinessID, "cr-1", mock.Anything, testUserID).
		Return(nil, apperrors.NewInvalidStateError("change request is already approved")).Once()

	w := s.do(http.MethodPost, "/api/v1/business/biz-1/changerequests/cr-1/review", map[string]any{"approve": false})

	s.Equal(http.StatusConflict, w.Code)
	resp := s.decodeError(w)
	s.Equal("change request is already approved", resp.Error)
	s.Equal(string(apperrors.KindInvalidState), resp.Kind)
}

func (s *handlerSuite) TestReviewChangeRequest_DecisionRequired() {
	w := s.do(http.MethodPost, "/api/v1/business/biz-1/changerequests/cr-1/review", map[string]any{"reviewNotes": "ok"})

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal(string(apperrors.KindValidation), s.decodeError(w).Kind)
}

func (s *handlerSuite) TestCreateChangeRequest_Forbidden() {
	s.changeRequests.On("CreateChangeRequest", mockCtx, testBusinessID, mock.Anything, testUserID).
		Return(nil, apperrors.NewForbiddenError("viewers cannot request changes")).Once()

	w := s.do(http.MethodPost, "/api/v1/business/biz-1/changerequests", map[string]any{
		"entryId":     "entry-1",
		"requestType": "DELETE",
		"reason":      "duplicate",
	})

	s.Equal(http.StatusForbidden, w.Code)
	s.Equal("viewers cannot request changes", s.decodeError(w).Error)
}

func (s *handlerSuite) TestCreateChangeRequest_PendingConflict() {
	s.changeRequests.On("CreateChangeRequest", mockCtx, testBusinessID, mock.MatchedBy(func(r dto.CreateChangeRequestRequest) bool {
		return r.EntryID == "entry-1" && r.RequestType == domain.RequestUpdate && r.ProposedChanges != nil
	}), testUserID).
		Return(nil, apperrors.NewConflictError("a change request is already pending for this entry")).Once()

	w := s.do(http.MethodPost, "/api/v1/business/biz-1/changerequests", map[string]any{
		"entryId":         "entry-1",
		"requestType":     "UPDATE",
		"proposedChanges": map[string]any{"amount": "900"},
		"reason":          "typo",
	})

	s.Equal(http.StatusConflict, w.Code)
	s.Equal(string(apperrors.KindConflict), s.decodeError(w).Kind)
}

func (s *handlerSuite) TestCreateChangeRequest_UnknownType() {
	w := s.do(http.MethodPost, "/api/v1/business/biz-1/changerequests", map[string]any{
		"entryId":     "entry-1",
		"requestType": "CANCEL",
		"reason":      "x",
	})

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *handlerSuite) TestListChangeRequests_BindsQuery() {
	params := dto.ListChangeRequestsParams{
		PaginationParams: dto.PaginationParams{Page: 2, PageSize: 20},
		Status:           "PENDING",
	}
	page := pagination.NewPage([]domain.ChangeRequest{{RequestID: "cr-1"}}, 21, params.ToParams())
	s.changeRequests.On("ListChangeRequests", mockCtx, testBusinessID, params, testUserID).Return(&page, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/business/biz-1/changerequests?status=PENDING&page=2", nil)

	s.Require().Equal(http.StatusOK, w.Code)
	var got pagination.Page[domain.ChangeRequest]
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	s.Equal(int64(21), got.TotalCount)
	s.Equal(2, got.TotalPages)
	s.Len(got.Items, 1)
}

func (s *handlerSuite) TestListChangeRequests_RejectsUnknownStatus() {
	w := s.do(http.MethodGet, "/api/v1/business/biz-1/changerequests?status=CANCELLED", nil)

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *handlerSuite) TestListMyChangeRequests() {
	params := dto.ListChangeRequestsParams{PaginationParams: dto.PaginationParams{Page: 1, PageSize: 20}}
	page := pagination.NewPage[domain.ChangeRequest](nil, 0, params.ToParams())
	s.changeRequests.On("ListMyChangeRequests", mockCtx, testBusinessID, params, testUserID).Return(&page, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/business/biz-1/changerequests/mine", nil)

	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"items":[],"totalCount":0,"totalPages":0,"page":1,"pageSize":20}`, w.Body.String())
}

func (s *handlerSuite) TestChangeRequestSummary() {
	s.changeRequests.On("GetSummary", mockCtx, testBusinessID, testUserID).
		Return(&domain.ChangeRequestSummary{PendingCount: 2, ApprovedCount: 1, TotalCount: 3}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/business/biz-1/changerequests/summary", nil)

	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"pendingCount":2,"approvedCount":1,"rejectedCount":0,"totalCount":3}`, w.Body.String())
}

func (s *handlerSuite) TestGetChangeRequest_InternalErrorIsHidden() {
	s.changeRequests.On("GetChangeRequest", mockCtx, testBusinessID, "cr-1", testUserID).
		Return(nil, errors.New("dial tcp 10.0.0.5:5432: connection refused")).Once()

	w := s.do(http.MethodGet, "/api/v1/business/biz-1/changerequests/cr-1", nil)

	s.Equal(http.StatusInternalServerError, w.Code)
	resp := s.decodeError(w)
	s.Equal("Failed to retrieve change request", resp.Error)
	s.NotContains(w.Body.String(), "10.0.0.5")
}

func (s *handlerSuite) TestWithdrawChangeRequest() {
	s.changeRequests.On("WithdrawChangeRequest", mockCtx, testBusinessID, "cr-1", testUserID).Return(nil).Once()

	w := s.do(http.MethodDelete, "/api/v1/business/biz-1/changerequests/cr-1", nil)

	s.Equal(http.StatusNoContent, w.Code)
}

func (s *handlerSuite) TestWithdrawChangeRequest_NotMember() {
	s.changeRequests.On("WithdrawChangeRequest", mockCtx, testBusinessID, "cr-1", testUserID).
		Return(apperrors.NewNotFoundError("business not found")).Once()

	w := s.do(http.MethodDelete, "/api/v1/business/biz-1/changerequests/cr-1", nil)

	s.Equal(http.StatusNotFound, w.Code)
}
