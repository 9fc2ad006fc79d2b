package handlers_test

import (
	"net/http"

	"github.com/SscSPs/cashbook_backend/internal/apperrors"
	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	"github.com/SscSPs/cashbook_backend/internal/dto"
	"github.com/SscSPs/cashbook_backend/internal/utils/pagination"
)

func (s *handlerSuite) TestListNotifications_UnreadForBusiness() {
	params := dto.ListNotificationsParams{
		PaginationParams: dto.PaginationParams{Page: 1, PageSize: 5},
		BusinessID:       testBusinessID,
		UnreadOnly:       true,
	}
	page := pagination.NewPage([]domain.Notification{{NotificationID: "n-1"}}, 1, params.ToParams())
	s.notifications.On("ListNotifications", mockCtx, params, testUserID).Return(&page, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/notifications?businessId=biz-1&unreadOnly=true&pageSize=5", nil)

	s.Equal(http.StatusOK, w.Code)
}

func (s *handlerSuite) TestNotificationSummary_ScopedToBusiness() {
	s.notifications.On("GetSummary", mockCtx, testBusinessID, testUserID).
		Return(&domain.NotificationSummary{UnreadCount: 3, TotalCount: 10}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/notifications/summary?businessId=biz-1", nil)

	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"unreadCount":3,"totalCount":10}`, w.Body.String())
}

func (s *handlerSuite) TestMarkNotificationRead() {
	s.notifications.On("MarkAsRead", mockCtx, "n-1", testUserID).
		Return(&domain.Notification{NotificationID: "n-1", IsRead: true}, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/notifications/n-1/read", nil)

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"isRead":true`)
}

func (s *handlerSuite) TestMarkNotificationRead_OtherRecipient() {
	s.notifications.On("MarkAsRead", mockCtx, "n-2", testUserID).
		Return(nil, apperrors.NewNotFoundError("notification not found")).Once()

	w := s.do(http.MethodPost, "/api/v1/notifications/n-2/read", nil)

	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("notification not found", s.decodeError(w).Error)
}

func (s *handlerSuite) TestMarkAllNotificationsRead() {
	s.notifications.On("MarkAllAsRead", mockCtx, "", testUserID).Return(int64(4), nil).Once()

	w := s.do(http.MethodPost, "/api/v1/notifications/read-all", nil)

	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"updated":4}`, w.Body.String())
}
