package dto

type ListNotificationsParams struct {
	PaginationParams
	BusinessID string `form:"businessId"`
	UnreadOnly bool   `form:"unreadOnly"`
}

type NotificationScopeParams struct {
	BusinessID string `form:"businessId"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}
