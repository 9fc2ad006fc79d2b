package client

import (
	"time"

	"github.com/shopspring/decimal"
)

// Page is the envelope of every paginated listing.
type Page[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	TotalPages int   `json:"totalPages"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
}

type User struct {
	UserID       string    `json:"userID"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	AuthProvider string    `json:"authProvider"`
	CreatedAt    time.Time `json:"createdAt"`
}

type AuthResponse struct {
	AccessToken           string    `json:"accessToken"`
	ExpiresAt             time.Time `json:"expiresAt"`
	RefreshToken          string    `json:"refreshToken"`
	RefreshTokenExpiresAt time.Time `json:"refreshTokenExpiresAt"`
	User                  User      `json:"user"`
}

// Change request types and statuses.
const (
	RequestUpdate = "UPDATE"
	RequestDelete = "DELETE"

	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// EntryChanges holds the entry fields a change request sets. Nil fields are untouched.
type EntryChanges struct {
	EntryType   *string          `json:"entryType,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	EntryDate   *string          `json:"entryDate,omitempty"`
	CategoryID  *string          `json:"categoryID,omitempty"`
	Description *string          `json:"description,omitempty"`
	PartyID     *string          `json:"partyID,omitempty"`
	DueDate     *string          `json:"dueDate,omitempty"`
}

// EntrySnapshot is the entry as it was when a change request was filed.
type EntrySnapshot struct {
	EntryID     string          `json:"entryID"`
	EntryType   string          `json:"entryType"`
	Amount      decimal.Decimal `json:"amount"`
	EntryDate   time.Time       `json:"entryDate"`
	CategoryID  *string         `json:"categoryID,omitempty"`
	Description *string         `json:"description,omitempty"`
	PartyID     *string         `json:"partyID,omitempty"`
	DueDate     *time.Time      `json:"dueDate,omitempty"`
}

type ChangeRequest struct {
	RequestID         string        `json:"requestID"`
	BusinessID        string        `json:"businessID"`
	EntryID           string        `json:"entryID"`
	RequestType       string        `json:"requestType"`
	Status            string        `json:"status"`
	ProposedChanges   *EntryChanges `json:"proposedChanges,omitempty"`
	OriginalData      EntrySnapshot `json:"originalData"`
	Reason            string        `json:"reason"`
	RequestedByUserID string        `json:"requestedByUserID"`
	RequestedByName   string        `json:"requestedByName,omitempty"`
	ReviewedByUserID  *string       `json:"reviewedByUserID,omitempty"`
	ReviewNotes       *string       `json:"reviewNotes,omitempty"`
	ReviewedAt        *time.Time    `json:"reviewedAt,omitempty"`
	CreatedAt         time.Time     `json:"createdAt"`
}

type ChangeRequestSummary struct {
	PendingCount  int64 `json:"pendingCount"`
	ApprovedCount int64 `json:"approvedCount"`
	RejectedCount int64 `json:"rejectedCount"`
	TotalCount    int64 `json:"totalCount"`
}

type CreateChangeRequest struct {
	EntryID         string        `json:"entryId"`
	RequestType     string        `json:"requestType"`
	ProposedChanges *EntryChanges `json:"proposedChanges,omitempty"`
	Reason          string        `json:"reason"`
}

type ListChangeRequestsOptions struct {
	Page     int
	PageSize int
	Status   string
	// Mine lists only the caller's own requests.
	Mine bool
}

// CashEntry is the part of an entry the client reads back from a direct edit.
type CashEntry struct {
	EntryID            string          `json:"entryID"`
	BusinessID         string          `json:"businessID"`
	EntryType          string          `json:"entryType"`
	Amount             decimal.Decimal `json:"amount"`
	EntryDate          time.Time       `json:"entryDate"`
	CategoryID         *string         `json:"categoryID,omitempty"`
	CategoryName       *string         `json:"categoryName,omitempty"`
	Description        *string         `json:"description,omitempty"`
	PartyID            *string         `json:"partyID,omitempty"`
	PartyName          *string         `json:"partyName,omitempty"`
	IsModified         bool            `json:"isModified"`
	ModificationReason *string         `json:"modificationReason,omitempty"`
}

// MutationResult is the outcome of an edit or delete. When Applied is false the change
// is waiting in ChangeRequest for the owner.
type MutationResult struct {
	Applied       bool           `json:"applied"`
	Entry         *CashEntry     `json:"entry,omitempty"`
	ChangeRequest *ChangeRequest `json:"changeRequest,omitempty"`
}

type Notification struct {
	NotificationID  string     `json:"notificationID"`
	BusinessID      string     `json:"businessID"`
	RecipientUserID string     `json:"recipientUserID"`
	Type            string     `json:"type"`
	ReferenceType   string     `json:"referenceType"`
	ReferenceID     string     `json:"referenceID"`
	Title           string     `json:"title"`
	Message         string     `json:"message"`
	IsRead          bool       `json:"isRead"`
	ReadAt          *time.Time `json:"readAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

type NotificationSummary struct {
	UnreadCount int64 `json:"unreadCount"`
	TotalCount  int64 `json:"totalCount"`
}

type ListNotificationsOptions struct {
	Page       int
	PageSize   int
	BusinessID string
	UnreadOnly bool
}

type Party struct {
	PartyID        string          `json:"partyID"`
	BusinessID     string          `json:"businessID"`
	Name           string          `json:"name"`
	PartyType      string          `json:"partyType"`
	Phone          *string         `json:"phone,omitempty"`
	Email          *string         `json:"email,omitempty"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	IsActive       bool            `json:"isActive"`
}

type PartyLedgerEntry struct {
	EntryID        string          `json:"entryID"`
	EntryDate      time.Time       `json:"entryDate"`
	EntryType      string          `json:"entryType"`
	Description    *string         `json:"description,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// PartyLedger is a party statement. TotalDebit is the income side, TotalCredit the expense side.
type PartyLedger struct {
	Party          Party              `json:"party"`
	OpeningBalance decimal.Decimal    `json:"openingBalance"`
	TotalDebit     decimal.Decimal    `json:"totalDebit"`
	TotalCredit    decimal.Decimal    `json:"totalCredit"`
	NetBalance     decimal.Decimal    `json:"netBalance"`
	Entries        []PartyLedgerEntry `json:"entries"`
}
