package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/cashbook_backend/internal/apperrors"
	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	"github.com/SscSPs/cashbook_backend/internal/utils/pagination"
)

// DateLayout is the calendar-date format used on the wire.
const DateLayout = "2006-01-02"

// Date is a calendar date. It accepts "2006-01-02" or a full RFC 3339 timestamp
// and always encodes as "2006-01-02".
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	t, err := ParseDate(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(DateLayout))
}

// ParseDate parses a wire date into midnight UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", apperrors.ErrValidation, s)
	}
	y, m, dd := t.Date()
	return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC), nil
}

// DatePtr converts an optional wire date.
func DatePtr(d *Date) *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

// PaginationParams are the page query parameters shared by every list endpoint.
type PaginationParams struct {
	Page     int `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int `form:"pageSize,default=20" binding:"omitempty,min=1"`
}

func (p PaginationParams) ToParams() pagination.Params {
	return pagination.Params{Page: p.Page, PageSize: p.PageSize}.Normalize()
}

// DateRangeParams bound a listing by date. Both ends are inclusive.
type DateRangeParams struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}

// ToDateRange parses the optional bounds.
func (p DateRangeParams) ToDateRange() (domain.DateRange, error) {
	var r domain.DateRange
	if p.StartDate != "" {
		t, err := ParseDate(p.StartDate)
		if err != nil {
			return r, err
		}
		r.From = &t
	}
	if p.EndDate != "" {
		t, err := ParseDate(p.EndDate)
		if err != nil {
			return r, err
		}
		r.To = &t
	}
	if r.From != nil && r.To != nil && r.To.Before(*r.From) {
		return r, fmt.Errorf("%w: endDate must not be before startDate", apperrors.ErrValidation)
	}
	return r, nil
}

// ErrorResponse is the body of every failed request. Kind is one of the apperrors kinds.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}
