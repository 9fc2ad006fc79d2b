package domain_test

import (
	"testing"

	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestBusinessUser_CanDirectlyMutate(t *testing.T) {
	tests := []struct {
		name   string
		staff  domain.BusinessUser
		action domain.MutationAction
		want   bool
	}{
		{name: "owner edit", staff: domain.BusinessUser{Role: domain.RoleOwner}, action: domain.ActionEdit, want: true},
		{name: "owner delete", staff: domain.BusinessUser{Role: domain.RoleOwner}, action: domain.ActionDelete, want: true},
		{name: "owner delete without flag", staff: domain.BusinessUser{Role: domain.RoleOwner, CanDeleteEntries: false}, action: domain.ActionDelete, want: true},
		{name: "accountant edit with delete flag", staff: domain.BusinessUser{Role: domain.RoleAccountant, CanDeleteEntries: true}, action: domain.ActionEdit, want: false},
		{name: "accountant edit without flag", staff: domain.BusinessUser{Role: domain.RoleAccountant}, action: domain.ActionEdit, want: false},
		{name: "viewer edit with delete flag", staff: domain.BusinessUser{Role: domain.RoleViewer, CanDeleteEntries: true}, action: domain.ActionEdit, want: false},
		{name: "accountant delete with flag", staff: domain.BusinessUser{Role: domain.RoleAccountant, CanDeleteEntries: true}, action: domain.ActionDelete, want: true},
		{name: "accountant delete without flag", staff: domain.BusinessUser{Role: domain.RoleAccountant}, action: domain.ActionDelete, want: false},
		{name: "viewer delete with flag", staff: domain.BusinessUser{Role: domain.RoleViewer, CanDeleteEntries: true}, action: domain.ActionDelete, want: true},
		{name: "viewer delete without flag", staff: domain.BusinessUser{Role: domain.RoleViewer}, action: domain.ActionDelete, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.staff.CanDirectlyMutate(tt.action))
		})
	}
}

func TestStaffRole_AtLeast(t *testing.T) {
	assert.True(t, domain.RoleOwner.AtLeast(domain.RoleAccountant))
	assert.True(t, domain.RoleAccountant.AtLeast(domain.RoleAccountant))
	assert.True(t, domain.RoleViewer.AtLeast(domain.RoleViewer))
	assert.False(t, domain.RoleViewer.AtLeast(domain.RoleAccountant))
	assert.False(t, domain.RoleAccountant.AtLeast(domain.RoleOwner))
	assert.False(t, domain.StaffRole("GUEST").AtLeast(domain.RoleViewer))
}
