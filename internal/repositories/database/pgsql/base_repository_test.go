package pgsql

import (
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestQueryBuilder_NumbersPlaceholdersAfterBaseArgs(t *testing.T) {
	qb := newQueryBuilder("SELECT 1 FROM t WHERE a = $1", "biz")
	qb.where("b = $%d", "x")
	qb.raw(" ORDER BY c")
	qb.page(20, 40)

	assert.Equal(t, "SELECT 1 FROM t WHERE a = $1 AND b = $2 ORDER BY c LIMIT $3 OFFSET $4", qb.String())
	assert.Equal(t, []any{"biz", "x", 20, 40}, qb.args)
}

func TestFiltered_CashEntryFilter(t *testing.T) {
	income := domain.EntryIncome
	party := "party-1"
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	qb := filtered("SELECT * FROM cash_entries e WHERE e.business_id = $1", "biz", domain.CashEntryFilter{
		EntryType: &income,
		PartyID:   &party,
		Dates:     domain.DateRange{From: &from, To: &to},
	})

	assert.Equal(t,
		"SELECT * FROM cash_entries e WHERE e.business_id = $1 AND e.entry_type = $2 AND e.party_id = $3 AND e.entry_date >= $4 AND e.entry_date <= $5",
		qb.String())
	assert.Equal(t, []any{"biz", "INCOME", "party-1", from, to}, qb.args)
}

func TestPartyFilter_EscapesSearch(t *testing.T) {
	qb := partyFilter("SELECT COUNT(*) FROM parties WHERE business_id = $1", "biz", nil, "50%_off")

	assert.Contains(t, qb.String(), "AND is_active AND name ILIKE $2")
	assert.Equal(t, `%50\%\_off%`, qb.args[1])
}

func TestRecipientFilter_UnreadOnly(t *testing.T) {
	biz := "biz"
	qb := recipientFilter("SELECT COUNT(*) FROM notifications WHERE 1=1", "user-1", domain.NotificationFilter{BusinessID: &biz, UnreadOnly: true})

	assert.Equal(t, "SELECT COUNT(*) FROM notifications WHERE 1=1 AND recipient_user_id = $1 AND business_id = $2 AND NOT is_read", qb.String())
	assert.Equal(t, []any{"user-1", "biz"}, qb.args)
}

func TestPartyByID_LocksRowWhenAsked(t *testing.T) {
	plain := partyByID("biz", "party-1", false)
	locked := partyByID("biz", "party-1", true)

	assert.NotContains(t, plain.String(), "FOR UPDATE")
	assert.True(t, strings.HasSuffix(locked.String(), "AND party_id = $2 FOR UPDATE"))
	assert.Equal(t, []any{"biz", "party-1"}, locked.args)
}
